package domain

// Stats aggregates the financial position across all clients for one
// reference date. Amounts are in whole currency units.
type Stats struct {
	TotalClients  int   `json:"total_clients"`
	TotalExpected int64 `json:"total_expected"`
	TotalPaid     int64 `json:"total_paid"`
	Outstanding   int64 `json:"outstanding"`
	OverdueCount  int   `json:"overdue_count"`
}
