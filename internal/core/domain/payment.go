package domain

// Month boundaries. Months are zero-based (0 = January, 11 = December),
// matching the stored representation.
const (
	MinMonth = 0
	MaxMonth = 11

	// Years outside this window are rejected as malformed input.
	MinYear = 1970
	MaxYear = 2100
)

// monthNames maps a zero-based month index to its full English name,
// as rendered in the CSV export.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the full English name for a zero-based month index.
// Out-of-range indices return an empty string.
func MonthName(month int) string {
	if month < MinMonth || month > MaxMonth {
		return ""
	}
	return monthNames[month]
}

// ValidMonth reports whether month is a valid zero-based month index.
func ValidMonth(month int) bool {
	return month >= MinMonth && month <= MaxMonth
}

// ValidYear reports whether year falls inside the accepted window.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// Payment records the paid state of one client for one calendar month.
// At most one Payment exists per (ClientID, Month, Year); payments come
// into existence the first time a month is toggled and are only deleted
// when their client is deleted.
type Payment struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	ClientID string `json:"client_id" bson:"client_id"`
	Month    int    `json:"month" bson:"month"`
	Year     int    `json:"year" bson:"year"`
	Paid     bool   `json:"paid" bson:"paid"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty"`
}
