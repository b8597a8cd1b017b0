package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// togglePaymentRequest sets the paid state of one (client, month, year) key.
// Month and Paid are pointers so zero values (January, unpaid) survive the
// required check. Notes is tri-state on the wire: an absent key preserves the
// stored notes, an explicit "" clears them.
type togglePaymentRequest struct {
	ClientID string  `json:"client_id" validate:"required"`
	Month    *int    `json:"month"     validate:"required,min=0,max=11"`
	Year     int     `json:"year"      validate:"required"`
	Paid     *bool   `json:"paid"      validate:"required"`
	Notes    *string `json:"notes"`
}

type paymentResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	Paid     bool   `json:"paid"`
	Notes    string `json:"notes,omitempty"`
}
