package domain

// Client is a customer with a fixed recurring monthly obligation.
// MonthlyAmount is expressed in whole currency units (no minor units).
type Client struct {
	ID            string `json:"id" bson:"_id,omitempty"`
	Name          string `json:"name" bson:"name"`
	MonthlyAmount int64  `json:"monthly_amount" bson:"monthly_amount"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string `json:"email,omitempty" bson:"email,omitempty"`
}

// AnnualExpected returns the client's expected revenue for a full year.
func (c *Client) AnnualExpected() int64 {
	return c.MonthlyAmount * 12
}
