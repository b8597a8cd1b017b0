package handler

// --- Request / Response types ---

type clientRequest struct {
	Name          string `json:"name"           validate:"required"`
	MonthlyAmount int64  `json:"monthly_amount" validate:"required,min=1"`
	Phone         string `json:"phone"`
	Email         string `json:"email"          validate:"omitempty,email"`
}

type clientResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MonthlyAmount int64  `json:"monthly_amount"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
}

type paginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type listClientsResponse struct {
	Data       []clientResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
