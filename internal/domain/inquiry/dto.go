package inquiry

// SubmitRequest represents the public contact form
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// UpdateStatusRequest represents status update
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=new in_progress resolved"`
}

// ListResponse represents an inquiry list with per-status counts
type ListResponse struct {
	Inquiries []Inquiry        `json:"inquiries"`
	Total     int              `json:"total"`
	ByStatus  map[Status]int64 `json:"by_status"`
}
