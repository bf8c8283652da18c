package ticket

type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,max=200"`
	Category string `json:"category" validate:"required"`
	Priority string `json:"priority"`
	Message  string `json:"message" validate:"required,max=2000"`
}

type ReplyRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
