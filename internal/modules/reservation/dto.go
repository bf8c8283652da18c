package reservation

type CreateReservationRequest struct {
	PropertyID      int64  `json:"property_id" validate:"required"`
	CheckIn         string `json:"check_in" validate:"required"`
	CheckOut        string `json:"check_out" validate:"required"`
	Guests          int    `json:"guests" validate:"required,gte=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

type ForceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListQuery struct {
	Status string
	Page   int
	Limit  int
}
