package admin

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type RejectPropertyRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
