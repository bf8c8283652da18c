package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staylocal/internal/domain"
	"staylocal/internal/pkg/response"
	"staylocal/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts under the admin-gated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/:id", h.GetUser)
	rg.PUT("/users/:id/role", h.UpdateUserRole)
	rg.PUT("/users/:id/active", h.SetUserActive)
	rg.DELETE("/users/:id", h.DeleteUser)

	rg.GET("/properties/pending", h.PendingProperties)
	rg.PUT("/properties/:id/approve", h.ApproveProperty)
	rg.PUT("/properties/:id/reject", h.RejectProperty)
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	var isActive *bool
	switch c.Query("is_active") {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), c.Query("role"), isActive, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": gin.H{"total": total},
	})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.UpdateUserRole(c.Request.Context(), id, domain.Role(req.Role))
	if err != nil {
		h.writeError(c, err, "Failed to update role")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) SetUserActive(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	u, err := h.service.SetUserActive(c.Request.Context(), c.GetInt64("user_id"), id, *req.IsActive)
	if err != nil {
		h.writeError(c, err, "Failed to update user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err, "Failed to delete user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *Handler) PendingProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	list, total, err := h.service.PendingProperties(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch properties")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"properties": list,
		"pagination": gin.H{"total": total},
	})
}

func (h *Handler) ApproveProperty(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	p, err := h.service.ApproveProperty(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err, "Failed to approve property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) RejectProperty(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req RejectPropertyRequest
	_ = c.ShouldBindJSON(&req)

	p, err := h.service.RejectProperty(c.Request.Context(), c.GetInt64("user_id"), id, req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to reject property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrSelfDelete), errors.Is(err, ErrSelfDeactivate):
		response.Error(c, http.StatusBadRequest, "SELF_ACTION", err.Error())
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown role")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
