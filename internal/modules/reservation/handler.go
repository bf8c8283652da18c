package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.ListMine)
	rg.GET("/reservations/:id", h.Get)
	rg.GET("/reservations/:id/receipt", h.Receipt)
	rg.PUT("/reservations/:id/confirm", h.Confirm)
	rg.PUT("/reservations/:id/reject", h.Reject)
	rg.PUT("/reservations/:id/cancel", h.Cancel)
	rg.POST("/reservations/:id/review", h.AddReview)
	rg.GET("/host/reservations", h.ListForHost)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListAll)
	rg.PUT("/reservations/:id/status", h.ForceStatus)
}

const dateLayout = "2006-01-02"

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	checkIn, err := time.ParseInLocation(dateLayout, req.CheckIn, time.UTC)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.ParseInLocation(dateLayout, req.CheckOut, time.UTC)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), CreateInput{
		PropertyID:      req.PropertyID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case errors.Is(err, ErrInvalidStay):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check-in or check-out date")
		case errors.Is(err, ErrOwnProperty):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot book your own property")
		case errors.Is(err, ErrNotAvailable):
			response.Error(c, http.StatusBadRequest, "NOT_AVAILABLE", "Property is not available for booking")
		case errors.Is(err, ErrCapacityExceeded):
			response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", "Guest count exceeds property capacity")
		case errors.Is(err, ErrDateConflict):
			response.Error(c, http.StatusConflict, "DATE_CONFLICT", "Property is already booked for these dates")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create reservation")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, total, err := h.service.ListForGuest(c.Request.Context(), c.GetInt64("user_id"), h.listQuery(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reservations")
		return
	}
	h.writeList(c, list, total)
}

func (h *Handler) ListForHost(c *gin.Context) {
	list, total, err := h.service.ListForHost(c.Request.Context(), c.GetInt64("user_id"), h.listQuery(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reservations")
		return
	}
	h.writeList(c, list, total)
}

func (h *Handler) ListAll(c *gin.Context) {
	list, total, err := h.service.ListAll(c.Request.Context(), h.listQuery(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reservations")
		return
	}
	h.writeList(c, list, total)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.service.Confirm(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		h.writeError(c, err, "Failed to confirm reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	res, err := h.service.Reject(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		h.writeError(c, err, "Failed to reject reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id, req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) AddReview(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	res, err := h.service.AddReview(c.Request.Context(), c.GetInt64("user_id"), id, req.Rating, req.Comment)
	if err != nil {
		h.writeError(c, err, "Failed to add review")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) ForceStatus(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ForceStatus(c.Request.Context(), c.GetInt64("user_id"), id, domain.ReservationStatus(req.Status))
	if err != nil {
		h.writeError(c, err, "Failed to update reservation status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Receipt(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	pdf, name, err := h.service.Receipt(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		h.writeError(c, err, "Failed to generate receipt")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) listQuery(c *gin.Context) ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return ListQuery{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}
}

func (h *Handler) writeList(c *gin.Context, list []domain.Reservation, total int64) {
	response.Success(c, http.StatusOK, gin.H{
		"reservations": list,
		"pagination":   gin.H{"total": total},
	})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this reservation")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Reservation status does not allow this action")
	case errors.Is(err, ErrReviewExists):
		response.Error(c, http.StatusConflict, "REVIEW_EXISTS", "Reservation already has a review")
	case errors.Is(err, ErrReviewNotAllowed):
		response.Error(c, http.StatusBadRequest, "REVIEW_NOT_ALLOWED", "Only completed stays can be reviewed")
	case errors.Is(err, ErrInvalidRating):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown reservation status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
