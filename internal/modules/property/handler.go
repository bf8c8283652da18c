package property

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.List)
	rg.GET("/properties/:id", h.Get)
}

func (h *Handler) RegisterHostRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.Create)
	rg.PUT("/properties/:id", h.Update)
	rg.DELETE("/properties/:id", h.Delete)
	rg.GET("/host/properties", h.MyProperties)
}

func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		Search:   c.Query("search"),
		City:     c.Query("city"),
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
		Page:     parseIntDefault(c.Query("page"), 1),
		Limit:    parseIntDefault(c.Query("limit"), 12),
		Guests:   parseIntDefault(c.Query("guests"), 0),
		Bedrooms: parseIntDefault(c.Query("bedrooms"), 0),
	}
	q.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	q.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)
	if raw := c.Query("amenities"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				q.Amenities = append(q.Amenities, a)
			}
		}
	}

	list, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch properties")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"properties": list,
		"pagination": gin.H{
			"page":  q.Page,
			"limit": q.Limit,
			"total": total,
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property ID")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	p, err := h.service.Create(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		req,
	)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create property")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"property": p})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property ID")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	p, err := h.service.Update(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		id,
		req,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own properties")
		case errors.Is(err, ErrInvalidType):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update property")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property ID")
		return
	}

	err = h.service.Delete(
		c.Request.Context(),
		c.GetInt64("user_id"),
		domain.Role(c.GetString("role")),
		id,
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own properties")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete property")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Property deleted"})
}

func (h *Handler) MyProperties(c *gin.Context) {
	list, err := h.service.MyProperties(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch properties")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"properties": list})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
