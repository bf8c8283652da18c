package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staylocal/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/dashboard", h.Dashboard)
}

func (h *Handler) RegisterHostRoutes(rg *gin.RouterGroup) {
	rg.GET("/host/stats", h.HostStats)
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"dashboard": d})
}

func (h *Handler) HostStats(c *gin.Context) {
	stats, err := h.service.HostStats(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build host stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
