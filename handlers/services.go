package handlers

import (
	"net/http"

	serviceRepo "eventify/database/repository/service"
	"eventify/services/listing"
	"eventify/services/publisher"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler receives listing submissions and serves published listings.
type ServiceHandler struct {
	Publisher *publisher.Publisher
	Services  serviceRepo.ServiceRepository
}

func NewServiceHandler(p *publisher.Publisher, services serviceRepo.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{Publisher: p, Services: services}
}

// CreateService handles POST /api/services.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	h.ingest(c, "", http.StatusCreated)
}

// UpdateService handles PUT /api/services/:id.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	h.ingest(c, c.Param("id"), http.StatusOK)
}

func (h *ServiceHandler) ingest(c *gin.Context, serviceID string, status int) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, err)
		return
	}
	sub, err := listing.DecodeMultipart(form)
	if err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.Publisher.Apply(c.Request.Context(), serviceID, sub)
	if err != nil {
		getLogger(c).Warn("failed to publish listing", zap.String("serviceID", serviceID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(status, svc)
}

// GetService handles GET /api/services/:id.
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.Services.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}
