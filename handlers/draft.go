package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"eventify/models"
	"eventify/services/listing"
	"eventify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DraftHandler exposes the listing editor over HTTP.
type DraftHandler struct {
	Drafts *listing.DraftService
}

func NewDraftHandler(drafts *listing.DraftService) *DraftHandler {
	return &DraftHandler{Drafts: drafts}
}

// draftResponse is a draft together with the schema of its category, which is all
// the editor needs to render the form.
type draftResponse struct {
	Draft  *models.ServiceDraft  `json:"draft"`
	Fields []models.DynamicField `json:"fields"`
	Sub    []string              `json:"subCategories"`
}

func (h *DraftHandler) respond(c *gin.Context, status int, d *models.ServiceDraft) {
	schema, err := h.Drafts.Schema(c.Request.Context(), d)
	if err != nil {
		getLogger(c).Warn("failed to resolve draft schema", zap.String("draftID", d.ID), zap.Error(err))
	}
	c.JSON(status, draftResponse{Draft: d, Fields: schema.InputFields(), Sub: schema.SubCategories})
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, fmt.Errorf("index must be a number: %w", err))
		return 0, false
	}
	return index, true
}

// CreateDraft handles POST /api/drafts. With a serviceId the draft edits that listing.
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var body struct {
		VendorID  string `json:"vendorId"`
		ServiceID string `json:"serviceId"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
	}
	d, err := h.Drafts.Create(c.Request.Context(), body.VendorID, body.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.DraftsCreated.WithLabelValues(string(d.Mode)).Inc()
	h.respond(c, http.StatusCreated, d)
}

// GetDraft handles GET /api/drafts/:id.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	d, err := h.Drafts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// DiscardDraft handles DELETE /api/drafts/:id.
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	if err := h.Drafts.Discard(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateFields handles PATCH /api/drafts/:id.
func (h *DraftHandler) UpdateFields(c *gin.Context) {
	var patch listing.FieldsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.Drafts.UpdateFields(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// ChangeCategory handles PUT /api/drafts/:id/category.
func (h *DraftHandler) ChangeCategory(c *gin.Context) {
	var body struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.Drafts.ChangeCategory(c.Request.Context(), c.Param("id"), body.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// AddVariant handles POST /api/drafts/:id/variants.
func (h *DraftHandler) AddVariant(c *gin.Context) {
	d, err := h.Drafts.AddVariant(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, d)
}

// UpdateVariant handles PATCH /api/drafts/:id/variants/:index.
func (h *DraftHandler) UpdateVariant(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var patch listing.VariantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.Drafts.UpdateVariant(c.Request.Context(), c.Param("id"), index, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// RemoveVariant handles DELETE /api/drafts/:id/variants/:index.
func (h *DraftHandler) RemoveVariant(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	d, err := h.Drafts.RemoveVariant(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// AddFAQ handles POST /api/drafts/:id/faqs. Incomplete pairs are ignored.
func (h *DraftHandler) AddFAQ(c *gin.Context) {
	var faq models.FAQ
	if err := c.ShouldBindJSON(&faq); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.Drafts.AddFAQ(c.Request.Context(), c.Param("id"), faq)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// RemoveFAQ handles DELETE /api/drafts/:id/faqs/:index.
func (h *DraftHandler) RemoveFAQ(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	d, err := h.Drafts.RemoveFAQ(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// AddImages handles POST /api/drafts/:id/images with repeated "files" parts.
func (h *DraftHandler) AddImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, err)
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		badRequest(c, errors.New("no files provided"))
		return
	}

	uploads := make([]listing.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			badRequest(c, fmt.Errorf("failed to read %s: %w", fh.Filename, err))
			return
		}
		defer f.Close()
		uploads = append(uploads, listing.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}

	d, err := h.Drafts.AddFiles(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// RemoveExistingImage handles DELETE /api/drafts/:id/images/existing/:index.
func (h *DraftHandler) RemoveExistingImage(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	d, err := h.Drafts.RemoveExistingImage(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// RemoveNewImage handles DELETE /api/drafts/:id/images/new/:index.
func (h *DraftHandler) RemoveNewImage(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	d, err := h.Drafts.RemoveNewFile(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, d)
}

// ValidateDraft handles POST /api/drafts/:id/validate.
func (h *DraftHandler) ValidateDraft(c *gin.Context) {
	verrs, err := h.Drafts.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": verrs.Valid(), "errors": verrs})
}

// SubmitDraft handles POST /api/drafts/:id/submit.
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	svc, verrs, err := h.Drafts.Submit(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, listing.ErrInvalidDraft):
		utils.DraftSubmissions.WithLabelValues("invalid").Inc()
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "errors": verrs})
		return
	case err != nil:
		utils.DraftSubmissions.WithLabelValues("failed").Inc()
		respondError(c, err)
		return
	}
	utils.DraftSubmissions.WithLabelValues("published").Inc()
	c.JSON(http.StatusOK, svc)
}
