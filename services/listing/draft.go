package listing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eventify/models"

	"github.com/google/uuid"
)

// NewDraft returns an empty draft for creating a listing.
func NewDraft(vendorID string) *models.ServiceDraft {
	now := time.Now()
	return &models.ServiceDraft{
		ID:        uuid.New().String(),
		VendorID:  vendorID,
		Mode:      models.DraftModeCreate,
		Details:   map[string]models.DetailValue{},
		FAQs:      []models.FAQ{},
		Variants:  []models.Variant{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DraftFromService hydrates an edit-mode draft from a published service.
func DraftFromService(svc *models.Service) *models.ServiceDraft {
	d := NewDraft(svc.VendorID)
	d.Mode = models.DraftModeEdit
	d.ServiceID = svc.ID
	d.Title = svc.Title
	d.Description = svc.Description
	d.Category = svc.Category
	d.SubCategory = svc.SubCategory
	d.Tags = strings.Join(svc.Tags, ", ")
	d.Location = svc.Location
	d.Phone = svc.Phone
	d.Website = svc.Website
	if svc.SocialLinks != nil {
		d.SocialLinks = *svc.SocialLinks
	}
	for k, v := range svc.Details {
		d.Details[k] = v
	}
	d.FAQs = append(d.FAQs, svc.FAQs...)
	for _, v := range svc.Variants {
		d.Variants = append(d.Variants, cloneVariant(v))
	}
	d.ExistingImages = append([]string{}, svc.Images...)
	return d
}

func cloneVariant(v models.Variant) models.Variant {
	if v.Price != nil {
		v.Price = models.Float(*v.Price)
	}
	if v.MinQty != nil {
		v.MinQty = models.Int(*v.MinQty)
	}
	if v.MaxQty != nil {
		v.MaxQty = models.Int(*v.MaxQty)
	}
	return v
}

// remoteService mirrors models.Service as some clients send it, with the nested
// structures possibly encoded as JSON strings.
type remoteService struct {
	models.Service
	Tags     json.RawMessage `json:"tags"`
	Details  json.RawMessage `json:"details"`
	FAQs     json.RawMessage `json:"faqs"`
	Variants json.RawMessage `json:"variants"`
}

// DecodeService parses a service record whose details, faqs, variants or tags may
// arrive either as JSON values or as JSON encoded strings.
func DecodeService(data []byte) (*models.Service, error) {
	var raw remoteService
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("listing.DecodeService: %w", err)
	}
	svc := raw.Service
	if err := decodeLenient(raw.Details, &svc.Details); err != nil {
		return nil, fmt.Errorf("listing.DecodeService: details: %w", err)
	}
	if err := decodeLenient(raw.FAQs, &svc.FAQs); err != nil {
		return nil, fmt.Errorf("listing.DecodeService: faqs: %w", err)
	}
	if err := decodeLenient(raw.Variants, &svc.Variants); err != nil {
		return nil, fmt.Errorf("listing.DecodeService: variants: %w", err)
	}
	if len(raw.Tags) > 0 {
		var joined string
		if err := json.Unmarshal(raw.Tags, &joined); err == nil {
			svc.Tags = SplitTags(joined)
		} else if err := json.Unmarshal(raw.Tags, &svc.Tags); err != nil {
			return nil, fmt.Errorf("listing.DecodeService: tags: %w", err)
		}
	}
	if svc.Details == nil {
		svc.Details = map[string]models.DetailValue{}
	}
	return &svc, nil
}

// decodeLenient decodes data into out, unwrapping one level of string encoding.
func decodeLenient(data json.RawMessage, out any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		if strings.TrimSpace(encoded) == "" {
			return nil
		}
		data = json.RawMessage(encoded)
	}
	return json.Unmarshal(data, out)
}

// SplitTags turns a comma joined tag string into trimmed, non-empty tags.
func SplitTags(joined string) []string {
	tags := []string{}
	for _, t := range strings.Split(joined, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SetCategory switches the draft to another category. The sub category and details
// belong to the previous category and are cleared.
func SetCategory(d *models.ServiceDraft, categoryID string) {
	if d.Category == categoryID {
		return
	}
	d.Category = categoryID
	d.SubCategory = ""
	d.Details = map[string]models.DetailValue{}
}

// FieldsPatch updates the scalar fields and details of a draft. Nil fields are left untouched.
type FieldsPatch struct {
	Title       *string                       `json:"title"`
	Description *string                       `json:"description"`
	SubCategory *string                       `json:"subCategory"`
	Tags        *string                       `json:"tags"`
	Location    *string                       `json:"location"`
	Phone       *string                       `json:"phone"`
	Website     *string                       `json:"website"`
	SocialLinks *models.SocialLinks           `json:"socialLinks"`
	Details     map[string]models.DetailValue `json:"details"`
}

// ApplyFields applies patch to d. Detail values are bound to the declared field types;
// a value that does not fit its field is rejected and d is left unchanged.
func ApplyFields(d *models.ServiceDraft, patch FieldsPatch, fields []models.DynamicField) error {
	var details map[string]models.DetailValue
	if patch.Details != nil {
		decoded, err := models.DecodeDetails(patch.Details, fields)
		if err != nil {
			return err
		}
		details = decoded
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.Title, patch.Title)
	set(&d.Description, patch.Description)
	set(&d.SubCategory, patch.SubCategory)
	set(&d.Tags, patch.Tags)
	set(&d.Location, patch.Location)
	set(&d.Phone, patch.Phone)
	set(&d.Website, patch.Website)
	if patch.SocialLinks != nil {
		d.SocialLinks = *patch.SocialLinks
	}
	if d.Details == nil {
		d.Details = map[string]models.DetailValue{}
	}
	for k, v := range details {
		d.Details[k] = v
	}
	return nil
}
