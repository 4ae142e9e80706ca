package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"eventify/models"
)

// Multipart field names of a listing submission.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldSubCategory   = "subCategory"
	FieldTags          = "tags"
	FieldLocation      = "location"
	FieldPhone         = "phone"
	FieldWebsite       = "website"
	FieldSocialLinks   = "socialLinks"
	FieldDetails       = "details"
	FieldFAQs          = "faqs"
	FieldVariants      = "variants"
	FieldRemovedImages = "removedImages"
	FieldImages        = "images"
)

// FormField is one text part of the payload.
type FormField struct {
	Name  string
	Value string
}

// FilePart is one new image of the payload, read from the preview store on encode.
type FilePart struct {
	Filename    string
	ContentType string
	Preview     string
}

// Payload is a serialized draft, ready to be sent as multipart/form-data.
// ServiceID is empty when the payload creates a listing.
type Payload struct {
	ServiceID     string
	Fields        []FormField
	RemovedImages []string
	Files         []FilePart
}

// Get returns the value of the named text field.
func (p *Payload) Get(name string) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Serialize encodes a validated draft. Optional fields are left out when empty;
// variants are always sent in full.
func Serialize(d *models.ServiceDraft) (*Payload, error) {
	p := &Payload{}
	if d.IsEditMode() {
		p.ServiceID = d.ServiceID
	}

	add := func(name, value string) {
		p.Fields = append(p.Fields, FormField{Name: name, Value: value})
	}
	addOptional := func(name, value string) {
		if strings.TrimSpace(value) != "" {
			add(name, value)
		}
	}
	addJSON := func(name string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("listing.Serialize: %s: %w", name, err)
		}
		add(name, string(data))
		return nil
	}

	add(FieldTitle, d.Title)
	add(FieldDescription, d.Description)
	add(FieldCategory, d.Category)
	add(FieldSubCategory, d.SubCategory)
	addOptional(FieldTags, d.Tags)
	add(FieldLocation, d.Location)
	addOptional(FieldPhone, d.Phone)
	addOptional(FieldWebsite, d.Website)

	if !d.SocialLinks.IsEmpty() {
		if err := addJSON(FieldSocialLinks, d.SocialLinks); err != nil {
			return nil, err
		}
	}

	details := d.Details
	if details == nil {
		details = map[string]models.DetailValue{}
	}
	if err := addJSON(FieldDetails, details); err != nil {
		return nil, err
	}
	faqs := d.FAQs
	if faqs == nil {
		faqs = []models.FAQ{}
	}
	if err := addJSON(FieldFAQs, faqs); err != nil {
		return nil, err
	}
	variants := d.Variants
	if variants == nil {
		variants = []models.Variant{}
	}
	if err := addJSON(FieldVariants, variants); err != nil {
		return nil, err
	}

	if len(d.PendingRemovals) > 0 {
		p.RemovedImages = append([]string{}, d.PendingRemovals...)
		if err := addJSON(FieldRemovedImages, p.RemovedImages); err != nil {
			return nil, err
		}
	}

	for _, f := range d.PendingNewFiles {
		p.Files = append(p.Files, FilePart{Filename: f.Filename, ContentType: f.ContentType, Preview: f.Preview})
	}
	return p, nil
}

// Opener opens the staged content behind a preview handle.
type Opener func(preview string) (io.ReadCloser, error)

// WriteMultipart writes the payload to mw. The caller closes mw.
func (p *Payload) WriteMultipart(mw *multipart.Writer, open Opener) error {
	for _, f := range p.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", f.Name, err)
		}
	}
	for _, f := range p.Files {
		if err := writeFilePart(mw, f, open); err != nil {
			return err
		}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(mw *multipart.Writer, f FilePart, open Opener) error {
	src, err := open(f.Preview)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Filename, err)
	}
	defer src.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldImages, quoteEscaper.Replace(f.Filename)))
	h.Set("Content-Type", contentType)
	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part for %s: %w", f.Filename, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Filename, err)
	}
	return nil
}

// Submission is a listing payload as decoded on the receiving side. Optional fields
// are nil when the sender left them out.
type Submission struct {
	Title         string
	Description   string
	Category      string
	SubCategory   string
	Tags          *string
	Location      string
	Phone         *string
	Website       *string
	SocialLinks   *models.SocialLinks
	Details       map[string]models.DetailValue
	FAQs          []models.FAQ
	Variants      []models.Variant
	RemovedImages []string
	Files         []*multipart.FileHeader
}

// DecodeMultipart parses a submission written by Payload.WriteMultipart.
func DecodeMultipart(form *multipart.Form) (*Submission, error) {
	value := func(name string) (string, bool) {
		vs, ok := form.Value[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}
	optional := func(name string) *string {
		if v, ok := value(name); ok {
			return &v
		}
		return nil
	}
	decode := func(name string, out any) error {
		v, ok := value(name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(v), out); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		return nil
	}

	s := &Submission{
		Tags:    optional(FieldTags),
		Phone:   optional(FieldPhone),
		Website: optional(FieldWebsite),
		Files:   form.File[FieldImages],
	}
	s.Title, _ = value(FieldTitle)
	s.Description, _ = value(FieldDescription)
	s.Category, _ = value(FieldCategory)
	s.SubCategory, _ = value(FieldSubCategory)
	s.Location, _ = value(FieldLocation)

	if _, ok := value(FieldSocialLinks); ok {
		s.SocialLinks = &models.SocialLinks{}
		if err := decode(FieldSocialLinks, s.SocialLinks); err != nil {
			return nil, err
		}
	}
	if err := decode(FieldDetails, &s.Details); err != nil {
		return nil, err
	}
	if err := decode(FieldFAQs, &s.FAQs); err != nil {
		return nil, err
	}
	if err := decode(FieldVariants, &s.Variants); err != nil {
		return nil, err
	}
	if err := decode(FieldRemovedImages, &s.RemovedImages); err != nil {
		return nil, err
	}
	if s.Variants == nil {
		s.Variants = []models.Variant{}
	}
	return s, nil
}
