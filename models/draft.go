package models

import "time"

// DraftMode tells whether a draft creates a new listing or edits a published one.
type DraftMode string

const (
	DraftModeCreate DraftMode = "create"
	DraftModeEdit   DraftMode = "edit"
)

// SocialLinks holds optional vendor profile links.
type SocialLinks struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
}

// IsEmpty reports whether none of the links is set.
func (s SocialLinks) IsEmpty() bool {
	return s.Facebook == "" && s.Instagram == "" && s.Twitter == ""
}

type FAQ struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// NewFile is a file chosen for upload but not yet submitted. Preview is the handle
// of the staged copy and must be released exactly once.
type NewFile struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Preview     string `json:"preview"`
}

// ServiceDraft is the unsaved state of a listing being created or edited. It is owned
// by a single editing flow and discarded on submit or cancel.
type ServiceDraft struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"serviceId,omitempty"`
	VendorID  string    `json:"vendorId,omitempty"`
	Mode      DraftMode `json:"mode"`

	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	SubCategory string      `json:"subCategory"`
	Tags        string      `json:"tags"`
	Location    string      `json:"location"`
	Phone       string      `json:"phone,omitempty"`
	Website     string      `json:"website,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`

	Details  map[string]DetailValue `json:"details"`
	FAQs     []FAQ                  `json:"faqs"`
	Variants []Variant              `json:"variants"`

	ExistingImages  []string  `json:"existingImages"`
	PendingRemovals []string  `json:"pendingRemovals"`
	PendingNewFiles []NewFile `json:"pendingNewFiles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsEditMode reports whether the draft edits a published service.
func (d *ServiceDraft) IsEditMode() bool {
	return d.Mode == DraftModeEdit
}

// IsRemoved reports whether ref is scheduled for removal.
func (d *ServiceDraft) IsRemoved(ref string) bool {
	for _, r := range d.PendingRemovals {
		if r == ref {
			return true
		}
	}
	return false
}

// VisibleImages returns the existing images that are not scheduled for removal.
func (d *ServiceDraft) VisibleImages() []string {
	visible := make([]string, 0, len(d.ExistingImages))
	for _, ref := range d.ExistingImages {
		if !d.IsRemoved(ref) {
			visible = append(visible, ref)
		}
	}
	return visible
}

// ImageCount is the number of images the listing would have after submission.
func (d *ServiceDraft) ImageCount() int {
	return len(d.ExistingImages) - len(d.PendingRemovals) + len(d.PendingNewFiles)
}
