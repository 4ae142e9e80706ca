package models

import "time"

// Service is a published service listing.
type Service struct {
	ID          string                 `bson:"id" json:"id"`
	VendorID    string                 `bson:"vendorId,omitempty" json:"vendorId,omitempty"`
	Title       string                 `bson:"title" json:"title"`
	Description string                 `bson:"description" json:"description"`
	Category    string                 `bson:"category" json:"category"`
	SubCategory string                 `bson:"subCategory" json:"subCategory"`
	Tags        []string               `bson:"tags" json:"tags"`
	Location    string                 `bson:"location" json:"location"`
	Phone       string                 `bson:"phone,omitempty" json:"phone,omitempty"`
	Website     string                 `bson:"website,omitempty" json:"website,omitempty"`
	SocialLinks *SocialLinks           `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Details     map[string]DetailValue `bson:"details" json:"details"`
	FAQs        []FAQ                  `bson:"faqs" json:"faqs"`
	Variants    []Variant              `bson:"variants" json:"variants"`
	Images      []string               `bson:"images" json:"images"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}
