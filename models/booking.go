package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
)

// LineItem is one variant and the quantity booked of it.
type LineItem struct {
	Variant  string `bson:"variant" json:"variant"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// Quote is the priced result of a variant selection. It is derived and never stored.
type Quote struct {
	LineItems []LineItem `json:"lineItems"`
	Subtotal  float64    `json:"subtotal"`
}

// BookingRequest is what a customer submits to book a service.
type BookingRequest struct {
	ServiceID     string         `json:"service" binding:"required"`
	CustomerName  string         `json:"name" binding:"required"`
	CustomerEmail string         `json:"email" binding:"required"`
	CustomerPhone string         `json:"phone"`
	Date          string         `json:"date" binding:"required"`
	Message       string         `json:"message"`
	Selection     map[string]int `json:"selection"`
}

// Booking is a booking handed to the booking store.
type Booking struct {
	ID            string     `bson:"id" json:"id"`
	ServiceID     string     `bson:"service" json:"service"`
	CustomerName  string     `bson:"name" json:"name"`
	CustomerEmail string     `bson:"email" json:"email"`
	CustomerPhone string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Date          string     `bson:"date" json:"date"`
	Message       string     `bson:"message,omitempty" json:"message,omitempty"`
	TotalPrice    float64    `bson:"totalPrice" json:"totalPrice"`
	LineItems     []LineItem `bson:"lineItems" json:"lineItems"`
	Status        string     `bson:"status" json:"status"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
}
