package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventify_drafts_created_total",
		Help: "Listing drafts started, by mode.",
	}, []string{"mode"})

	DraftSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventify_draft_submissions_total",
		Help: "Listing draft submissions, by outcome.",
	}, []string{"outcome"})

	ImageCapacityRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventify_image_capacity_rejections_total",
		Help: "Image batches rejected for exceeding the per-listing cap.",
	})

	QuotesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventify_quotes_computed_total",
		Help: "Booking quotes computed.",
	})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventify_bookings_created_total",
		Help: "Bookings accepted.",
	})
)
