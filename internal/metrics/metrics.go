package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_bookings_created_total",
		Help: "Appointments successfully booked.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_booking_conflicts_total",
		Help: "Booking attempts rejected because the slot was already taken.",
	})

	AvailabilityLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_availability_lookups_total",
		Help: "Availability resolutions served.",
	})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_notifications_sent_total",
		Help: "Confirmation emails delivered to the mailer.",
	})

	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_notifications_failed_total",
		Help: "Confirmation emails the mailer rejected.",
	})

	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_notifications_dropped_total",
		Help: "Notifications dropped because the outbound queue was full.",
	})
)
