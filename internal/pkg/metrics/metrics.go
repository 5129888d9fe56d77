package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FollowUpChecks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_follow_up_checks_total",
			Help: "Total number of follow-up reconciliation runs",
		},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type", "source"},
	)

	ReminderEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_reminder_emails_total",
			Help: "Follow-up reminder email attempts by outcome",
		},
		[]string{"outcome"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_emails_sent_total",
			Help: "Outbound emails by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
