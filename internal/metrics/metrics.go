package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Auth flow metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "registrations_total",
		Help:      "Total accounts created.",
	})

	LoginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "logins_total",
		Help:      "Total successful logins.",
	})

	VerificationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "verifications_total",
		Help:      "Total accounts verified via OTP.",
	})

	PasswordResetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "password_resets_total",
		Help:      "Total passwords reset via OTP.",
	})

	OtpEmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "otp_emails_total",
		Help:      "Total OTP emails sent, by kind.",
	}, []string{"kind"})

	// Janitor metrics

	JanitorClearedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "janitor_cleared_otps_total",
		Help:      "Total expired OTP pairs cleared by the janitor.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "accounts",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		VerificationsTotal,
		PasswordResetsTotal,
		OtpEmailsTotal,
		JanitorClearedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
