package service

import "github.com/dmedvedev/secure-content/internal/observability/metrics"

func incrementRegistrations() {
	metrics.RegistrationsTotal.Inc()
}

func incrementRegistrationConflict(field string) {
	metrics.RegistrationConflicts.WithLabelValues(field).Inc()
}

func incrementLoginFailures() {
	metrics.LoginFailures.Inc()
}

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}
