package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	SanitizerModifiedFields = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sanitizer_modified_fields_total",
			Help: "Total number of fields changed by sanitization",
		},
	)
)
