// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StageParticipantsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_stage_participants_processed_total",
			Help: "Total number of participants processed per stage",
		},
		[]string{"stage"},
	)

	StageParticipantsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_stage_participants_failed_total",
			Help: "Total number of participant failures per stage",
		},
		[]string{"stage", "error_code"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "outreach_stage_duration_seconds",
			Help: "Duration of stage processing in seconds",
		},
		[]string{"stage"},
	)

	WorkflowRunsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "outreach_workflow_runs_active",
			Help: "Number of workflow runs currently in flight",
		},
		[]string{"event"},
	)

	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_provider_requests_total",
			Help: "Total requests issued to external providers",
		},
		[]string{"provider", "status"},
	)
)
