package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeMatched = "matched"
	OutcomeEmpty   = "empty"
)

var (
	AdvisorTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_turns_total",
			Help: "Total number of conversation turns, by the step they advanced to",
		},
		[]string{"step"},
	)

	AdvisorRecommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_total",
			Help: "Total number of completed dialogues, by outcome",
		},
		[]string{"outcome"}, // "matched", "empty"
	)

	AdvisorRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_rate_limited_total",
			Help: "Total number of chat requests rejected by the rate limiter",
		},
	)

	AdvisorRecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_recommendation_candidates",
			Help:    "Number of creations returned when a dialogue completes",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

func RecordTurn(step string) {
	AdvisorTurns.WithLabelValues(step).Inc()
}

// RecordRecommendation counts a completed dialogue and how many creations it returned.
func RecordRecommendation(matched bool, returned int) {
	outcome := OutcomeEmpty
	if matched {
		outcome = OutcomeMatched
	}
	AdvisorRecommendations.WithLabelValues(outcome).Inc()
	AdvisorRecommendationCandidates.Observe(float64(returned))
}

func RecordRateLimited() {
	AdvisorRateLimited.Inc()
}
