package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vote cast result labels.
const (
	ResultAccepted        = "accepted"
	ResultDuplicate       = "duplicate"
	ResultFeatureNotFound = "feature_not_found"
	ResultError           = "error"
)

// VoteMetrics holds Prometheus metrics for the voting core.
type VoteMetrics struct {
	VotesCast       *prometheus.CounterVec
	VotesRetracted  prometheus.Counter
	FeaturesCreated prometheus.Counter
	FeaturesDeleted prometheus.Counter
}

// NewVoteMetrics creates and registers voting metrics on the given registry.
func NewVoteMetrics(reg prometheus.Registerer) *VoteMetrics {
	m := &VoteMetrics{
		VotesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Total number of vote cast attempts, by result.",
		}, []string{"result"}),
		VotesRetracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_retracted_total",
			Help:      "Total number of retracted votes.",
		}),
		FeaturesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_created_total",
			Help:      "Total number of created features.",
		}),
		FeaturesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_deleted_total",
			Help:      "Total number of deleted features.",
		}),
	}

	reg.MustRegister(m.VotesCast, m.VotesRetracted, m.FeaturesCreated, m.FeaturesDeleted)
	return m
}
