package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_matches_created_total",
			Help: "The total number of matches created by matchmaking.",
		}),
		MatchesResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_matches_resolved_total",
			Help: "The total number of matches that reached a terminal resolved state.",
		}),
		DraftActions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_draft_actions_total",
			Help: "The total number of draft actions applied.",
		}),
		EvidenceRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_evidence_records_total",
			Help: "The total number of anti-cheat evidence records stored.",
		}),
		DisputesOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_disputes_opened_total",
			Help: "The total number of disputes opened against matches.",
		}),
		MatchmakingSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_matchmaking_searches_total",
			Help: "The total number of matchmaking search requests handled.",
		}),
		OperationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arena_operation_duration_seconds",
			Help:    "The duration of individual match-core operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arena_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arena_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.MatchesResolved,
		s.DraftActions,
		s.EvidenceRecorded,
		s.DisputesOpened,
		s.MatchmakingSearches,
		s.OperationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated() {
	s.MatchesCreated.Inc()
}

func (s *Service) IncMatchesResolved() {
	s.MatchesResolved.Inc()
}

func (s *Service) IncDraftActions() {
	s.DraftActions.Inc()
}

func (s *Service) IncEvidenceRecorded() {
	s.EvidenceRecorded.Inc()
}

func (s *Service) IncDisputesOpened() {
	s.DisputesOpened.Inc()
}

func (s *Service) IncMatchmakingSearches() {
	s.MatchmakingSearches.Inc()
}

func (s *Service) ObserveOperationDuration(duration float64) {
	s.OperationDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
