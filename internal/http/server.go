package http

import (
	"net/http"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/config"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/matchmaking"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/metrics"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/notifier"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/pubsub"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/rating"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/referee"
)

func NewServer(matches match.Store, disputes dispute.Store, leagues league.Store, ref *referee.Referee, coordinator *matchmaking.Coordinator, ratingCfg rating.Config, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Matches:        matches,
		Disputes:       disputes,
		Leagues:        leagues,
		Referee:        ref,
		Coordinator:    coordinator,
		Rating:         ratingCfg,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/matches/get", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/checkin", Chain(s.CheckinHandler(), paramsMiddleware))
	s.Router.Handle("/matches/cancel", Chain(s.CancelMatchHandler(), paramsMiddleware))
	s.Router.Handle("/matches/expire", Chain(s.ExpireHandler(), paramsMiddleware))
	s.Router.Handle("/draft/action", Chain(s.DraftActionHandler(), paramsMiddleware))
	s.Router.Handle("/evidence/precheck", Chain(s.PrecheckHandler(), paramsMiddleware))
	s.Router.Handle("/evidence/inrun", Chain(s.InrunHandler(), paramsMiddleware))
	s.Router.Handle("/result", Chain(s.RecordResultHandler(), paramsMiddleware))
	s.Router.Handle("/confirm", Chain(s.ConfirmHandler(), paramsMiddleware))
	s.Router.Handle("/dispute/open", Chain(s.OpenDisputeHandler(), paramsMiddleware))
	s.Router.Handle("/dispute/resolve", Chain(s.ResolveDisputeHandler(), paramsMiddleware))
	s.Router.Handle("/disputes", Chain(s.ListDisputesHandler(), paramsMiddleware))
	s.Router.Handle("/matchmaking/search", Chain(s.MatchmakingSearchHandler(), paramsMiddleware))
	s.Router.Handle("/matchmaking/status", Chain(s.MatchmakingStatusHandler(), paramsMiddleware))
	s.Router.Handle("/matchmaking/cancel", Chain(s.MatchmakingCancelHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/standings/apply", Chain(s.ApplyRatingHandler(), paramsMiddleware))
	s.Router.Handle("/seasons/active", Chain(s.ActiveSeasonHandler(), paramsMiddleware))
	s.Router.Handle("/agents", Chain(s.ListAgentsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
