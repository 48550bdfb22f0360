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

type Server struct {
	Matches        match.Store
	Disputes       dispute.Store
	Leagues        league.Store
	Referee        *referee.Referee
	Coordinator    *matchmaking.Coordinator
	Rating         rating.Config
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
