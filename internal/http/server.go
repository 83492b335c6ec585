package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/elo-ladder/internal/config"
	"github.com/mauv0809/elo-ladder/internal/events"
	"github.com/mauv0809/elo-ladder/internal/feed"
	"github.com/mauv0809/elo-ladder/internal/leaderboard"
	"github.com/mauv0809/elo-ladder/internal/metrics"
	"github.com/mauv0809/elo-ladder/internal/notifier"
	"github.com/mauv0809/elo-ladder/internal/snapshot"
)

// NewServer wires the HTTP adapter around an injected leaderboard. checkpoints may be nil.
func NewServer(lb *leaderboard.Leaderboard, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, publisher events.Publisher, checkpoints snapshot.Store, hub feed.Feed) *Server {
	server := &Server{
		Leaderboard:    lb,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Events:         publisher,
		Checkpoints:    checkpoints,
		Feed:           hub,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Get("/ws", s.Feed.Handler(s.Leaderboard))

	s.Router.Group(func(r chi.Router) {
		r.Use(requestIDMiddleware, paramsMiddleware)

		r.Get("/health", s.HealthCheckHandler())
		r.Get("/players", s.StandingsHandler())
		r.Get("/players/top", s.TopHandler())
		r.Get("/player/{name}", s.GetPlayerHandler())
		r.Get("/export", s.ExportHandler())

		r.Post("/add_player", s.AddPlayerHandler())
		r.Post("/record_match", s.RecordMatchHandler())
		r.Post("/remove_player", s.RemovePlayerHandler())
		r.Post("/import", s.ImportHandler())
		r.Post("/notify/standings", s.NotifyStandingsHandler())

		r.Post("/pubsub/match-results", s.MatchResultsPushHandler())

		r.Group(func(r chi.Router) {
			r.Use(slackVerificationMiddleware(s.Cfg.Slack.SigningSecret))
			r.Post("/slack/command/leaderboard", s.LeaderboardCommandHandler())
			r.Post("/slack/command/player", s.PlayerCommandHandler())
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
