package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/match"
	"github.com/trentd187/statteam/internal/metrics"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/roster"
	"github.com/trentd187/statteam/internal/session"
)

// Deps bundles the services the routes are built from.
type Deps struct {
	Store     *database.Store
	Auth      *session.Authenticator
	Issuer    *session.Issuer
	Authority *ownership.Authority
	Roster    *roster.Service
	Recorder  *match.Recorder
	Metrics   *metrics.Engine
}

// Register mounts GET /health and every /api/v1 route on app.
//
// Route group pattern: app.Group(prefix, middlewares...) applies the middleware
// to every route registered on the returned group, so we don't have to repeat it per route.
// Reads are open to visitors; ownership of a team is checked inside the services, so only
// the purely role-based gates appear here.
func Register(app fiber.Router, d Deps) {
	app.Get("/health", HealthCheck)

	api := app.Group("/api/v1", middleware.Auth(d.Issuer, d.Auth))
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Session
	api.Post("/login", Login(d.Auth, d.Issuer))
	api.Post("/logout", Logout)
	api.Post("/captains", RegisterCaptain(d.Auth))
	api.Get("/me/team", MyTeam(d.Authority))

	// Teams and their players
	api.Get("/teams", ListTeams(d.Roster))
	api.Post("/teams", CreateTeam(d.Roster))
	api.Get("/teams/:id", GetTeam(d.Metrics, d.Authority, d.Recorder))
	api.Put("/teams/:id", UpdateTeam(d.Roster))
	api.Delete("/teams/:id", DeleteTeam(d.Roster))
	api.Get("/teams/:id/analysis", TeamAnalysis(d.Metrics))
	api.Get("/teams/:id/winrate", TeamWinRate(d.Metrics))
	api.Get("/teams/:id/matches", TeamMatches(d.Recorder))
	api.Put("/teams/:id/captain", AssignCaptain(d.Authority))
	api.Delete("/teams/:id/captain", UnassignCaptain(d.Authority))
	api.Get("/teams/:id/players", ListPlayers(d.Roster))
	api.Post("/teams/:id/players", CreatePlayer(d.Roster))
	api.Put("/players/:id", UpdatePlayer(d.Roster))
	api.Delete("/players/:id", DeletePlayer(d.Roster))
	api.Get("/players/:id/kd", PlayerKD(d.Metrics))

	// Maps and matches
	api.Get("/maps", ListMaps(d.Roster))
	api.Post("/maps", CreateMap(d.Roster))
	api.Delete("/maps/:id", DeleteMap(d.Roster))
	api.Post("/matches", RecordMatch(d.Recorder))

	// Reports
	api.Get("/leaderboard", Leaderboard(d.Metrics))
	api.Get("/exports/:kind", Export(d.Metrics))

	// Administration
	api.Get("/captains", ListCaptains(d.Roster))
	api.Delete("/captains/:username", DeleteCaptain(d.Roster))
	api.Get("/store", GetStore(d.Store))
	api.Put("/store", adminOnly, SwitchStore(d.Store))
}
