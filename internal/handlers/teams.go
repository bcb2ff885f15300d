package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/statteam/internal/match"
	"github.com/trentd187/statteam/internal/metrics"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/roster"
)

// TeamDetail is everything the team page shows.
type TeamDetail struct {
	Team     models.Team            `json:"team"`
	Captain  *string                `json:"captain"`  // null when no captain is linked
	Editable bool                   `json:"editable"` // whether the caller may change the team
	Wins     int                    `json:"wins"`
	WinRate  float64                `json:"win_rate"`
	Players  []metrics.PlayerTotals `json:"players"`
	History  []match.HistoryEntry   `json:"history"`
}

// AssignCaptainRequest is the JSON body of PUT /api/v1/teams/:id/captain.
type AssignCaptainRequest struct {
	Captain string `json:"captain"`
	Replace bool   `json:"replace"` // Unlink the team's current captain instead of rejecting
}

// ListTeams handles GET /api/v1/teams.
func ListTeams(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teams, err := svc.ListTeams(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(teams)
	}
}

// GetTeam handles GET /api/v1/teams/:id.
func GetTeam(engine *metrics.Engine, authority *ownership.Authority, recorder *match.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		ctx := c.UserContext()

		analysis, err := engine.TeamAnalysis(ctx, teamID)
		if err != nil {
			return respondError(c, err)
		}

		captain, err := authority.TeamCaptain(ctx, teamID)
		if err != nil {
			return respondError(c, err)
		}

		history, err := recorder.History(ctx, teamID)
		if err != nil {
			return respondError(c, err)
		}

		editable, err := authority.CanMutateTeam(ctx, middleware.CurrentSession(c), teamID)
		if err != nil {
			return respondError(c, err)
		}

		detail := TeamDetail{
			Team:     analysis.Team,
			Editable: editable,
			Wins:     analysis.Overall.Wins,
			WinRate:  analysis.Overall.WinRate,
			Players:  analysis.Players,
			History:  history,
		}

		if captain != "" {
			detail.Captain = &captain
		}

		return c.JSON(detail)
	}
}

// CreateTeam handles POST /api/v1/teams. Administrator only.
func CreateTeam(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in roster.TeamInput
		if err := c.BodyParser(&in); err != nil {
			return respondError(c, errBadBody)
		}

		team, err := svc.CreateTeam(c.UserContext(), middleware.CurrentSession(c), in)
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(team)
	}
}

// UpdateTeam handles PUT /api/v1/teams/:id.
func UpdateTeam(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		var in roster.TeamInput
		if err := c.BodyParser(&in); err != nil {
			return respondError(c, errBadBody)
		}

		team, err := svc.UpdateTeam(c.UserContext(), middleware.CurrentSession(c), teamID, in)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(team)
	}
}

// DeleteTeam handles DELETE /api/v1/teams/:id.
func DeleteTeam(svc *roster.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		if err := svc.DeleteTeam(c.UserContext(), middleware.CurrentSession(c), teamID); err != nil {
			return respondError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// TeamAnalysis handles GET /api/v1/teams/:id/analysis.
func TeamAnalysis(engine *metrics.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		analysis, err := engine.TeamAnalysis(c.UserContext(), teamID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(analysis)
	}
}

// TeamWinRate handles GET /api/v1/teams/:id/winrate with an optional ?map_id= filter.
func TeamWinRate(engine *metrics.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		mapID, err := optionalID(c, "map_id")
		if err != nil {
			return respondError(c, err)
		}

		totals, err := engine.TeamWinRate(c.UserContext(), teamID, mapID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(totals)
	}
}

// TeamMatches handles GET /api/v1/teams/:id/matches, newest first.
func TeamMatches(recorder *match.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		history, err := recorder.History(c.UserContext(), teamID)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(history)
	}
}

// AssignCaptain handles PUT /api/v1/teams/:id/captain. Administrator only.
func AssignCaptain(authority *ownership.Authority) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		var req AssignCaptainRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, errBadBody)
		}

		link, err := authority.AssignCaptain(c.UserContext(), middleware.CurrentSession(c), teamID, req.Captain, req.Replace)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(link)
	}
}

// UnassignCaptain handles DELETE /api/v1/teams/:id/captain. Administrator only.
func UnassignCaptain(authority *ownership.Authority) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID, err := idParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}

		if err := authority.UnassignCaptain(c.UserContext(), middleware.CurrentSession(c), teamID); err != nil {
			return respondError(c, err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
