// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard serves the web UI: run history, report browsing, manual
// run triggers, and settings edits. Handlers are constructors closing over
// their dependencies so tests can wire fakes.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/votersspeak/congress-sync/internal/history"
	"github.com/votersspeak/congress-sync/internal/report"
)

// ErrRunInProgress is returned by a trigger function while a run is active.
var ErrRunInProgress = errors.New("an update run is already in progress")

// Settings is the subset of configuration editable from the dashboard.
type Settings struct {
	ScheduleInterval time.Duration
	Recipients       []string
}

// Deps are the collaborators the dashboard serves from.
type Deps struct {
	Runs    *history.Store
	Reports *report.Builder

	// TriggerRun starts an update run in the background and returns
	// immediately. It returns ErrRunInProgress when one is active.
	TriggerRun func(ctx context.Context) error

	GetSettings  func() Settings
	SaveSettings func(Settings) error
}

// New builds the fiber application with all routes registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "congress-sync",
		DisableStartupMessage: true,
	})

	app.Use(logger.New())

	app.Get("/", HomeHandler(deps))
	app.Get("/reports", ReportsHandler(deps))
	app.Get("/reports/:id", ReportDetailHandler(deps))
	app.Get("/reports/:id/download", ReportDownloadHandler(deps))
	app.Post("/run", RunHandler(deps))
	app.Get("/settings", SettingsHandler(deps))
	app.Post("/settings", SaveSettingsHandler(deps))

	return app
}
