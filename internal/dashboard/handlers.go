// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/votersspeak/congress-sync/internal/history"
)

func render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("rendering %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error rendering page")
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}

// HomeHandler shows recent runs and the manual trigger.
func HomeHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var runs []history.Run
		if deps.Runs != nil {
			var err error
			runs, err = deps.Runs.Recent(c.Context(), 20)
			if err != nil {
				log.Printf("loading runs: %v", err)
				return c.Status(fiber.StatusInternalServerError).SendString("Error loading runs")
			}
		}
		return render(c, "home", fiber.Map{
			"Runs":    runs,
			"Message": c.Query("message"),
		})
	}
}

// ReportsHandler lists all reports, newest first.
func ReportsHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metas, err := deps.Reports.List()
		if err != nil {
			log.Printf("listing reports: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading reports")
		}
		return render(c, "reports", fiber.Map{"Reports": metas})
	}
}

// ReportDetailHandler shows one report's content.
func ReportDetailHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		path, err := deps.Reports.PathFor(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).SendString("Report not found")
		}
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("reading report %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error reading report")
		}
		return render(c, "report_detail", fiber.Map{
			"ID":      id,
			"Content": string(content),
		})
	}
}

// ReportDownloadHandler serves the raw markdown file.
func ReportDownloadHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := deps.Reports.PathFor(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).SendString("Report not found")
		}
		return c.Download(path)
	}
}

// RunHandler triggers a background update run.
func RunHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := deps.TriggerRun(c.Context())
		switch {
		case errors.Is(err, ErrRunInProgress):
			return c.Status(fiber.StatusConflict).SendString(err.Error())
		case err != nil:
			log.Printf("triggering run: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error starting run")
		}
		return c.Redirect("/?message=Update+started", fiber.StatusSeeOther)
	}
}

// SettingsHandler shows the editable settings.
func SettingsHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := deps.GetSettings()
		return render(c, "settings", fiber.Map{
			"Interval":   s.ScheduleInterval.String(),
			"Recipients": strings.Join(s.Recipients, ", "),
			"Message":    c.Query("message"),
		})
	}
}

// SaveSettingsHandler persists settings edits.
func SaveSettingsHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		interval, err := time.ParseDuration(c.FormValue("interval"))
		if err != nil || interval <= 0 {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid interval")
		}

		var recipients []string
		for _, r := range strings.Split(c.FormValue("recipients"), ",") {
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}

		if err := deps.SaveSettings(Settings{
			ScheduleInterval: interval,
			Recipients:       recipients,
		}); err != nil {
			log.Printf("saving settings: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Error saving settings")
		}
		return c.Redirect("/settings?message=Settings+saved", fiber.StatusSeeOther)
	}
}
