// Package web holds the HTML templates and flash message store.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"printshop/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page together with the shared layout
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"when": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.Local().Format("2006-01-02 15:04")
		},
		"stamp": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"money": func(v int64) string {
			return fmt.Sprintf("₹%d", v)
		},
		"statusClass": func(s model.JobStatus) string {
			switch s {
			case model.StatusQueued:
				return "status-queued"
			case model.StatusPrinting:
				return "status-printing"
			case model.StatusCompleted:
				return "status-completed"
			}
			return "status-cancelled"
		},
		"colorLabel": func(color bool) string {
			if color {
				return "Colour"
			}
			return "B/W"
		},
		"count": func(stats *model.QueueStats, s model.JobStatus) int64 {
			if stats == nil {
				return 0
			}
			return stats.ByStatus[s]
		},
	}
}
