// Package output provides styled terminal output helpers (success, error,
// warning, sync report formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/nsisync/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// SyncReport renders a sync run result for terminal display.
func SyncReport(res models.SyncResult) string {
	var b strings.Builder

	if res.Success {
		b.WriteString(successStyle.Render("sync ok"))
	} else {
		b.WriteString(errorStyle.Render("sync failed"))
	}
	b.WriteString(fmt.Sprintf("  synced %d/%d", res.Synced, res.Total))
	if res.Failed > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  (%d failed)", res.Failed)))
	}
	if res.Version > 0 {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  version %d", res.Version)))
	}

	for _, e := range res.Errors {
		b.WriteString("\n  ")
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s %s", e.Type, e.ID)))
		if e.Name != "" {
			b.WriteString(" " + titleStyle.Render(e.Name))
		}
		b.WriteString(subtleStyle.Render(": " + e.Message))
	}

	return b.String()
}

// MaintenanceReport renders a maintenance result for terminal display.
func MaintenanceReport(res models.MaintenanceResult) string {
	if !res.Success {
		return errorStyle.Render("maintenance failed") + subtleStyle.Render(": "+res.Message)
	}
	return successStyle.Render("ok") + "  " + res.Message
}

// CursorLine renders one sync cursor entry for status listings.
func CursorLine(cur models.SyncCursor) string {
	ts := ""
	if !cur.SyncedAt.IsZero() {
		ts = cur.SyncedAt.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("version %-10d items %-6d %s",
		cur.Version, cur.ItemsSynced, subtleStyle.Render(ts))
}
