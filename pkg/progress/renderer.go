package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

type renderer interface {
	render(Status, string, Statistics) string
}

var (
	errorColor    = color.New(color.FgRed)
	completeColor = color.New(color.FgGreen)
	spinnerColor  = color.New(color.FgCyan)
	barFillColor  = color.New(color.FgGreen)
)

// paint applies c unless color is disabled for this renderer.
func paint(c *color.Color, noColor bool, s string) string {
	if noColor {
		return s
	}
	return c.Sprint(s)
}

func paintMessage(message string, noColor bool) string {
	switch {
	case strings.Contains(message, "Error"):
		return paint(errorColor, noColor, message)
	case strings.Contains(message, "Complete") || strings.Contains(message, "completed"):
		return paint(completeColor, noColor, message)
	default:
		return message
	}
}

type barRenderer struct {
	width     int
	noColor   bool
	showStats bool
}

func (r *barRenderer) render(status Status, message string, stats Statistics) string {
	var output strings.Builder

	if message != "" {
		output.WriteString(fmt.Sprintf("\r%s\n", paintMessage(message, r.noColor)))
	}

	barWidth := r.width - 10 // Reserve space for percentage
	if barWidth < 10 {
		barWidth = 10
	}

	var progress float64
	if status.Total > 0 {
		progress = float64(status.Current) / float64(status.Total)
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	output.WriteString("[")
	output.WriteString(paint(barFillColor, r.noColor, strings.Repeat("=", filled)))
	if filled < barWidth {
		output.WriteString(">")
		output.WriteString(strings.Repeat(" ", barWidth-filled-1))
	}
	output.WriteString("]")
	output.WriteString(fmt.Sprintf(" %3.0f%%", progress*100))

	if status.CurrentItem != "" {
		output.WriteString(fmt.Sprintf("\n%s", status.CurrentItem))
	}

	if r.showStats {
		output.WriteString(fmt.Sprintf("\nProcessed: %d/%d | Speed: %.1f/s | ETA: %s",
			status.ItemsProcessed,
			status.Total,
			stats.ProcessingSpeed,
			formatDuration(stats.RemainingTime)))
	}

	return output.String()
}

type spinnerRenderer struct {
	noColor   bool
	showStats bool
	frame     int
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (r *spinnerRenderer) render(status Status, message string, stats Statistics) string {
	r.frame = (r.frame + 1) % len(spinnerFrames)
	spinner := paint(spinnerColor, r.noColor, spinnerFrames[r.frame])

	var output strings.Builder
	output.WriteString(fmt.Sprintf("\r%s %s", spinner, paintMessage(message, r.noColor)))

	if status.CurrentItem != "" {
		output.WriteString(fmt.Sprintf("\n%s", status.CurrentItem))
	}

	if r.showStats {
		output.WriteString(fmt.Sprintf("\nProgress: %.1f%% | Speed: %.1f/s",
			stats.ProgressPercentage,
			stats.ProcessingSpeed))
	}

	return output.String()
}

type simpleRenderer struct {
	noColor   bool
	showStats bool
}

func (r *simpleRenderer) render(status Status, message string, stats Statistics) string {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("\r%s (%.0f%%)", paintMessage(message, r.noColor), stats.ProgressPercentage))

	if status.CurrentItem != "" {
		output.WriteString(fmt.Sprintf("\n%s", status.CurrentItem))
	}

	if r.showStats {
		output.WriteString(fmt.Sprintf("\nProcessed: %d items | %s",
			stats.ItemsProcessed,
			formatSize(stats.BytesProcessed)))
	}

	return output.String()
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds",
			int(d.Minutes()),
			int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm%ds",
		int(d.Hours()),
		int(d.Minutes())%60,
		int(d.Seconds())%60)
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
