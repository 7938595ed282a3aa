package logging

import "time"

const (
	consoleTimestampLayout = "15:04:05"
	fileTimestampLayout    = "2006-01-02T15:04:05.000Z07:00"
)

// formatTimestamp renders console times in local wall-clock form.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(consoleTimestampLayout)
}

// formatFileTimestamp keeps millisecond precision for run log files, where
// consecutive frame writes often land within the same second.
func formatFileTimestamp(ts time.Time) string {
	return ts.UTC().Format(fileTimestampLayout)
}

// formatDuration rounds to the millisecond for console output.
func formatDuration(d time.Duration) string {
	if d >= time.Millisecond || d <= -time.Millisecond {
		d = d.Round(time.Millisecond)
	}
	return d.String()
}

func durationMillis(d time.Duration) float64 {
	return float64(d.Round(time.Microsecond)) / float64(time.Millisecond)
}
