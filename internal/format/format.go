// Package format provides the display formatting helpers used by the
// document library and session views: byte counts and relative timestamps.
// All functions are pure and deterministic.
package format

import (
	"fmt"
	"time"
)

const (
	kilobyte = 1024
	megabyte = 1024 * kilobyte
	gigabyte = 1024 * megabyte
)

// FileSize renders a byte count for display. Values under 1 KB are shown
// as whole bytes; KB and MB use two decimals; GB and above use two
// decimals of GB.
func FileSize(bytes int64) string {
	switch {
	case bytes < kilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < megabyte:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kilobyte)
	case bytes < gigabyte:
		return fmt.Sprintf("%.2f MB", float64(bytes)/megabyte)
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gigabyte)
	}
}

// TimeAgo renders t relative to the current time.
func TimeAgo(t time.Time) string {
	return timeAgo(t, time.Now())
}

func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
