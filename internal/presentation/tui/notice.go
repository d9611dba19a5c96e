package tui

import (
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/muesli/termenv"
)

// NoticeStyler colors status lines by level.
func NoticeStyler(level ports.NoticeLevel, message string) string {
	p := termenv.ColorProfile()
	switch level {
	case ports.NoticeSuccess:
		return termenv.String("✅ " + message).Foreground(p.Color("#22c55e")).String()
	case ports.NoticeWarning:
		return termenv.String("⚠️  " + message).Foreground(p.Color("#eab308")).String()
	case ports.NoticeError:
		return termenv.String("❌ " + message).Foreground(p.Color("#ef4444")).String()
	default:
		return termenv.String("ℹ️  " + message).Foreground(p.Color("#38bdf8")).String()
	}
}
