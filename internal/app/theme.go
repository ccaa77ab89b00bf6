package app

import (
	"image/color"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

var (
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	whisperStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	sessionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dotDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	dotActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	dotPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	quoteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Italic(true)
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	tagChangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	tagSameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	toastInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)

	menuHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	dialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	panelBorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// The sanctuary shifts its tint with the hour, matching the hour bands of
// the on-site installation: morning 05-11, afternoon 11-17, evening 17-22,
// night otherwise. Presentation only.
func dayPart(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 11:
		return "morning"
	case hour >= 11 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

func dayTint(t time.Time) color.Color {
	switch dayPart(t) {
	case "morning":
		return lipgloss.Color("222")
	case "afternoon":
		return lipgloss.Color("179")
	case "evening":
		return lipgloss.Color("173")
	default:
		return lipgloss.Color("103")
	}
}

func headerStyleFor(t time.Time) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(dayTint(t))
}
