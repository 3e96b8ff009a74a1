package theme

import "github.com/charmbracelet/lipgloss"

// Showroom palette. Kiosks run on fixed hardware with a known dark
// display, so a single palette is enough.
const (
	colorGreen      = "#98BB6C"
	colorYellow     = "#FF9E3B"
	colorRed        = "#FF5D62"
	colorBlue       = "#7FB4CA"
	colorViolet     = "#957FB8"
	colorLightText  = "#DCD7BA"
	colorMutedText  = "#727169"
	colorBorder     = "#363646"
	colorSelectedBg = "#223249"
)

// Theme holds the lipgloss styles shared by the kiosk TUI and CLI output.
type Theme struct {
	Title    lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultTheme is the theme used everywhere unless a caller overrides styles.
var DefaultTheme = New()

// New builds the showroom theme.
func New() *Theme {
	return &Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLightText)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorMutedText)),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(colorViolet)).Background(lipgloss.Color(colorSelectedBg)),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder)),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorMutedText)),
	}
}
