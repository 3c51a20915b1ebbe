package ui

import "github.com/charmbracelet/lipgloss"

// Green accents and selection, dark-gray labels.
var (
	colorAccent    = lipgloss.Color("#4CAF50")
	colorAccentAlt = lipgloss.Color("#45a049")
	colorText      = lipgloss.Color("#333333")
	colorMuted     = lipgloss.Color("#8a8a8a")
	colorOnAccent  = lipgloss.Color("#ffffff")
	colorWarning   = lipgloss.Color("#E6A700")
	colorError     = lipgloss.Color("#D9534F")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccentAlt).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)

	focusedPaneStyle = paneStyle.
				BorderForeground(colorAccent)

	selectedStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorOnAccent).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorAccentAlt)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorError).
			Padding(0, 1)
)
