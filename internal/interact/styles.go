package interact

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrompt = lipgloss.Color("#4ecdc4")
	ColorError  = lipgloss.Color("#FF6B6B")
	ColorMuted  = lipgloss.Color("#666666")
)

var (
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrompt)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)
