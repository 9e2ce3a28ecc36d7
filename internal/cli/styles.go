package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/RyanBlaney/sonido-mix/analysis/recommend"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#5FAFFF")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	successColor = lipgloss.Color("#00AA00")
	infoColor    = lipgloss.Color("#00AAAA")
	warningColor = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#D70000")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	GradeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor)
)

var statusStyles = map[recommend.Status]lipgloss.Style{
	recommend.StatusSuccess: lipgloss.NewStyle().Foreground(successColor),
	recommend.StatusInfo:    lipgloss.NewStyle().Foreground(infoColor),
	recommend.StatusWarning: lipgloss.NewStyle().Foreground(warningColor),
	recommend.StatusError:   lipgloss.NewStyle().Bold(true).Foreground(errorColor),
}

var statusIcons = map[recommend.Status]string{
	recommend.StatusSuccess: "✓",
	recommend.StatusInfo:    "i",
	recommend.StatusWarning: "!",
	recommend.StatusError:   "✗",
}

// StatusStyle returns the style recommendations of status are printed in
func StatusStyle(status recommend.Status) lipgloss.Style {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return ValueStyle
}

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("Sonido Mix"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}
