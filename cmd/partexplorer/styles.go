package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/partkit/pkg/types"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	freeColor      = lipgloss.Color("#2A2A2A")

	// Partition kind colors
	appColor     = lipgloss.Color("#4caf50")
	dataColor    = lipgloss.Color("#2196f3")
	nvsColor     = lipgloss.Color("#ff9800")
	phyColor     = lipgloss.Color("#9c27b0")
	factoryColor = lipgloss.Color("#009688")
	otherColor   = lipgloss.Color("#607d8b")

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	// Table styles
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)

	tableRowStyle = lipgloss.NewStyle()

	tableRowAltStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#0A0A0A"))

	tableSelectedStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	cellSelectedStyle = lipgloss.NewStyle().
				Background(secondaryColor).
				Foreground(lipgloss.Color("#000000")).
				Bold(true)

	autoCellStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	invalidCellStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Underline(true)

	// Status bar styles
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(successColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Help overlay styles
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// Modal styles
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Background(lipgloss.Color("#1A1A1A"))

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Error styles
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)
)

// kindColor picks the usage bar color for a partition. Data partitions named
// nvs or phy_init and the factory app get their own colors.
func kindColor(e types.Entry) lipgloss.Color {
	switch e.Kind {
	case "app":
		if e.SubKind == "factory" {
			return factoryColor
		}
		return appColor
	case "data":
		switch e.Name {
		case "nvs":
			return nvsColor
		case "phy_init":
			return phyColor
		}
		return dataColor
	}
	return otherColor
}

// severityStyle returns the style for a diagnostic line.
func severityStyle(s types.Severity) lipgloss.Style {
	if s >= types.SevError {
		return errorStyle
	}
	return warningStyle
}

// truncate truncates a string to the specified length with ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
