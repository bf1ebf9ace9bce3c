// Package ui holds the terminal styling shared by CLI commands: a lipgloss palette and the
// go-figure startup banner.
package ui
