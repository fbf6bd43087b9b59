// Package style provides shared styling primitives for the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Cyan   = lipgloss.Color("#22D3EE")
	Slate  = lipgloss.Color("#64748B")
	Green  = lipgloss.Color("#34D399")
	Red    = lipgloss.Color("#F87171")
	Amber  = lipgloss.Color("#FBBF24")
	Violet = lipgloss.Color("#A78BFA")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Arrow   = "→"
)
