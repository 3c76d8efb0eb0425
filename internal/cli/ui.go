package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/timeless-residents/handson-drawio-api/pkg/export"
	"github.com/timeless-residents/handson-drawio-api/pkg/pipeline"
)

// stdout receives command output. Logs and the spinner go to stderr.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// Styles shared by the commands.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorValue)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey         = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
)

// status is the leading marker of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
	tint  bool // render the message in the icon's colour too
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorOK), false}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorFail), false}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorWarn), true}
	statusInfo = status{"›", lipgloss.NewStyle().Foreground(colorLabel), false}
)

func (s status) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.tint {
		msg = s.style.Render(msg)
	}
	fmt.Fprintln(stdout, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { statusOK.print(format, args...) }
func printError(format string, args ...any)   { statusFail.print(format, args...) }
func printWarning(format string, args ...any) { statusWarn.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

// printDetail prints an indented, muted line under a status message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a side file such as a helper page.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarises a render: cell counts, skipped edges, whether any
// raster came from the cache, and the wall time.
func printStats(stats pipeline.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", stats.Nodes),
		fmt.Sprintf("%d edges", stats.Edges),
	}
	if stats.Skipped > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d skipped", stats.Skipped)))
	}
	if cached {
		parts = append(parts, statusOK.style.Render("cached"))
	}
	parts = append(parts, stats.Duration.Round(time.Millisecond).String())
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printOutput prints one written file. Placeholders are flagged so they are
// not mistaken for images.
func printOutput(o pipeline.Output) {
	marker := StyleDim.Render("→")
	method := StyleDim.Render("(" + o.Method + ")")
	if o.Method == string(export.MethodPlaceholder) {
		marker = statusWarn.style.Render(statusWarn.icon)
		method = StyleWarning.Render("(placeholder)")
	}
	fmt.Fprintf(stdout, "  %s %s %s\n", marker, StyleValue.Render(o.Path), method)
}

// printNextStep suggests a command to run.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
