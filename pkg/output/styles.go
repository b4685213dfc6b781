package output

import (
	_ "embed"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var stylesYAML []byte

// colorDef is an adaptive color definition in the embedded theme
type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// styleDef is a style definition in the embedded theme
type styleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Faint      bool   `yaml:"faint,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

type themeConfig struct {
	Colors map[string]colorDef `yaml:"colors"`
	Styles map[string]styleDef `yaml:"styles"`
}

// severityStyles maps severity names to lipgloss styles, loaded from the
// embedded theme at init time.
var severityStyles = map[string]lipgloss.Style{}

func init() {
	var cfg themeConfig
	if err := yaml.Unmarshal(stylesYAML, &cfg); err != nil {
		// A broken embedded theme only costs styling.
		return
	}
	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name, def := range cfg.Styles {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Faint {
			style = style.Faint(true)
		}
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		severityStyles[name] = style
	}
}

// renderSeverity styles a severity prefix when styling is enabled
func renderSeverity(name, prefix string, color bool) string {
	if !color {
		return prefix
	}
	style, ok := severityStyles[name]
	if !ok {
		return prefix
	}
	return style.Render(prefix)
}

// colorEnabled reports whether styled output should be produced on w:
// only real terminals get colors, and NO_COLOR style overrides win.
func colorEnabled(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return false
	}
	return !termenv.EnvNoColor()
}
