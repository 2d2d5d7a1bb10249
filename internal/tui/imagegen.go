package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//go:embed assets/default_image.txt
var defaultImage string

// imageGenerator is a placeholder screen. Nothing here issues a request and
// loading is never set.
type imageGenerator struct {
	prompt  textinput.Model
	loading bool
}

func newImageGenerator() *imageGenerator {
	p := textinput.New()
	p.Width = 40
	return &imageGenerator{prompt: p}
}

func (g *imageGenerator) Focus() { g.prompt.Focus() }
func (g *imageGenerator) Blur()  { g.prompt.Blur() }

func (g *imageGenerator) Loading() bool { return g.loading }

// Update only edits the prompt text. Enter has no handler.
func (g *imageGenerator) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		return nil
	}
	var cmd tea.Cmd
	g.prompt, cmd = g.prompt.Update(msg)
	return cmd
}

func (g *imageGenerator) View(width int) string {
	image := lipgloss.NewStyle().Foreground(colorMuted).Render(strings.TrimRight(defaultImage, "\n"))
	placeholder := ""
	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(g.prompt.View()),
		buttonStyle.Render(""),
	)
	body := strings.Join([]string{
		titleStyle.Render("Ai Image Generator"),
		"",
		image,
		placeholder,
		mutedStyle.Render("Loading..."),
		"",
		controls,
	}, "\n")
	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(max(1, width)).Render(body)
}
