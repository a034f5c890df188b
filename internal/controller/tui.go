package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "brack.dev/pkg/brack/internal/model"
)

// pagerChrome is the number of lines used by the pager header and footer.
const pagerChrome = 2

// TUI implements UI for terminals. It prints like SimpleUI, with colour,
// and pages saved reports with a Bubble Tea viewport in view mode.
type TUI struct {
	*SimpleUI
	pending string
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command, styles Styles) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd, styles)}
}

// Start initializes the UI.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	p.pending = ""

	return p.SimpleUI.Start(ctx, options...)
}

// DisplayReports renders reports. In view mode the output is held until
// Wait so it can be paged.
func (p *TUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if p.mode != ModeView {
		return p.SimpleUI.DisplayReports(ctx, reports)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	p.pending = renderReports(reports, p.styles)

	return nil
}

// Wait shows held output. Output taller than the terminal is paged until
// the user quits.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil || p.pending == "" {
		return
	}

	content := p.pending
	p.pending = ""

	width, height, ok := p.terminalSize()
	if !ok || strings.Count(content, "\n") <= height-pagerChrome {
		_ = p.print(content)
		return
	}

	model := newPagerModel("brack check report", content, p.styles)
	model.resize(width, height)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.cmd.InOrStdin()),
		tea.WithOutput(p.cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		_ = p.print(content)
	}
}

func (p *TUI) terminalSize() (int, int, bool) {
	f, ok := p.cmd.OutOrStdout().(*os.File)
	if !ok {
		return 0, 0, false
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || height <= pagerChrome {
		return 0, 0, false
	}

	return width, height, true
}

// pagerModel is a scrollable view over pre-rendered text.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	header   lipgloss.Style
	footer   lipgloss.Style
	enabled  bool
}

func newPagerModel(title, content string, styles Styles) pagerModel {
	return pagerModel{
		title:   title,
		content: content,
		header:  lipgloss.NewStyle().Bold(true),
		footer:  lipgloss.NewStyle().Faint(true),
		enabled: styles.enabled,
	}
}

func (pm *pagerModel) resize(width, height int) {
	if !pm.ready {
		pm.viewport = viewport.New(width, height-pagerChrome)
		pm.viewport.SetContent(pm.content)
		pm.ready = true

		return
	}

	pm.viewport.Width = width
	pm.viewport.Height = height - pagerChrome
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.resize(msg.Width, msg.Height)
		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if !pm.ready {
		return "loading..."
	}

	header := pm.title
	footer := fmt.Sprintf("%3.f%%  j/k scroll  g/G top/bottom  q quit", pm.viewport.ScrollPercent()*100)

	if pm.enabled {
		header = pm.header.Render(header)
		footer = pm.footer.Render(footer)
	}

	return header + "\n" + pm.viewport.View() + "\n" + footer
}
