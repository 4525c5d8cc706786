// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui provides an interactive preview of the sorted app grid.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/janderssonse/ordna/internal/application"
	"github.com/janderssonse/ordna/internal/domain"
	"github.com/janderssonse/ordna/internal/tui/styles"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Layout constants for consistent spacing.
const (
	minViewportHeight = 1
	minContentWidth   = 10
	chromeHeight      = 4 // header + footer + margins
	helpWordWrap      = 80
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// gridLoadedMsg carries a freshly computed grid order.
type gridLoadedMsg struct {
	items    []domain.GridItem
	contents map[string][]string
	config   domain.OrderingConfig
}

// gridLoadErrMsg is sent when the grid order could not be computed.
type gridLoadErrMsg struct {
	err error
}

// PreviewKeyMap defines key bindings for the preview screen.
type PreviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultPreviewKeyMap returns the default key bindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn/f", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "go to bottom"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Preview shows the grid in the order the sorter would apply, without
// touching the shell.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Preview struct {
	styles   *styles.Styles
	service  *application.OrderService
	ctx      context.Context
	width    int
	height   int
	viewport viewport.Model
	keyMap   PreviewKeyMap

	items    []domain.GridItem
	contents map[string][]string
	config   domain.OrderingConfig

	loading  bool
	showHelp bool
	helpView string
	err      error
}

// NewPreview creates a preview model over the order service.
func NewPreview(ctx context.Context, service *application.OrderService) *Preview {
	viewPort := viewport.New(minContentWidth, minViewportHeight)

	return &Preview{
		styles:   styles.New(),
		service:  service,
		ctx:      ctx,
		viewport: viewPort,
		keyMap:   DefaultPreviewKeyMap(),
		loading:  true,
	}
}

// Init implements the tea.Model interface.
func (p *Preview) Init() tea.Cmd {
	return p.loadGrid()
}

func (p *Preview) loadGrid() tea.Cmd {
	return func() tea.Msg {
		items, err := p.service.SortedGrid(p.ctx)
		if err != nil {
			return gridLoadErrMsg{err: err}
		}

		contents, err := p.service.SortedFolderContents(p.ctx)
		if err != nil {
			return gridLoadErrMsg{err: err}
		}

		config, err := p.service.CurrentConfig(p.ctx)
		if err != nil {
			return gridLoadErrMsg{err: err}
		}

		return gridLoadedMsg{items: items, contents: contents, config: config}
	}
}

// Update implements the tea.Model interface.
func (p *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gridLoadedMsg:
		p.loading = false
		p.err = nil
		p.items = msg.items
		p.contents = msg.contents
		p.config = msg.config
		p.viewport.SetContent(p.renderGrid())

		return p, nil

	case gridLoadErrMsg:
		p.loading = false
		p.err = msg.err

		return p, nil

	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.viewport.Width = max(msg.Width, minContentWidth)
		p.viewport.Height = max(msg.Height-chromeHeight, minViewportHeight)
		p.viewport.SetContent(p.currentContent())

		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)

	default:
		var cmd tea.Cmd

		p.viewport, cmd = p.viewport.Update(msg)

		return p, cmd
	}
}

func (p *Preview) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keyMap.Quit):
		if p.showHelp {
			p.showHelp = false
			p.viewport.SetContent(p.currentContent())

			return p, nil
		}

		return p, tea.Quit

	case key.Matches(msg, p.keyMap.Reload):
		p.loading = true

		return p, p.loadGrid()

	case key.Matches(msg, p.keyMap.Help):
		p.showHelp = !p.showHelp
		p.viewport.SetContent(p.currentContent())
		p.viewport.GotoTop()

		return p, nil

	case key.Matches(msg, p.keyMap.Home):
		p.viewport.GotoTop()

		return p, nil

	case key.Matches(msg, p.keyMap.End):
		p.viewport.GotoBottom()

		return p, nil

	default:
		var cmd tea.Cmd

		p.viewport, cmd = p.viewport.Update(msg)

		return p, cmd
	}
}

// View implements the tea.Model interface.
func (p *Preview) View() string {
	header := p.styles.Header.Render("Ordna · grid preview")

	var body string

	switch {
	case p.loading:
		body = p.styles.MutedText.Render("Computing grid order...")
	case p.err != nil:
		body = p.styles.ErrorText.Render("Failed to compute grid order: " + p.err.Error())
	default:
		body = p.viewport.View()
	}

	footer := p.styles.Footer.Render("↑/↓ scroll · r reload · ? help · q quit")

	return strings.Join([]string{header, body, footer}, "\n")
}

func (p *Preview) currentContent() string {
	if p.showHelp {
		return p.renderHelp()
	}

	return p.renderGrid()
}

// renderGrid formats the sorted grid with folder contents indented under
// each folder.
func (p *Preview) renderGrid() string {
	if len(p.items) == 0 {
		return p.styles.MutedText.Render("No grid items found")
	}

	nameWidth := max(p.viewport.Width-minContentWidth, minContentWidth)

	var builder strings.Builder

	builder.WriteString(p.styles.Title.Render(fmt.Sprintf("Folder position: %s", positionLabel(p.config.FolderOrder))))
	builder.WriteString("\n\n")

	for i, item := range p.items {
		name := runewidth.Truncate(item.DisplayName, nameWidth, "...")

		marker := "▢"

		style := p.styles.MutedText
		if item.IsFolder() {
			marker = "▣"
			style = p.styles.Folder
		}

		builder.WriteString(fmt.Sprintf("%3d  %s %s\n", i+1, marker, style.Render(name)))

		if item.IsFolder() {
			for _, appID := range p.contents[item.ID] {
				builder.WriteString("       " + p.styles.MutedText.Render(runewidth.Truncate(appID, nameWidth, "...")) + "\n")
			}
		}
	}

	if len(p.config.PinnedFolderIDs) > 0 {
		pinned := append([]string{}, p.config.PinnedFolderIDs...)
		sort.Strings(pinned)
		builder.WriteString("\n" + p.styles.MutedText.Render("Pinned folders: "+strings.Join(pinned, ", ")))
	}

	return builder.String()
}

func positionLabel(position domain.FolderOrderPosition) string {
	switch position {
	case domain.FolderOrderFirst:
		return "before apps"
	case domain.FolderOrderLast:
		return "after apps"
	default:
		return "mixed in alphabetically"
	}
}

// renderHelp renders the markdown help overlay.
func (p *Preview) renderHelp() string {
	if p.helpView != "" {
		return p.helpView
	}

	content := `# Ordna grid preview

This view shows the order the sorter would apply. Nothing is written
until you run ` + "`ordna sort`" + ` or ` + "`ordna watch`" + `.

## Legend

| Marker | Meaning |
|--------|---------|
| ▣ | App folder |
| ▢ | Application |

## Keys

| Key | Action |
|-----|--------|
| ↑/↓ or j/k | Scroll |
| pgup/pgdn | Page |
| g / G | Top / bottom |
| r | Reload the grid |
| ? | Toggle this help |
| q | Quit |
`

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(helpWordWrap),
	)
	if err != nil {
		renderer, err = glamour.NewTermRenderer()
	}

	if err != nil {
		// No renderer at all; show the raw markdown.
		p.helpView = content

		return p.helpView
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		rendered = content
	}

	p.helpView = rendered

	return p.helpView
}

// isTerminal checks if stdout is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RunPreview starts the preview program and blocks until it exits.
func RunPreview(ctx context.Context, service *application.OrderService) error {
	if !isTerminal() {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	program := tea.NewProgram(
		NewPreview(ctx, service),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	return nil
}
