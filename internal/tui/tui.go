// Package tui is the interactive session browser: a filterable list of
// sessions on the left, the converted Markdown previewed on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"cc2md/internal/markdown"
	"cc2md/internal/session"
)

// Item is one selectable session and the transcript file it came from.
type Item struct {
	Session *session.Session
	Path    string
}

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	id      string
	content string
	err     error
}

type model struct {
	items       []Item
	filtered    []Item
	cursor      int
	listOffset  int
	filterInput textinput.Model
	preview     viewport.Model
	previewKey  string // session id currently shown, to avoid duplicate renders
	width       int
	height      int
	ready       bool
	quitting    bool
	chosen      *Item
}

func initialModel(items []Item) model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		items:       items,
		filtered:    items,
		filterInput: ti,
		preview:     viewport.New(0, 0),
	}
}

// Run starts the browser and blocks until it exits. If the user selects a
// session, its Markdown document is copied to the clipboard.
func Run(items []Item) error {
	m := initialModel(items)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.chosen != nil {
		return copyMarkdown(fm.chosen)
	}
	return nil
}

// copyMarkdown converts the chosen session and puts the document on the
// clipboard, printing it instead when no clipboard is available.
func copyMarkdown(it *Item) error {
	doc, err := markdown.RenderSession(it.Session, nil)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(doc); err != nil {
		fmt.Print(doc)
		return nil
	}
	fmt.Printf("Copied session %s to clipboard (%d bytes)\n", it.Session.ID, len(doc))
	return nil
}

// loadPreviewCmd returns a tea.Cmd that converts and renders the session
// preview asynchronously.
func loadPreviewCmd(it Item, width int) tea.Cmd {
	return func() tea.Msg {
		doc, err := markdown.RenderSession(it.Session, nil)
		if err != nil {
			return previewRenderedMsg{id: it.Session.ID, err: err}
		}
		wrap := width - 2
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			// no styled renderer available, show the raw document
			return previewRenderedMsg{id: it.Session.ID, content: doc}
		}
		styled, err := r.Render(doc)
		if err != nil {
			return previewRenderedMsg{id: it.Session.ID, content: doc}
		}
		return previewRenderedMsg{id: it.Session.ID, content: styled}
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		m.preview.Style = stylePanelBorder
		if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
			m.previewKey = ""
			cmds = append(cmds, m.loadCurrentPreview())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				it := m.filtered[m.cursor]
				m.chosen = &it
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				cmds = append(cmds, m.loadCurrentPreview())
			}
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}

		// Pass remaining keys to the filter input
		var tiCmd tea.Cmd
		prev := m.filterInput.Value()
		m.filterInput, tiCmd = m.filterInput.Update(msg)
		cmds = append(cmds, tiCmd)

		if m.filterInput.Value() != prev {
			m.applyFilter(m.filterInput.Value())
			cmds = append(cmds, m.loadCurrentPreview())
		}
		return m, tea.Batch(cmds...)

	case previewRenderedMsg:
		// Only apply if this preview is still the one we want
		if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
			return m, nil
		}
		if msg.id != m.filtered[m.cursor].Session.ID {
			return m, nil // stale preview
		}
		if msg.err != nil {
			m.preview.SetContent("Preview error: " + msg.err.Error())
		} else {
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
		}
		m.previewKey = msg.id
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// applyFilter narrows the list to items whose title, id, or path contains
// the filter text (case-insensitive).
func (m *model) applyFilter(filter string) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		m.filtered = m.items
	} else {
		var kept []Item
		for _, it := range m.items {
			hay := strings.ToLower(it.Session.Title() + " " + it.Session.ID + " " + it.Path)
			if strings.Contains(hay, filter) {
				kept = append(kept, it)
			}
		}
		m.filtered = kept
	}
	m.cursor = 0
	m.listOffset = 0
	m.previewKey = ""
	if len(m.filtered) == 0 {
		m.preview.SetContent("")
	}
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	inputRow := m.filterInput.View()

	listContent := m.renderList(listW, panelH)
	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(listContent)

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	status := m.statusBar()

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, status)
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width*40/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*60/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// input row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d sessions", len(m.filtered)))
	parts = append(parts, "up/dn navigate")
	parts = append(parts, "C-u/C-d preview")
	parts = append(parts, "Enter copy markdown")
	parts = append(parts, "Esc quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	it := m.filtered[m.cursor]
	if it.Session.ID == m.previewKey {
		return nil // already showing this preview
	}
	return loadPreviewCmd(it, m.previewWidth())
}
