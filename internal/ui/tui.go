// Package ui provides the interactive terminal view of the task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/aretw0/snaplist/internal/watch"
	"github.com/aretw0/snaplist/pkg/core"
	"github.com/aretw0/snaplist/pkg/display"
	"github.com/aretw0/snaplist/pkg/photo"
)

// Options configures the TUI.
type Options struct {
	// BucketPath is watched for external changes when Watch is set.
	BucketPath string
	Watch      bool
	// Store is invalidated before reloading after an external change.
	Store watch.Invalidator

	PhotoDir    string
	AllowCamera bool
	Logger      *slog.Logger
}

// Run starts the TUI over list and blocks until the user quits.
func Run(ctx context.Context, list *core.Service, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	m := newModel(ctx, list, opts)
	defer m.view.Close()

	if opts.Watch && opts.BucketPath != "" {
		events := make(chan core.Event)
		w := watch.New(opts.BucketPath, events, watch.WithLogger(m.logger))
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = w.Stop(stopCtx)
		}()
		m.events = events
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeBrowse mode = iota
	modeForm
)

type field int

const (
	fieldDescription field = iota
	fieldPhoto
)

type model struct {
	ctx    context.Context
	list   *core.Service
	view   *display.Adapter
	sink   *display.RecordingSink
	opts   Options
	logger *slog.Logger
	events <-chan core.Event

	cursor int
	mode   mode
	form   *core.Form
	focus  field
	source string // photo source path typed into the form
	status string
	err    error
}

// changeMsg reports an external change to the bucket file.
type changeMsg struct {
	event core.Event
}

func newModel(ctx context.Context, list *core.Service, opts Options) *model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &model{
		ctx:    ctx,
		list:   list,
		sink:   &display.RecordingSink{},
		opts:   opts,
		logger: logger,
	}
	m.view = display.New(list, m.sink, display.WithEditor(m))
	return m
}

// Edit implements core.Editor by opening the form on an existing task.
func (m *model) Edit(t core.Task, position int) {
	m.openForm(core.NewEditForm(t, position))
}

func (m *model) openForm(f *core.Form) {
	m.form = f
	m.mode = modeForm
	m.focus = fieldDescription
	m.source = ""
	m.err = nil
}

func (m *model) closeForm() {
	m.form = nil
	m.mode = modeBrowse
	m.source = ""
}

func (m *model) Init() tea.Cmd {
	if m.events != nil {
		return waitForChange(m.events)
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		if m.mode == modeForm {
			return m, m.updateForm(msg)
		}
		return m, m.updateBrowse(msg)
	case changeMsg:
		m.reload(fmt.Sprintf("reloaded after %s", strings.ToLower(string(msg.event.Type))))
		return m, waitForChange(m.events)
	}
	return m, nil
}

func (m *model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.view.ItemCount()-1 {
			m.cursor++
		}
	case "a", "+":
		m.openForm(core.NewAddForm())
	case "e", "enter":
		if m.view.ItemCount() > 0 {
			m.setErr(m.view.Edit(m.cursor))
		}
	case "d", "x":
		if m.view.ItemCount() > 0 {
			if err := m.view.Delete(m.ctx, m.cursor); err != nil {
				m.setErr(err)
				break
			}
			m.status = fmt.Sprintf("deleted %d", m.cursor)
			m.clampCursor()
		}
	case "r", "f5":
		m.reload("reloaded")
	}
	return nil
}

func (m *model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.closeForm()
		m.status = "cancelled"
	case "tab", "shift+tab":
		if m.focus == fieldDescription {
			m.focus = fieldPhoto
		} else {
			m.focus = fieldDescription
		}
	case "ctrl+x":
		m.form.ClearPhoto()
		m.source = ""
	case "enter":
		m.submit()
	case "backspace":
		s := m.focused()
		if r := []rune(*s); len(r) > 0 {
			*s = string(r[:len(r)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			*m.focused() += string(msg.Runes)
		case tea.KeySpace:
			*m.focused() += " "
		}
	}
	return nil
}

func (m *model) focused() *string {
	if m.focus == fieldPhoto {
		return &m.source
	}
	return &m.form.Description
}

func (m *model) submit() {
	if m.source != "" {
		m.capture(m.source)
	}

	pos, err := m.list.Submit(m.ctx, m.form)
	if err != nil {
		// Blank descriptions keep the form open so the user can fix them.
		m.setErr(err)
		if errors.Is(err, core.ErrEmptyDescription) {
			return
		}
		m.closeForm()
		return
	}

	if m.form.IsEdit() {
		m.status = fmt.Sprintf("updated %d", pos)
	} else {
		m.status = fmt.Sprintf("added %d", pos)
	}
	m.cursor = pos
	m.closeForm()
}

// capture copies src into the photo dir and attaches it to the open form.
// A failed capture leaves the form as it was.
func (m *model) capture(src string) {
	c := &photo.Capturer{
		Dir:         photo.NewDir(m.opts.PhotoDir),
		Camera:      photo.FileCamera{Source: src},
		Permissions: &photo.StaticPermissions{Allowed: m.opts.AllowCamera},
		Logger:      m.logger,
	}
	req, err := c.CapturePhoto(m.ctx, m.form)
	if err != nil {
		m.setErr(err)
		return
	}
	<-req.Done()
	if res, _ := req.Result(); !res.OK() {
		m.setErr(res.Err)
	}
	m.source = ""
}

func (m *model) reload(status string) {
	if m.opts.Store != nil {
		m.opts.Store.Invalidate()
	}
	if err := m.list.Reload(m.ctx); err != nil {
		m.setErr(err)
		return
	}
	m.clampCursor()
	m.status = status
}

func (m *model) clampCursor() {
	if n := m.view.ItemCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) setErr(err error) {
	m.err = err
	if err != nil {
		m.logger.Warn("tui action failed", "error", err)
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	photoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedMarker = "> "
)

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.mode == modeForm {
		m.writeForm(&b)
	} else {
		m.writeRows(&b)
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	m.writeFooter(&b)
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "Snaplist"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *model) writeRows(b *strings.Builder) {
	rows, err := m.view.Rows()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()) + "\n\n")
		return
	}
	if len(rows) == 0 {
		b.WriteString("  No tasks yet. Press a to add one.\n\n")
		return
	}
	for _, row := range rows {
		b.WriteString(renderRow(row, row.Position == m.cursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func renderRow(row display.Row, selected bool) string {
	prefix := "  "
	text := row.Text
	if selected {
		prefix = cursorStyle.Render(focusedMarker)
		text = cursorStyle.Render(text)
	}
	switch {
	case row.ShowImage:
		return fmt.Sprintf("%s%s  %s", prefix, text, photoStyle.Render("[photo]"))
	case row.ImagePath != "":
		return fmt.Sprintf("%s%s  %s", prefix, text, missingStyle.Render("[photo]"))
	default:
		return prefix + text
	}
}

func (m *model) writeForm(b *strings.Builder) {
	heading := "New task"
	if m.form.IsEdit() {
		heading = fmt.Sprintf("Edit task %d", m.form.Position)
	}
	b.WriteString(heading + "\n\n")

	marker := func(f field) string {
		if m.focus == f {
			return focusedMarker
		}
		return "  "
	}
	b.WriteString(fmt.Sprintf("%sDescription: %s\n", marker(fieldDescription), m.form.Description))
	b.WriteString(fmt.Sprintf("%sPhoto file:  %s\n", marker(fieldPhoto), m.source))
	if m.form.HasPhoto() {
		b.WriteString(fmt.Sprintf("  Current photo: %s\n", m.form.Photo()))
	}
	b.WriteString("\n")
}

func (m *model) writeFooter(b *strings.Builder) {
	status := m.status
	if last, ok := m.sink.Last(); ok {
		if status != "" {
			status += " | "
		}
		status += last.String()
	}
	if status != "" {
		b.WriteString(footerStyle.Render(status) + "\n")
	}

	keys := "a add | e edit | d delete | r reload | q quit"
	if m.mode == modeForm {
		keys = "tab switch field | enter save | ctrl+x clear photo | esc cancel"
	}
	b.WriteString(footerStyle.Render(keys) + "\n")
}

func waitForChange(ch <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{event: e}
	}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
