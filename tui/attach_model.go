package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"merch-intake/client"
	"merch-intake/models"
)

// FileAttacher reads a submitted request and appends files to it
type FileAttacher interface {
	GetRequest(ctx context.Context, id string) (*models.MerchRequest, error)
	AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error)
}

type requestLoadedMsg struct {
	record *models.MerchRequest
	err    error
}

type filesAddedMsg struct {
	record *models.MerchRequest
	count  int
	err    error
}

// AttachModel adds files to a request after it was submitted
type AttachModel struct {
	ctx context.Context
	api FileAttacher
	id  string

	record   *models.MerchRequest
	notFound bool
	busy     bool
	pending  []models.UploadedFile
	input    textinput.Model
	spin     spinner.Model
	notice   string
	err      error
}

// NewAttachModel creates the attach screen for request id
func NewAttachModel(ctx context.Context, api FileAttacher, id string) AttachModel {
	in := textinput.New()
	in.Prompt = "File path: "
	in.Placeholder = "./artwork/back.png"
	in.CharLimit = 500
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return AttachModel{
		ctx:   ctx,
		api:   api,
		id:    strings.TrimSpace(id),
		busy:  true,
		input: in,
		spin:  s,
	}
}

// Record is the request as last returned by the API
func (m AttachModel) Record() *models.MerchRequest { return m.record }

// NotFound reports whether the request id is unknown to the API
func (m AttachModel) NotFound() bool { return m.notFound }

func (m AttachModel) Init() tea.Cmd {
	api, ctx, id := m.api, m.ctx, m.id
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		record, err := api.GetRequest(ctx, id)
		return requestLoadedMsg{record: record, err: err}
	})
}

func (m AttachModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestLoadedMsg:
		m.busy = false
		m.settle(msg.record, msg.err)
		return m, nil

	case filesAddedMsg:
		m.busy = false
		m.settle(msg.record, msg.err)
		if msg.err == nil {
			m.pending = nil
			m.notice = fmt.Sprintf("✓ %d file(s) added to the request", msg.count)
			log.Info().Str("requestId", m.id).Int("count", msg.count).Msg("✓ Files added")
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *AttachModel) settle(record *models.MerchRequest, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		m.notFound = true
	case err != nil:
		m.err = err
	case record != nil:
		m.err = nil
		m.record = record
	}
}

func (m AttachModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.notFound || (m.record == nil && !m.busy) {
		switch key {
		case "q", "esc", "enter":
			return m, tea.Quit
		}
		return m, nil
	}
	if m.busy {
		return m, nil
	}

	switch key {
	case "esc":
		return m, tea.Quit
	case "enter":
		m.notice = ""
		f, err := fileFromPath(m.input.Value())
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		f.ID = uuid.NewString()
		m.pending = append(m.pending, f)
		m.input.SetValue("")
		return m, nil
	case "ctrl+d":
		if n := len(m.pending); n > 0 {
			m.pending = m.pending[:n-1]
		}
		return m, nil
	case "ctrl+s":
		if len(m.pending) == 0 {
			m.notice = "Please select at least one file to upload."
			return m, nil
		}
		m.notice = ""
		m.err = nil
		m.busy = true
		return m, tea.Batch(m.spin.Tick, m.uploadCmd())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AttachModel) uploadCmd() tea.Cmd {
	api, ctx, id := m.api, m.ctx, m.id
	files := append([]models.UploadedFile(nil), m.pending...)
	return func() tea.Msg {
		record, err := api.AddFiles(ctx, id, files)
		return filesAddedMsg{record: record, count: len(files), err: err}
	}
}

func (m AttachModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Add more files") + "\n\n")

	if m.notFound {
		b.WriteString("  " + errorStyle.Render("Request not found") + "\n\n")
		b.WriteString("  We couldn't find a request with ID: " + accentStyle.Render(m.id) + "\n\n")
		b.WriteString("  " + mutedStyle.Render("enter quit") + "\n")
		return b.String()
	}
	if m.record == nil {
		if m.busy {
			b.WriteString("  " + m.spin.View() + " Loading request…\n")
			return b.String()
		}
		if m.err != nil {
			b.WriteString("  " + errorStyle.Render("✗ "+m.err.Error()) + "\n\n")
		}
		b.WriteString("  " + mutedStyle.Render("enter quit") + "\n")
		return b.String()
	}

	b.WriteString("  Request ID: " + accentStyle.Render(m.record.ID) + "\n")

	b.WriteString("\n  " + sectionStyle.Render("Current files") + "\n")
	if len(m.record.Files) == 0 {
		b.WriteString("    " + mutedStyle.Render("No files uploaded yet") + "\n")
	}
	for _, f := range m.record.Files {
		b.WriteString("    " + okStyle.Render("✓") + " " + f.Name + "  " + mutedStyle.Render(humanize.Bytes(uint64(f.Size))) + "\n")
	}

	b.WriteString("\n  " + sectionStyle.Render("Upload new files") + "\n")
	for _, f := range m.pending {
		b.WriteString("    + " + f.Name + "  " + mutedStyle.Render(f.Type+", "+humanize.Bytes(uint64(f.Size))) + "\n")
	}
	b.WriteString("    " + m.input.View() + "\n\n")

	if m.notice != "" {
		b.WriteString("  " + warnStyle.Render(m.notice) + "\n")
	}
	if m.err != nil {
		b.WriteString("  " + errorStyle.Render("✗ "+m.err.Error()) + "\n")
	}
	if m.busy {
		b.WriteString("  " + m.spin.View() + " Uploading…\n")
	}

	b.WriteString("\n  " + mutedStyle.Render("enter attach · ctrl+d drop last · ctrl+s upload · esc quit") + "\n")
	return b.String()
}
