package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"merch-intake/models"
	"merch-intake/wizard"
)

type submitResultMsg struct {
	record *models.MerchRequest
	err    error
}

// WizardModel implements tea.Model for the merch request wizard. The
// submission runs inside a tea.Cmd; input is ignored while it is in flight.
type WizardModel struct {
	ctx       context.Context
	wiz       *wizard.Wizard
	submitter wizard.Submitter
	editor    *wizard.ColorEditor
	state     *formState
	draftPath string

	fields []field
	cursor int
	spin   spinner.Model
	width  int
}

// NewWizardModel creates the terminal front-end for w. When draftPath is set
// the draft is saved there on quit and removed after a successful submission.
func NewWizardModel(ctx context.Context, w *wizard.Wizard, submitter wizard.Submitter, draftPath string) WizardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := WizardModel{
		ctx:       ctx,
		wiz:       w,
		submitter: submitter,
		editor:    wizard.NewColorEditor(),
		state:     &formState{},
		draftPath: draftPath,
		spin:      s,
		width:     80,
	}
	m.rebuild()
	return m
}

// Wizard returns the driven state machine
func (m WizardModel) Wizard() *wizard.Wizard { return m.wiz }

func (m WizardModel) Init() tea.Cmd {
	return nil
}

func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitResultMsg:
		m.wiz.CompleteSubmit(msg.record, msg.err)
		if m.wiz.Step() == wizard.StepSubmitted {
			m.removeDraft()
			m.fields = nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.wiz.InFlight() {
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

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		if m.wiz.Step() != wizard.StepSubmitted {
			m.saveDraft()
		}
		return m, tea.Quit
	}

	if m.wiz.Step() == wizard.StepSubmitted {
		switch key {
		case "q", "enter", "esc":
			return m, tea.Quit
		}
		return m, nil
	}
	if m.wiz.InFlight() {
		return m, nil
	}

	m.state.notice = ""
	switch key {
	case "ctrl+n", "pgdown":
		return m.next()
	case "ctrl+p", "pgup", "esc":
		m.wiz.DismissError()
		m.wiz.Previous()
		m.cursor = 0
		m.rebuild()
		return m, nil
	case "up", "shift+tab":
		m.moveCursor(-1)
		return m, nil
	case "down", "tab":
		m.moveCursor(1)
		return m, nil
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	f := &m.fields[m.cursor]
	switch f.kind {
	case fieldText:
		if key == "enter" {
			m.moveCursor(1)
			return m, nil
		}
		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if after := f.input.Value(); after != before && f.onChange != nil {
			f.onChange(after)
			m.syncInputs()
		}
		return m, cmd

	case fieldToggle, fieldAction:
		switch key {
		case " ", "enter":
			f.onActivate()
			if f.kind == fieldAction {
				m.rebuild()
			}
		case "x", "delete":
			if f.onRemove != nil {
				f.onRemove()
				m.rebuild()
			}
		}

	case fieldChoice:
		switch key {
		case "left", "h":
			cycleChoice(f, -1)
		case "right", "l", " ", "enter":
			cycleChoice(f, 1)
		}
	}
	return m, nil
}

func (m WizardModel) next() (tea.Model, tea.Cmd) {
	if m.wiz.Step() == wizard.StepReview {
		payload, err := m.wiz.BeginSubmit()
		if err != nil {
			if m.wiz.LastError() == nil {
				m.state.notice = describeError(err)
			}
			return m, nil
		}
		return m, tea.Batch(m.spin.Tick, submitCmd(m.ctx, m.submitter, payload))
	}

	if err := m.wiz.Next(m.ctx, m.submitter); err != nil {
		if m.wiz.LastError() == nil {
			m.state.notice = describeError(err)
		}
		return m, nil
	}
	m.cursor = 0
	m.rebuild()
	return m, nil
}

func submitCmd(ctx context.Context, s wizard.Submitter, payload *models.CreateMerchRequestRequest) tea.Cmd {
	return func() tea.Msg {
		record, err := s.CreateRequest(ctx, payload)
		return submitResultMsg{record: record, err: err}
	}
}

func cycleChoice(f *field, delta int) {
	if len(f.choices) == 0 {
		return
	}
	idx := -1
	for i, c := range f.choices {
		if c.ID == f.current() {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(f.choices) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(f.choices)) % len(f.choices)
	}
	f.choose(f.choices[idx].ID)
}

// rebuild recreates the rows of the current step, keeping the cursor in range
func (m *WizardModel) rebuild() {
	m.fields = buildFields(m.wiz, m.editor, m.state)
	if m.cursor >= len(m.fields) {
		m.cursor = len(m.fields) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.focus()
}

func (m *WizardModel) moveCursor(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.fields)) % len(m.fields)
	m.syncInputs()
	m.focus()
}

func (m *WizardModel) focus() {
	for i := range m.fields {
		if m.fields[i].kind != fieldText {
			continue
		}
		if i == m.cursor {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
}

// syncInputs refreshes unfocused inputs from the wizard, so an edit of the
// hex input shows up in the channel inputs and the other way round
func (m *WizardModel) syncInputs() {
	for i := range m.fields {
		f := &m.fields[i]
		if f.kind != fieldText || i == m.cursor || f.value == nil {
			continue
		}
		if v := f.value(); v != f.input.Value() {
			f.input.SetValue(v)
		}
	}
}

func (m WizardModel) saveDraft() {
	if m.draftPath == "" {
		return
	}
	if err := SaveDraft(m.draftPath, m.wiz.Snapshot()); err != nil {
		log.Warn().Err(err).Str("path", m.draftPath).Msg("⚠️  Failed to save draft")
	}
}

func (m WizardModel) removeDraft() {
	if m.draftPath == "" {
		return
	}
	if err := os.Remove(m.draftPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", m.draftPath).Msg("⚠️  Failed to remove draft")
	}
}

// SaveDraft writes a wizard snapshot as JSON
func SaveDraft(path string, s wizard.Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// LoadDraft reads a snapshot written by SaveDraft. A missing file returns nil, nil.
func LoadDraft(path string) (*wizard.Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	var s wizard.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", path, err)
	}
	return &s, nil
}

func (m WizardModel) View() string {
	var b strings.Builder
	width := clampWidth(m.width-4, 76)

	b.WriteString("\n  " + titleStyle.Render("Custom merch request") + "\n\n")
	b.WriteString("  " + m.viewProgress() + "\n")
	b.WriteString("  " + mutedStyle.Render(strings.Repeat("─", width)) + "\n\n")

	if m.wiz.Step() == wizard.StepSubmitted {
		b.WriteString("  " + okStyle.Render("✓ Request submitted") + "\n\n")
		if r := m.wiz.Record(); r != nil {
			b.WriteString("  Reference: " + accentStyle.Render(r.ID) + "\n")
		}
		b.WriteString("  We'll get back to you with a quote.\n\n")
		if r := m.wiz.Record(); r != nil {
			b.WriteString("  Forgot to upload something? You can add more files anytime:\n")
			b.WriteString("    " + accentStyle.Render("merch-intake attach "+r.ID) + "\n\n")
		}
		b.WriteString("  " + mutedStyle.Render("enter quit") + "\n")
		return b.String()
	}

	if m.wiz.Step() == wizard.StepReview {
		b.WriteString(m.viewSummary())
	}

	for i, f := range m.fields {
		if f.section != "" {
			b.WriteString("\n  " + sectionStyle.Render(f.section) + "\n")
		}
		b.WriteString(m.viewField(i, f) + "\n")
	}

	if m.wiz.Step() == wizard.StepBasics {
		b.WriteString(m.viewWarnings())
	}

	b.WriteString("\n")
	if issues := m.wiz.Issues(m.wiz.Step()); len(issues) > 0 {
		hints := make([]string, 0, len(issues))
		for _, is := range issues {
			hints = append(hints, is.Field+" "+is.Message)
		}
		b.WriteString("  " + mutedStyle.Render("Missing: "+strings.Join(hints, ", ")) + "\n")
	}
	if m.state.notice != "" {
		b.WriteString("  " + warnStyle.Render(m.state.notice) + "\n")
	}
	if err := m.wiz.LastError(); err != nil {
		b.WriteString("  " + errorStyle.Render("✗ "+describeError(err)) + "\n")
	}
	if m.wiz.InFlight() {
		b.WriteString("  " + m.spin.View() + " Submitting…\n")
	}

	b.WriteString("\n  " + mutedStyle.Render(strings.Repeat("─", width)) + "\n")
	footer := "↑/↓ move · space toggle · ←/→ choose · ctrl+n next · esc back · ctrl+c save & quit"
	if m.wiz.Step() == wizard.StepReview {
		footer = "↑/↓ move · ctrl+n submit · esc back · ctrl+c save & quit"
	}
	b.WriteString("  " + mutedStyle.Render(footer) + "\n")
	return b.String()
}

func (m WizardModel) viewProgress() string {
	parts := make([]string, 0, wizard.StepCount)
	for _, s := range m.wiz.Progress() {
		label := fmt.Sprintf("%d %s", s.Number, s.Title)
		switch {
		case s.Current:
			parts = append(parts, accentStyle.Render("● "+label))
		case s.Completed:
			parts = append(parts, okStyle.Render("✓ "+label))
		default:
			parts = append(parts, mutedStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, mutedStyle.Render("  ─  "))
}

func (m WizardModel) viewField(i int, f field) string {
	prefix := "    "
	if i == m.cursor {
		prefix = "  " + cursorStyle.Render("›") + " "
	}

	switch f.kind {
	case fieldText:
		return prefix + fmt.Sprintf("%-18s", f.label) + f.input.View()
	case fieldChoice:
		current := "Not set"
		for _, c := range f.choices {
			if c.ID == f.current() {
				current = c.Label
			}
		}
		return prefix + fmt.Sprintf("%-18s", f.label) + "‹ " + current + " ›"
	case fieldAction:
		return prefix + accentStyle.Render("[ "+f.label+" ]")
	}

	box := "[ ]"
	if f.checked != nil && f.checked() {
		box = okStyle.Render("[x]")
	}
	line := prefix + box + " "
	if f.swatch != "" {
		line += swatch(f.swatch) + " "
	}
	line += f.label
	if f.detail != "" {
		line += "  " + mutedStyle.Render(f.detail)
	}
	return line
}

func (m WizardModel) viewWarnings() string {
	var b strings.Builder
	warnings := m.wiz.Warnings()
	if warnings.BelowMinimum {
		b.WriteString("\n  " + warnStyle.Render("! Below minimum order quantity") + "\n")
		b.WriteString("    " + mutedStyle.Render(fmt.Sprintf("Our standard MOQ is %d pieces. Consider our sample pack for smaller orders.", m.wiz.MinimumOrderQuantity())) + "\n")
	}
	if warnings.RushOrder {
		b.WriteString("\n  " + errorStyle.Render("! Rush order required") + "\n")
		b.WriteString("    " + mutedStyle.Render(fmt.Sprintf("Orders due in less than %d days require rush fees. We'll include this in your quote.", m.wiz.RushThresholdDays())) + "\n")
	}
	return b.String()
}

func (m WizardModel) viewSummary() string {
	p := m.wiz.Payload()
	rows := [][2]string{
		{"Zip code", orNotSet(p.ZipCode)},
		{"Deadline", orNotSet(models.StringValue(p.Deadline))},
		{"Budget", orNotSet(m.budgetLabel())},
		{"Print method", orNotSet(models.StringValue(p.PrintMethod))},
		{"Locations", orNotSet(strings.Join(p.PrintLocations, ", "))},
		{"Files", fmt.Sprintf("%d", len(p.Files))},
	}

	var products []string
	for _, pl := range p.Products {
		products = append(products, fmt.Sprintf("%s × %d", pl.Name, pl.Quantity))
	}
	rows = append([][2]string{{"Products", orNotSet(strings.Join(products, ", "))}}, rows...)

	colors := append([]string(nil), p.Colorways...)
	for _, c := range p.CustomColors {
		colors = append(colors, c.Name+" "+c.Hex)
	}
	rows = append(rows, [2]string{"Colors", orNotSet(strings.Join(colors, ", "))})

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-14s %s\n", r[0], r[1]))
	}
	return "  " + panelStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m WizardModel) budgetLabel() string {
	if b, ok := m.wiz.Catalog().BudgetRangeByID(m.wiz.Budget()); ok {
		return b.Label
	}
	return m.wiz.Budget()
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not set"
	}
	return s
}

func describeError(err error) string {
	var incomplete *wizard.StepIncompleteError
	if errors.As(err, &incomplete) {
		return fmt.Sprintf("%s is incomplete", incomplete.Step)
	}
	return err.Error()
}
