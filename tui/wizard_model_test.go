package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merch-intake/models"
	"merch-intake/wizard"
)

var testCatalog = &models.Catalog{
	MinimumOrderQuantity: 50,
	RushThresholdDays:    3,
	Products:             []models.Product{{ID: "tee", Label: "T-Shirt"}, {ID: "hoodie", Label: "Hoodie"}},
	PrintMethods:         []models.PrintMethod{{ID: "screen", Label: "Screen Print"}},
	Colorways:            []models.Colorway{{ID: "black", Label: "Black", Hex: "#000000"}},
	PrintLocations:       []string{"Front"},
	BudgetRanges:         []models.BudgetRange{{ID: "under-1k", Label: "Under $1,000"}},
}

type fakeSubmitter struct {
	calls []*models.CreateMerchRequestRequest
	err   error
}

func (f *fakeSubmitter) CreateRequest(_ context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &models.MerchRequest{ID: "req-42", ZipCode: req.ZipCode}, nil
}

func send(t *testing.T, m tea.Model, msg tea.Msg) (WizardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(WizardModel)
	require.True(t, ok)
	return wm, cmd
}

func press(t *testing.T, m WizardModel, keys ...tea.KeyType) WizardModel {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, tea.KeyMsg{Type: k})
	}
	return m
}

func typeText(t *testing.T, m WizardModel, s string) WizardModel {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// collect runs cmd and returns the messages it produces, expanding batches
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// fillToReview completes the first three steps with a zip, a budget, a product
// and a print method
func fillToReview(t *testing.T, m WizardModel) WizardModel {
	t.Helper()
	m = typeText(t, m, "94110")
	m = press(t, m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyRight, tea.KeyDown, tea.KeySpace)
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, wizard.StepCustomization, m.Wizard().Step())
	m = press(t, m, tea.KeySpace, tea.KeyCtrlN)
	require.Equal(t, wizard.StepUploads, m.Wizard().Step())
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, wizard.StepReview, m.Wizard().Step())
	return m
}

func TestWizardModel_SubmitFlow(t *testing.T) {
	draft := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, SaveDraft(draft, wizard.Snapshot{ZipCode: "old"}))

	sub := &fakeSubmitter{}
	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := NewWizardModel(context.Background(), w, sub, draft)

	m = fillToReview(t, m)
	m = typeText(t, m, "Sam Rivera")
	m = press(t, m, tea.KeyDown, tea.KeyDown)
	m = typeText(t, m, "sam@example.com")
	assert.Contains(t, m.View(), "Under $1,000")

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.NotNil(t, cmd)
	assert.True(t, w.InFlight())

	m = press(t, m, tea.KeyEsc)
	assert.Equal(t, wizard.StepReview, w.Step(), "input is ignored while submitting")

	for _, msg := range collect(cmd) {
		m, _ = send(t, m, msg)
	}

	assert.Equal(t, wizard.StepSubmitted, w.Step())
	assert.Contains(t, m.View(), "merch-intake attach req-42")
	assert.NoFileExists(t, draft)

	require.Len(t, sub.calls, 1)
	req := sub.calls[0]
	assert.Equal(t, "94110", req.ZipCode)
	assert.Equal(t, "Sam Rivera", req.ContactName)
	assert.Equal(t, "sam@example.com", req.ContactEmail)
	assert.Equal(t, []models.ProductLine{{ID: "tee", Name: "T-Shirt", Quantity: 50}}, req.Products)
	assert.Equal(t, "Screen Print", models.StringValue(req.PrintMethod))
	assert.Equal(t, "under-1k", models.StringValue(req.Budget))

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWizardModel_SubmitFailureStaysAtReview(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("service unavailable")}
	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := fillToReview(t, NewWizardModel(context.Background(), w, sub, ""))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	for _, msg := range collect(cmd) {
		m, _ = send(t, m, msg)
	}

	assert.Equal(t, wizard.StepReview, w.Step())
	assert.False(t, w.InFlight())
	assert.Contains(t, m.View(), "service unavailable")

	m = press(t, m, tea.KeyEsc)
	assert.Equal(t, wizard.StepUploads, w.Step())
	assert.NoError(t, w.LastError())
}

func TestWizardModel_StrictModeShowsIssues(t *testing.T) {
	w := wizard.New(wizard.Options{Catalog: testCatalog, Strict: true})
	m := NewWizardModel(context.Background(), w, &fakeSubmitter{}, "")

	m = press(t, m, tea.KeyCtrlN)
	assert.Equal(t, wizard.StepBasics, w.Step())
	view := m.View()
	assert.Contains(t, view, "Basics is incomplete")
	assert.Contains(t, view, "zipCode is required")
}

func TestWizardModel_Warnings(t *testing.T) {
	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := NewWizardModel(context.Background(), w, &fakeSubmitter{}, "")
	assert.NotContains(t, m.View(), "Below minimum order quantity")

	m = press(t, m, tea.KeyDown, tea.KeyEnd, tea.KeyBackspace)
	assert.Equal(t, 5, w.Quantity())
	assert.Contains(t, m.View(), "Below minimum order quantity")
}

func TestWizardModel_CustomColorEditor(t *testing.T) {
	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := NewWizardModel(context.Background(), w, &fakeSubmitter{}, "")
	m = press(t, m, tea.KeyCtrlN)
	require.Equal(t, wizard.StepCustomization, w.Step())

	// screen, black, then the editor: name, hex, R, G, B, add
	m = press(t, m, tea.KeyDown, tea.KeyDown)
	m = typeText(t, m, "Burgundy")
	m = press(t, m, tea.KeyDown, tea.KeyEnd, tea.KeyCtrlU)
	m = typeText(t, m, "#800020")
	assert.Equal(t, "128", m.fields[4].input.Value())
	assert.Equal(t, "32", m.fields[6].input.Value())

	m = press(t, m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	colors := w.CustomColors()
	require.Len(t, colors, 1)
	assert.Equal(t, "Burgundy", colors[0].Label)
	assert.Equal(t, "#800020", colors[0].Hex)
	assert.True(t, w.IsSelected(colors[0].ID))

	// the new row sits after the colorways; x removes it
	m.cursor = 2
	m = typeText(t, m, "x")
	assert.Empty(t, w.CustomColors())
}

func TestWizardModel_AddColorWithoutNameShowsNotice(t *testing.T) {
	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := NewWizardModel(context.Background(), w, &fakeSubmitter{}, "")
	m = press(t, m, tea.KeyCtrlN)

	m.cursor = 7
	m = press(t, m, tea.KeyEnter)
	assert.Empty(t, w.CustomColors())
	assert.Contains(t, m.View(), "Enter a name for the custom color")
}

func TestWizardModel_AttachFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := NewWizardModel(context.Background(), w, &fakeSubmitter{}, "")
	m = press(t, m, tea.KeyCtrlN, tea.KeyCtrlN)
	require.Equal(t, wizard.StepUploads, w.Step())

	m = typeText(t, m, path)
	m = press(t, m, tea.KeyDown, tea.KeyEnter)

	files := w.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "notes.txt", files[0].Name)
	assert.Equal(t, int64(5), files[0].Size)
	assert.Empty(t, files[0].Preview)
	assert.Contains(t, m.View(), "notes.txt")

	m.cursor = 2
	m = press(t, m, tea.KeyDelete)
	assert.Empty(t, w.Files())
}

func TestWizardModel_CtrlCSavesDraft(t *testing.T) {
	draft := filepath.Join(t.TempDir(), "draft.json")
	w := wizard.New(wizard.Options{Catalog: testCatalog})
	m := NewWizardModel(context.Background(), w, &fakeSubmitter{}, draft)

	m = typeText(t, m, "10001")
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	snap, err := LoadDraft(draft)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "10001", snap.ZipCode)

	restored := wizard.Restore(*snap, wizard.Options{Catalog: testCatalog})
	assert.Equal(t, "10001", restored.ZipCode())
}

func TestLoadDraft(t *testing.T) {
	snap, err := LoadDraft(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(t, err)
	assert.Nil(t, snap)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadDraft(bad)
	assert.ErrorContains(t, err, "failed to decode draft")
}
