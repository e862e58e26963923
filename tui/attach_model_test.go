package tui

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merch-intake/app/controller"
	"merch-intake/app/router"
	"merch-intake/client"
	"merch-intake/models"
	"merch-intake/repository"
	"merch-intake/service"
)

func newAPI(t *testing.T) *client.Client {
	t.Helper()
	requests := service.NewRequestService(repository.NewMemoryRequestRepository(), nil, nil)
	catalog, err := service.NewCatalogService("")
	require.NoError(t, err)

	srv := httptest.NewServer(router.NewHandler(&router.Controllers{
		Request: controller.NewRequestController(requests, nil),
		Catalog: controller.NewCatalogController(catalog),
	}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

func sendAttach(t *testing.T, m AttachModel, msg tea.Msg) (AttachModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AttachModel)
	require.True(t, ok)
	return am, cmd
}

// settleAttach runs cmd and feeds every message it produces back into m
func settleAttach(t *testing.T, m AttachModel, cmd tea.Cmd) AttachModel {
	t.Helper()
	for _, msg := range collect(cmd) {
		m, _ = sendAttach(t, m, msg)
	}
	return m
}

func TestAttachModel_AppendsFiles(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()

	created, err := api.CreateRequest(ctx, &models.CreateMerchRequestRequest{
		ZipCode:      "94110",
		Products:     []models.ProductLine{{ID: "tee", Name: "T-Shirt", Quantity: 60}},
		Files:        []models.UploadedFile{{ID: "f1", Name: "front.png", Type: "image/png", Size: 100}},
		ContactName:  "Sam Rivera",
		ContactEmail: "sam@example.com",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("back print"), 0o644))

	m := NewAttachModel(ctx, api, created.ID)
	m = settleAttach(t, m, m.Init())
	require.NotNil(t, m.Record())
	assert.Contains(t, m.View(), "front.png")

	m, _ = sendAttach(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, m.View(), "Please select at least one file to upload.")

	m, _ = sendAttach(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path)})
	m, _ = sendAttach(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "+ notes.txt")

	m, cmd := sendAttach(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m = settleAttach(t, m, cmd)

	assert.Contains(t, m.View(), "1 file(s) added")
	require.Len(t, m.Record().Files, 2)

	stored, err := api.GetRequest(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Files, 2)
	assert.Equal(t, "f1", stored.Files[0].ID)
	assert.Equal(t, "notes.txt", stored.Files[1].Name)
	assert.Equal(t, "text/plain", stored.Files[1].Type)
	assert.Equal(t, int64(10), stored.Files[1].Size)
	assert.NotEmpty(t, stored.Files[1].ID)
}

func TestAttachModel_UnknownRequest(t *testing.T) {
	api := newAPI(t)

	m := NewAttachModel(context.Background(), api, "does-not-exist")
	m = settleAttach(t, m, m.Init())

	assert.True(t, m.NotFound())
	view := m.View()
	assert.Contains(t, view, "Request not found")
	assert.Contains(t, view, "does-not-exist")

	_, cmd := sendAttach(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
