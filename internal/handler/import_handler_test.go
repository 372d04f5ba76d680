package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wallet-import/internal/config"
	"wallet-import/internal/cross"
	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"
	"wallet-import/internal/repository"
	"wallet-import/internal/service"
	"wallet-import/internal/worker"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshot map[string]models.Account

func (s stubSnapshot) Snapshot(context.Context) (map[string]models.Account, error) {
	out := make(map[string]models.Account, len(s))
	for id, acc := range s {
		out[id] = acc
	}
	return out, nil
}

type recordingApplier struct {
	ops []reconcile.Operation
}

func (r *recordingApplier) Apply(_ context.Context, ops []reconcile.Operation) error {
	r.ops = append(r.ops, ops...)
	return nil
}

type importFixture struct {
	app     *fiber.App
	handler *ImportHandler
	applier *recordingApplier
	redis   *miniredis.Miniredis
	cfg     *config.Config
}

func newImportFixture(t *testing.T, userID int) *importFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{
		UploadMaxSize: 1 << 20,
		UploadPath:    t.TempDir(),
		ExportPath:    t.TempDir(),
	}
	logger, _ := test.NewNullLogger()

	applier := &recordingApplier{}
	existing := stubSnapshot{"btc-1": {ID: "btc-1", Name: "Savings", CurrencyID: "bitcoin"}}
	reconciler := reconcile.NewReconciler(cross.AccountDataToAccount, cross.NewSupport(nil).SupportsExistingAccount, logger)
	imports := service.NewImportService(existing, repository.NewSessionStore(client, time.Minute), applier, reconciler, nil, logger)
	excel := service.NewExcelService()
	h := NewImportHandler(imports, excel, client, cfg)

	return &importFixture{app: importApp(h, userID), handler: h, applier: applier, redis: mr, cfg: cfg}
}

func importApp(h *ImportHandler, userID int) *fiber.App {
	app := fiber.New()
	api := app.Group("/imports", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	api.Post("/", h.OpenImport)
	api.Get("/:code", h.GetImport)
	api.Get("/:code/status", h.GetSyncStatus)
	api.Get("/:code/skipped-report", h.DownloadSkippedReport)
	api.Put("/:code/accounts/:id", h.ToggleAccount)
	api.Put("/:code/settings", h.SetImportSettings)
	api.Post("/:code/commit", h.CommitImport)
	api.Delete("/:code", h.CancelImport)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (f *importFixture) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return f.send(t, req)
}

func (f *importFixture) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func openSample(t *testing.T, f *importFixture) service.ReviewView {
	t.Helper()
	status, env := f.do(t, "POST", "/imports", models.ImportResult{
		Accounts: []models.AccountData{
			{ID: "btc-1", Name: "Savings", CurrencyID: "bitcoin"},
			{ID: "eth-1", Name: "Spending", CurrencyID: "ethereum"},
			{ID: "xlm-1", Name: "Stellar", CurrencyID: "stellar"},
			{ID: "bad", Name: "Bad", CurrencyID: "unknown"},
		},
		Settings: &models.DesktopSettings{CounterValue: "USD"},
	})
	require.Equal(t, fiber.StatusCreated, status)

	var view service.ReviewView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return view
}

func TestImportHandler_OpenEmpty(t *testing.T) {
	f := newImportFixture(t, 1)

	status, env := f.do(t, "POST", "/imports", models.ImportResult{})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "No accounts to import", env.Message)

	var view service.ReviewView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.Empty)
}

func TestImportHandler_ReviewToggleCommit(t *testing.T) {
	f := newImportFixture(t, 1)
	view := openSample(t, f)

	assert.Equal(t, []string{"eth-1"}, view.Selected)
	assert.Equal(t, 1, view.SkippedCount)

	status, _ := f.do(t, "GET", "/imports/"+view.Code, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = f.do(t, "PUT", "/imports/"+view.Code+"/accounts/xlm-1", fiber.Map{"included": true})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = f.do(t, "PUT", "/imports/"+view.Code+"/accounts/nope", fiber.Map{"included": true})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = f.do(t, "PUT", "/imports/"+view.Code+"/accounts/eth-1", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = f.do(t, "PUT", "/imports/"+view.Code+"/settings", fiber.Map{"import_settings": false})
	assert.Equal(t, fiber.StatusOK, status)

	status, env := f.do(t, "POST", "/imports/"+view.Code+"/commit", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "1 accounts added, 0 accounts updated", env.Message)

	require.Len(t, f.applier.ops, 1)
	assert.Equal(t, reconcile.OpAddAccount, f.applier.ops[0].Kind)
	assert.Equal(t, "eth-1", f.applier.ops[0].Account.ID)

	status, _ = f.do(t, "POST", "/imports/"+view.Code+"/commit", nil)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestImportHandler_UnknownSession(t *testing.T) {
	f := newImportFixture(t, 1)

	status, env := f.do(t, "GET", "/imports/IMPORT-missing", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, env.Success)
}

func TestImportHandler_OtherUsersSession(t *testing.T) {
	f := newImportFixture(t, 1)
	view := openSample(t, f)

	other := &importFixture{app: importApp(f.handler, 2)}
	status, _ := other.do(t, "GET", "/imports/"+view.Code, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = other.do(t, "POST", "/imports/"+view.Code+"/commit", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Empty(t, f.applier.ops)
}

func TestImportHandler_Cancel(t *testing.T) {
	f := newImportFixture(t, 1)
	view := openSample(t, f)

	status, _ := f.do(t, "DELETE", "/imports/"+view.Code, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = f.do(t, "GET", "/imports/"+view.Code, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Empty(t, f.applier.ops)
}

func TestImportHandler_UploadWorkbook(t *testing.T) {
	f := newImportFixture(t, 1)

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, service.NewExcelService().WriteImportResult(models.ImportResult{
		Accounts: []models.AccountData{{ID: "ltc-1", Name: "Lite", CurrencyID: "litecoin"}},
	}, path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "export.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/imports", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	status, env := f.send(t, req)
	require.Equal(t, fiber.StatusCreated, status)

	var view service.ReviewView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, reconcile.ModeCreate, view.Items[0].Mode)

	leftovers, err := os.ReadDir(f.cfg.UploadPath)
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestImportHandler_UploadRejectsOtherFiles(t *testing.T) {
	f := newImportFixture(t, 1)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("id,name"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/imports", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	status, env := f.send(t, req)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Only Excel files (.xlsx) are allowed", env.Message)
}

func TestImportHandler_SkippedReport(t *testing.T) {
	f := newImportFixture(t, 1)
	view := openSample(t, f)

	req := httptest.NewRequest("GET", "/imports/"+view.Code+"/skipped-report", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "skipped_"+view.Code+".xlsx")
}

func TestImportHandler_SyncStatus(t *testing.T) {
	f := newImportFixture(t, 1)
	view := openSample(t, f)

	status, env := f.do(t, "GET", "/imports/"+view.Code+"/status", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"pending"}`, string(env.Data))

	f.redis.HSet(worker.ImportStatusKey(view.Code), "status", "synced", "verified", "1", "missing", "0")

	status, env = f.do(t, "GET", "/imports/"+view.Code+"/status", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"synced","verified":1,"missing":0}`, string(env.Data))
}
