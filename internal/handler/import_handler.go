package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wallet-import/internal/config"
	"wallet-import/internal/middleware"
	"wallet-import/internal/models"
	"wallet-import/internal/reconcile"
	"wallet-import/internal/service"
	"wallet-import/internal/utils"
	"wallet-import/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const emptyImportMessage = "No accounts to import"

type ImportHandler struct {
	imports      *service.ImportService
	excelService *service.ExcelService
	redis        *redis.Client
	cfg          *config.Config
}

func NewImportHandler(
	imports *service.ImportService,
	excelService *service.ExcelService,
	redis *redis.Client,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		imports:      imports,
		excelService: excelService,
		redis:        redis,
		cfg:          cfg,
	}
}

type toggleRequest struct {
	Included *bool `json:"included"`
}

type settingsRequest struct {
	ImportSettings *bool `json:"import_settings"`
}

// OpenImport accepts an import result either as a JSON body or as an xlsx
// upload in the "file" form field.
func (h *ImportHandler) OpenImport(c *fiber.Ctx) error {
	var result models.ImportResult

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		parsed, err := h.parseUpload(c)
		var upErr *uploadError
		if errors.As(err, &upErr) {
			return utils.ErrorResponse(c, upErr.status, upErr.message, upErr.err)
		}
		result = parsed
	} else if err := c.BodyParser(&result); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	view, err := h.imports.Open(c.UserContext(), middleware.UserID(c), result)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": reviewMessage(view),
		"data":    view,
	})
}

// uploadError carries the response for a rejected upload.
type uploadError struct {
	status  int
	message string
	err     error
}

func (e *uploadError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (h *ImportHandler) parseUpload(c *fiber.Ctx) (models.ImportResult, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return models.ImportResult{}, &uploadError{fiber.StatusBadRequest, "File is required", err}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" {
		return models.ImportResult{}, &uploadError{fiber.StatusBadRequest, "Only Excel files (.xlsx) are allowed", nil}
	}

	if file.Size > int64(h.cfg.UploadMaxSize) {
		return models.ImportResult{}, &uploadError{fiber.StatusBadRequest, "File size exceeds maximum limit", nil}
	}

	if err := os.MkdirAll(h.cfg.UploadPath, 0o755); err != nil {
		return models.ImportResult{}, &uploadError{fiber.StatusInternalServerError, "Failed to prepare upload directory", err}
	}

	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("import_%s%s", uuid.New().String()[:8], ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return models.ImportResult{}, &uploadError{fiber.StatusInternalServerError, "Failed to save file", err}
	}
	defer os.Remove(filePath)

	result, err := h.excelService.ParseImportResult(filePath)
	if err != nil {
		return models.ImportResult{}, &uploadError{fiber.StatusBadRequest, "Failed to parse Excel file", err}
	}
	return result, nil
}

func (h *ImportHandler) GetImport(c *fiber.Ctx) error {
	view, err := h.imports.Review(c.UserContext(), middleware.UserID(c), c.Params("code"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return utils.SuccessResponse(c, reviewMessage(view), view)
}

func (h *ImportHandler) ToggleAccount(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil || req.Included == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Field 'included' is required", err)
	}

	view, err := h.imports.Toggle(c.UserContext(), middleware.UserID(c), c.Params("code"), c.Params("id"), *req.Included)
	if err != nil {
		return h.serviceError(c, err)
	}
	return utils.SuccessResponse(c, "Selection updated", view)
}

func (h *ImportHandler) SetImportSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil || req.ImportSettings == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Field 'import_settings' is required", err)
	}

	view, err := h.imports.SetImportSettings(c.UserContext(), middleware.UserID(c), c.Params("code"), *req.ImportSettings)
	if err != nil {
		return h.serviceError(c, err)
	}
	return utils.SuccessResponse(c, "Settings choice updated", view)
}

func (h *ImportHandler) CommitImport(c *fiber.Ctx) error {
	summary, err := h.imports.Commit(c.UserContext(), middleware.UserID(c), c.Params("code"))
	if err != nil {
		return h.serviceError(c, err)
	}

	message := fmt.Sprintf("%d accounts added, %d accounts updated", len(summary.Created), len(summary.Patched))
	return utils.SuccessResponse(c, message, summary)
}

func (h *ImportHandler) CancelImport(c *fiber.Ctx) error {
	if err := h.imports.Cancel(c.UserContext(), middleware.UserID(c), c.Params("code")); err != nil {
		return h.serviceError(c, err)
	}
	return utils.SuccessResponse(c, "Import canceled", nil)
}

func (h *ImportHandler) DownloadSkippedReport(c *fiber.Ctx) error {
	code := c.Params("code")
	skipped, err := h.imports.Skipped(c.UserContext(), middleware.UserID(c), code)
	if err != nil {
		return h.serviceError(c, err)
	}

	if err := os.MkdirAll(h.cfg.ExportPath, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare export directory", err)
	}

	fileName := fmt.Sprintf("skipped_%s.xlsx", code)
	filePath := filepath.Join(h.cfg.ExportPath, fileName)
	if err := h.excelService.GenerateSkippedReport(code, skipped, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate report", err)
	}

	return c.Download(filePath, fileName)
}

// GetSyncStatus reports what the background sync recorded for a committed
// import.
func (h *ImportHandler) GetSyncStatus(c *fiber.Ctx) error {
	code := c.Params("code")
	if _, err := h.imports.Skipped(c.UserContext(), middleware.UserID(c), code); err != nil {
		return h.serviceError(c, err)
	}

	if h.redis == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Sync status is unavailable", nil)
	}

	fields, err := h.redis.HGetAll(c.UserContext(), worker.ImportStatusKey(code)).Result()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read sync status", err)
	}
	if len(fields) == 0 {
		return utils.SuccessResponse(c, "Sync pending", fiber.Map{"status": "pending"})
	}

	verified, _ := strconv.Atoi(fields["verified"])
	missing, _ := strconv.Atoi(fields["missing"])
	return utils.SuccessResponse(c, "Sync status retrieved", fiber.Map{
		"status":   fields["status"],
		"verified": verified,
		"missing":  missing,
	})
}

func (h *ImportHandler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsNotFound(err):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Import session not found", nil)
	case errors.Is(err, reconcile.ErrUnknownAccount):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Account is not part of this import", nil)
	case errors.Is(err, reconcile.ErrNotImportable):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Account cannot be imported", nil)
	case errors.Is(err, reconcile.ErrSessionClosed):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Import session is no longer open", nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Import failed", err)
}

func reviewMessage(view *service.ReviewView) string {
	if view.Empty {
		return emptyImportMessage
	}
	return fmt.Sprintf("%d accounts to review", len(view.Items))
}
