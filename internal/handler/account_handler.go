package handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wallet-import/internal/config"
	"wallet-import/internal/models"
	"wallet-import/internal/repository"
	"wallet-import/internal/service"
	"wallet-import/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AccountReader interface {
	GetAll(ctx context.Context) ([]models.Account, error)
	FindAll(ctx context.Context, limit, offset int, search, orderBy, orderDir string) ([]models.Account, int, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

type AccountHandler struct {
	accounts     AccountReader
	excelService *service.ExcelService
	cfg          *config.Config
}

func NewAccountHandler(accounts AccountReader, excelService *service.ExcelService, cfg *config.Config) *AccountHandler {
	return &AccountHandler{
		accounts:     accounts,
		excelService: excelService,
		cfg:          cfg,
	}
}

func (h *AccountHandler) GetAccounts(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, "name", "currency", "created_at")
	offset := utils.GetOffset(params.Page, params.Limit)

	accounts, total, err := h.accounts.FindAll(c.UserContext(), params.Limit, offset, params.Search, params.OrderBy, params.OrderDir)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve accounts", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Accounts retrieved successfully", accounts, pagination)
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.accounts.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, repository.ErrAccountNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Account not found", nil)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve account", err)
	}

	return utils.SuccessResponse(c, "Account retrieved successfully", account)
}

func (h *AccountHandler) ExportAccounts(c *fiber.Ctx) error {
	accounts, err := h.accounts.GetAll(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve accounts", err)
	}

	if err := os.MkdirAll(h.cfg.ExportPath, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare export directory", err)
	}

	fileName := fmt.Sprintf("accounts_%s.xlsx", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(h.cfg.ExportPath, fileName)
	if err := h.excelService.ExportAccounts(accounts, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export accounts", err)
	}

	return c.Download(filePath, fileName)
}
