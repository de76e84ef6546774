package handler

import (
	"strconv"

	apperrors "github.com/boundary-tiler/internal/pkg/errors"
	"github.com/boundary-tiler/internal/pkg/utils"
	"github.com/boundary-tiler/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TileHandler - обработчик для запросов векторных тайлов границ
type TileHandler struct {
	tileUC *usecase.TileUseCase
	logger *zap.Logger
}

// NewTileHandler - создание нового TileHandler
func NewTileHandler(tileUC *usecase.TileUseCase, logger *zap.Logger) *TileHandler {
	return &TileHandler{
		tileUC: tileUC,
		logger: logger,
	}
}

// GetBoundaryTile - получение тайла с границами
func (h *TileHandler) GetBoundaryTile(c *fiber.Ctx) error {
	z, _ := strconv.Atoi(c.Params("z"))
	x, _ := strconv.Atoi(c.Params("x"))
	y, _ := strconv.Atoi(c.Params("y"))

	if !utils.ValidateTileCoords(z, x, y) {
		e := apperrors.ErrInvalidTileCoordinates
		return c.Status(e.StatusCode).JSON(fiber.Map{"error": e})
	}

	tile, err := h.tileUC.GetBoundaryTile(c.Context(), z, x, y)
	if err != nil {
		h.logger.Error("Failed to get boundary tile", zap.Error(err))
		e := apperrors.ErrInternalServer
		return c.Status(e.StatusCode).JSON(fiber.Map{"error": e})
	}

	if len(tile) == 0 {
		h.logger.Debug("Boundary tile is empty",
			zap.Int("z", z),
			zap.Int("x", x),
			zap.Int("y", y))
		return c.SendStatus(fiber.StatusNoContent)
	}

	h.logger.Debug("Boundary tile served",
		zap.Int("z", z),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.Int("size", len(tile)))

	// Тайлы лежат на диске уже сжатыми
	c.Set("Content-Type", "application/x-protobuf")
	c.Set("Content-Encoding", "gzip")
	c.Set("Cache-Control", "public, max-age=86400")
	return c.Send(tile)
}
