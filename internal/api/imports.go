// Package api provides HTTP handlers for chesskeep.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
)

// ImportHandler serves the ingestion endpoints. Bodies are raw file content
// (JSONL or PGN), with the original filename carried in the source query
// parameter for provenance.
type ImportHandler struct {
	svc Importer
	log *logrus.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(svc Importer, log *logrus.Logger) *ImportHandler {
	return &ImportHandler{svc: svc, log: log}
}

// Positions handles POST /import/positions. The body is a JSONL stream of
// analysis records.
func (h *ImportHandler) Positions(c *gin.Context) {
	source := c.DefaultQuery("source", "upload.jsonl")

	result, err := h.svc.ImportPositions(c.Request.Context(), c.Request.Body, source)
	if err != nil {
		h.log.WithError(err).Error("position import failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "position import failed")

		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, result)
}

// Games handles POST /import/games. The body is PGN text; max_games
// optionally bounds how many games are imported.
func (h *ImportHandler) Games(c *gin.Context) {
	source := c.DefaultQuery("source", "upload.pgn")
	maxGames := parseInt(c.Query("max_games"), 0)

	result, err := h.svc.ImportGames(c.Request.Context(), c.Request.Body, source, maxGames)
	if err != nil {
		if errors.Is(err, models.ErrNoGames) {
			respondError(c, http.StatusUnprocessableEntity, ErrCodeValidationError, "no games found in PGN input")

			return
		}

		h.log.WithError(err).Error("game import failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "game import failed")

		return
	}

	c.JSON(http.StatusOK, result)
}

// Preview handles POST /games/preview: validation plus file statistics,
// without writing anything.
func (h *ImportHandler) Preview(c *gin.Context) {
	content, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "reading request body")

		return
	}

	if len(content) == 0 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "empty PGN body")

		return
	}

	preview, err := h.svc.PreviewGames(c.Request.Context(), string(content))
	if err != nil {
		h.log.WithError(err).Error("game preview failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "game preview failed")

		return
	}

	c.JSON(http.StatusOK, preview)
}
