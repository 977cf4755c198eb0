package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
)

// CatalogHandler serves read endpoints over the stored catalog.
type CatalogHandler struct {
	svc Catalog
	log *logrus.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc Catalog, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

// Stats handles GET /stats.
func (h *CatalogHandler) Stats(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("fetching catalog counts")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "fetching catalog counts")

		return
	}

	c.JSON(http.StatusOK, counts)
}

// Position handles GET /positions?fen=... — FEN strings contain slashes, so
// the key travels as a query parameter rather than a path segment.
func (h *CatalogHandler) Position(c *gin.Context) {
	fen := c.Query("fen")
	if fen == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "fen query parameter is required")

		return
	}

	pos, err := h.svc.PositionByFEN(c.Request.Context(), fen)
	if err != nil {
		if errors.Is(err, models.ErrPositionNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "position not found")

			return
		}

		h.log.WithError(err).Error("fetching position")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "fetching position")

		return
	}

	c.JSON(http.StatusOK, pos)
}
