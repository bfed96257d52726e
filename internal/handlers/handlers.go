package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/internal/database"
	"stockfolio/internal/models"
	"stockfolio/internal/service"
)

// PortfolioController is the slice of the synchronization controller the
// HTTP layer drives.
type PortfolioController interface {
	Refresh(ctx context.Context) error
	StartEdit(symbol string) error
	Submit(ctx context.Context, draft models.Draft) error
	Cancel()
	Delete(ctx context.Context, symbol string) error
	View() models.PortfolioView
}

type Handler struct {
	portfolios map[string]PortfolioController
	log        *logrus.Logger
}

func NewHandler(portfolios map[string]PortfolioController, log *logrus.Logger) *Handler {
	return &Handler{portfolios: portfolios, log: log}
}

// Register wires the portfolio routes onto a gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/api/:portfolio", h.GetPortfolio)
	r.POST("/api/:portfolio/refresh", h.Refresh)
	r.POST("/api/:portfolio/submit", h.Submit)
	r.POST("/api/:portfolio/edit/:symbol", h.StartEdit)
	r.POST("/api/:portfolio/cancel", h.Cancel)
	r.DELETE("/api/:portfolio/holdings/:symbol", h.Delete)
}

func (h *Handler) controller(c *gin.Context) (PortfolioController, bool) {
	ctl, ok := h.portfolios[c.Param("portfolio")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown portfolio"})
	}
	return ctl, ok
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctl.View())
}

func (h *Handler) Refresh(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctl.Refresh(c.Request.Context()); err != nil {
		h.log.Errorf("refresh failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, ctl.View())
}

func (h *Handler) Submit(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	var draft models.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.log.Warnf("invalid submit body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft.Symbol = strings.TrimSpace(draft.Symbol)
	if !ctl.View().EditSession.IsEditing && draft.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	if draft.SharesHeld.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sharesHeld must be >= 0"})
		return
	}
	if err := ctl.Submit(c.Request.Context(), draft); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.View())
}

func (h *Handler) StartEdit(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctl.StartEdit(strings.ToUpper(c.Param("symbol"))); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.View())
}

func (h *Handler) Cancel(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	ctl.Cancel()
	c.JSON(http.StatusOK, ctl.View())
}

func (h *Handler) Delete(c *gin.Context) {
	ctl, ok := h.controller(c)
	if !ok {
		return
	}
	if err := ctl.Delete(c.Request.Context(), strings.ToUpper(c.Param("symbol"))); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.View())
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrDuplicateSymbol):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNoSuchSymbol):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("mutation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "store request failed"})
	}
}
