package handlers

import (
	"errors"
	"net/http"
	"time"

	"tutorly/models"
	"tutorly/services/earnings"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EarningsHandler exposes transactions, accrual and summaries over HTTP.
type EarningsHandler struct {
	Svc    earnings.Service
	Logger *zap.Logger
}

func NewEarningsHandler(svc earnings.Service, logger *zap.Logger) *EarningsHandler {
	return &EarningsHandler{Svc: svc, Logger: logger}
}

func (h *EarningsHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transactions": h.Svc.Transactions(c.Request.Context())})
}

func (h *EarningsHandler) AddManualTransaction(c *gin.Context) {
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.AddManualTransaction(c.Request.Context(), tx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to add transaction", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EarningsHandler) RemoveTransaction(c *gin.Context) {
	err := h.Svc.RemoveTransaction(c.Request.Context(), c.Param("id"))
	if errors.Is(err, earnings.ErrTransactionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "transaction not found", c.Param("id"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove transaction", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// RunAccrual forces an accrual pass, the same evaluation the periodic
// worker runs.
func (h *EarningsHandler) RunAccrual(c *gin.Context) {
	result, err := h.Svc.RunAccrualPass(c.Request.Context(), time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "accrual pass failed", err.Error())
		return
	}
	h.Logger.Debug("accrual pass requested via API",
		zap.Int("newTransactions", len(result.NewTransactions)))
	c.JSON(http.StatusOK, gin.H{
		"newTransactions": result.NewTransactions,
		"processedCount":  len(result.ProcessedKeys),
	})
}

func (h *EarningsHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.Summary(c.Request.Context(), time.Now()))
}
