package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func registerWalletRoutes(group *gin.RouterGroup, wallet store.WalletRepository) {
	h := &walletHandler{wallet: wallet}
	group.POST("/tx", h.handleCreate)
	group.GET("/tx", h.handleList)
	group.GET("/tx/:tx_hash", h.handleGet)
	group.PATCH("/tx/:tx_hash/status", h.handleUpdateStatus)
}

type walletHandler struct {
	wallet store.WalletRepository
}

type transactionRequest struct {
	Hash        string `json:"hash" binding:"required"`
	FromAddress string `json:"from_address" binding:"required"`
	ToAddress   string `json:"to_address" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Token       string `json:"token" binding:"required"`
	Network     string `json:"network"`
	Status      string `json:"status"`
}

var validTxStatuses = map[string]bool{"pending": true, "confirmed": true, "failed": true}

// handleCreate 金额以字符串入库保精度，入库前用 decimal 校验其为非负数值。
func (h *walletHandler) handleCreate(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount: " + req.Amount})
		return
	}
	if amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount cannot be negative"})
		return
	}
	if req.Network == "" {
		req.Network = "ETHEREUM"
	}
	if req.Status == "" {
		req.Status = "pending"
	}
	if !validTxStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + req.Status})
		return
	}
	now := time.Now().UTC()
	record := &model.WalletTransactionModel{
		Hash:        req.Hash,
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		Amount:      amount.String(),
		Token:       req.Token,
		Network:     req.Network,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.wallet.Create(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction saved successfully",
		"id":      record.ID,
		"hash":    record.Hash,
	})
}

func (h *walletHandler) handleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	records, err := h.wallet.List(c.Request.Context(), store.WalletQuery{
		Token:  c.Query("token"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": records})
}

func (h *walletHandler) handleGet(c *gin.Context) {
	hash := c.Param("tx_hash")
	record, err := h.wallet.FindByHash(c.Request.Context(), hash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *walletHandler) handleUpdateStatus(c *gin.Context) {
	hash := c.Param("tx_hash")
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validTxStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + req.Status})
		return
	}
	err := h.wallet.UpdateStatus(c.Request.Context(), hash, req.Status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction status updated", "hash": hash, "status": req.Status})
}
