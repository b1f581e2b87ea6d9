package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cerebro/internal/market"
	"cerebro/internal/trading"

	"github.com/gin-gonic/gin"
)

type orderRequest struct {
	Exchange string   `json:"exchange" binding:"required"`
	Symbol   string   `json:"symbol" binding:"required"`
	Side     string   `json:"side" binding:"required"`
	Amount   float64  `json:"amount" binding:"required"`
	Price    *float64 `json:"price"`
}

func registerTradeRoutes(group *gin.RouterGroup, trade *trading.Service, mkt *market.Service) {
	h := &tradeHandler{trade: trade, market: mkt}
	group.GET("/market-data/:exchange/*symbol", h.handleMarketData)
	group.POST("/order", h.handlePlaceOrder)
	group.GET("/order/:order_id", h.handleOrderStatus)
	group.DELETE("/order/:order_id", h.handleCancelOrder)
	group.GET("/portfolio/:exchange", h.handlePortfolio)
}

type tradeHandler struct {
	trade  *trading.Service
	market *market.Service
}

// handleMarketData 永远返回 200：行情退化时快照里带 error 字段。
func (h *tradeHandler) handleMarketData(c *gin.Context) {
	exchange := c.Param("exchange")
	symbol := strings.TrimPrefix(c.Param("symbol"), "/")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	snap := h.market.Snapshot(c.Request.Context(), exchange, symbol)
	c.JSON(http.StatusOK, snap)
}

func (h *tradeHandler) handlePlaceOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid order payload", "error": err.Error()})
		return
	}
	result, err := h.trade.PlaceOrder(c.Request.Context(), req.Exchange, req.Symbol, req.Side, req.Amount, req.Price)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, trading.ErrInvalidOrder) {
			status = http.StatusBadRequest
		}
		c.JSON(status, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *tradeHandler) handleOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")
	exchange := c.Query("exchange")
	order, err := h.trade.OrderStatus(c.Request.Context(), exchange, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Order not found",
			"message": "Order " + orderID + " not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *tradeHandler) handleCancelOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	exchange := c.Query("exchange")
	err := h.trade.CancelOrder(c.Request.Context(), exchange, orderID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order " + orderID + " cancelled successfully",
		})
	case errors.Is(err, trading.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Order not found",
			"message": "Order " + orderID + " not found",
		})
	case errors.Is(err, trading.ErrOrderNotPending):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Cannot cancel order",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to cancel order",
		})
	}
}

func (h *tradeHandler) handlePortfolio(c *gin.Context) {
	exchange := c.Param("exchange")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"exchange":  exchange,
		"balances":  h.trade.PortfolioBalance(exchange),
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
