package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cerebro/internal/market"
	"cerebro/internal/signal"
	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

func registerSignalRoutes(group *gin.RouterGroup, signals store.SignalRepository, svc *signal.Service) {
	h := &signalHandler{signals: signals, svc: svc}
	group.GET("", h.handleList)
	group.POST("", h.handleCreate)
	group.POST("/generate", h.handleGenerate)
	group.POST("/seed", h.handleSeed)
	group.POST("/sentiment", h.handleSentiment)
	group.GET("/:signal_id", h.handleGet)
}

type signalHandler struct {
	signals store.SignalRepository
	svc     *signal.Service
}

func signalJSON(s model.SignalModel) gin.H {
	return gin.H{
		"id":          s.ID,
		"timestamp":   s.Timestamp,
		"exchange":    s.Exchange,
		"symbol":      s.Symbol,
		"signal_type": s.SignalType,
		"confidence":  s.Confidence,
		"price":       s.Price,
		"volume":      s.Volume,
		"metadata":    json.RawMessage(s.Metadata),
	}
}

func (h *signalHandler) handleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	q := store.SignalQuery{
		Exchange: c.Query("exchange"),
		Symbol:   c.Query("symbol"),
		Limit:    limit,
		Offset:   skip,
	}
	records, err := h.signals.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// sentiment 过滤走 metadata JSON，数据库不建索引，放在内存里筛。
	sentiment := c.Query("sentiment")
	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		if sentiment != "" && gjson.GetBytes(rec.Metadata, "market_sentiment").String() != sentiment {
			continue
		}
		out = append(out, signalJSON(rec))
	}
	c.JSON(http.StatusOK, gin.H{"signals": out})
}

type createSignalRequest struct {
	Exchange   string          `json:"exchange" binding:"required"`
	Symbol     string          `json:"symbol" binding:"required"`
	SignalType string          `json:"signal_type" binding:"required"`
	Confidence float64         `json:"confidence"`
	Price      float64         `json:"price"`
	Volume     float64         `json:"volume"`
	Metadata   json.RawMessage `json:"metadata"`
}

func (h *signalHandler) handleCreate(c *gin.Context) {
	var req createSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record := &model.SignalModel{
		Timestamp:  time.Now().UTC(),
		Exchange:   req.Exchange,
		Symbol:     req.Symbol,
		SignalType: req.SignalType,
		Confidence: req.Confidence,
		Price:      req.Price,
		Volume:     req.Volume,
		Metadata:   datatypes.JSON(req.Metadata),
	}
	if err := h.signals.Create(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Signal created successfully",
		"signal_id": record.ID,
		"timestamp": record.Timestamp,
	})
}

type generateSignalRequest struct {
	Exchange   string           `json:"exchange"`
	Symbol     string           `json:"symbol"`
	MarketData *market.Snapshot `json:"market_data"`
}

func (h *signalHandler) handleGenerate(c *gin.Context) {
	var req generateSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sig := h.svc.GenerateSignal(req.Exchange, req.Symbol, req.MarketData)
	c.JSON(http.StatusOK, sig)
}

type seedRequest struct {
	Count int `json:"count"`
}

func (h *signalHandler) handleSeed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count <= 0 {
		req.Count = 100
	}
	seeded, err := h.svc.SeedInitialSignals(c.Request.Context(), req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "seeded": seeded})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signals seeded successfully", "seeded": seeded})
}

type sentimentRequest struct {
	Symbols []string `json:"symbols"`
}

func (h *signalHandler) handleSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.svc.AnalyzeMarketSentiment(req.Symbols))
}

func (h *signalHandler) handleGet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("signal_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signal id"})
		return
	}
	record, err := h.signals.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signal not found"})
		return
	}
	c.JSON(http.StatusOK, signalJSON(*record))
}
