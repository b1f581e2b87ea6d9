package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/botlog"

	"github.com/gin-gonic/gin"
)

func registerReportRoutes(group *gin.RouterGroup, st store.Store, logs *botlog.Store) {
	h := &reportHandler{store: st, logs: logs}
	group.GET("/dashboard", h.handleDashboard)
	group.GET("/performance", h.handlePerformance)
	group.GET("/signals/analytics", h.handleSignalAnalytics)
	group.GET("/logs", h.handleLogs)
}

type reportHandler struct {
	store store.Store
	logs  *botlog.Store
}

func (h *reportHandler) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)
	strategies := h.store.Strategies()

	total, err := strategies.Count(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	active, err := strategies.CountByState(ctx, "active", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totalPnL, err := strategies.SumPnL(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	recentSignals, err := h.store.Signals().CountSince(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_strategies":   total,
		"active_strategies":  active,
		"total_pnl":          totalPnL,
		"recent_signals_24h": recentSignals,
		"timestamp":          time.Now().UTC(),
	})
}

func (h *reportHandler) handlePerformance(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	records, err := h.store.Strategies().ListCreatedSince(ctx, since, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	performance := make([]gin.H, 0, len(records))
	totalPnL := 0.0
	for _, s := range records {
		totalPnL += s.PnL
		performance = append(performance, gin.H{
			"strategy_id": s.ID,
			"name":        s.Name,
			"market":      s.Market,
			"pnl":         s.PnL,
			"state":       s.State,
			"created_at":  s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"period_days":  days,
		"strategies":   performance,
		"total_pnl":    totalPnL,
		"generated_at": time.Now().UTC(),
	})
}

func (h *reportHandler) handleSignalAnalytics(c *gin.Context) {
	ctx := c.Request.Context()
	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
	if hours <= 0 {
		hours = 24
	}
	exchange := c.Query("exchange")
	symbol := c.Query("symbol")
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	records, err := h.store.Signals().ListSince(ctx, since, exchange, symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	byType := map[string]int{}
	avgConfidence := 0.0
	for _, s := range records {
		byType[s.SignalType]++
		avgConfidence += s.Confidence
	}
	if len(records) > 0 {
		avgConfidence /= float64(len(records))
	}
	c.JSON(http.StatusOK, gin.H{
		"period_hours":       hours,
		"total_signals":      len(records),
		"signal_types":       byType,
		"average_confidence": avgConfidence,
		"exchange":           exchange,
		"symbol":             symbol,
		"generated_at":       time.Now().UTC(),
	})
}

func (h *reportHandler) handleLogs(c *gin.Context) {
	if h.logs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "bot logs not enabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	records, err := h.logs.List(c.Request.Context(), botlog.Query{
		BotID:    c.Query("bot_id"),
		Exchange: c.Query("exchange"),
		Limit:    limit,
		Offset:   skip,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": records})
}
