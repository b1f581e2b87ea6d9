package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"github.com/gin-gonic/gin"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"
)

// strategyConfigSchema 约束策略配置载荷，未知字段放行。
const strategyConfigSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"max_position": {"type": "number", "minimum": 0},
		"stop_loss_pct": {"type": "number", "minimum": 0, "maximum": 1},
		"take_profit_pct": {"type": "number", "minimum": 0},
		"leverage": {"type": "integer", "minimum": 1, "maximum": 100},
		"timeframe": {"type": "string"},
		"indicators": {"type": "array", "items": {"type": "string"}}
	},
	"additionalProperties": true
}`

var compiledStrategySchema = jsonschema.MustCompileString("strategy_config.json", strategyConfigSchema)

func validateStrategyConfig(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return compiledStrategySchema.Validate(doc)
}

func registerStrategyRoutes(group *gin.RouterGroup, strategies store.StrategyRepository, users store.UserRepository) {
	h := &strategyHandler{strategies: strategies, users: users}
	group.GET("", h.handleList)
	group.POST("", h.handleCreate)
	group.GET("/:strategy_id", h.handleGet)
	group.PUT("/:strategy_id", h.handleUpdate)
	group.DELETE("/:strategy_id", h.handleDelete)
}

type strategyHandler struct {
	strategies store.StrategyRepository
	users      store.UserRepository
}

func strategyJSON(s model.StrategyModel) gin.H {
	return gin.H{
		"id":         s.ID,
		"user_id":    s.UserID,
		"name":       s.Name,
		"market":     s.Market,
		"state":      s.State,
		"pnl":        s.PnL,
		"config":     json.RawMessage(s.Config),
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
}

func (h *strategyHandler) handleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	userID, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)
	records, err := h.strategies.List(c.Request.Context(), store.StrategyQuery{
		UserID: userID,
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(records))
	for _, rec := range records {
		out = append(out, strategyJSON(rec))
	}
	c.JSON(http.StatusOK, gin.H{"strategies": out})
}

type createStrategyRequest struct {
	UserID int64           `json:"user_id" binding:"required"`
	Name   string          `json:"name" binding:"required"`
	Market string          `json:"market" binding:"required"`
	Config json.RawMessage `json:"config"`
}

func (h *strategyHandler) handleCreate(c *gin.Context) {
	var req createStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := validateStrategyConfig(req.Config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid strategy config: " + err.Error()})
		return
	}
	now := time.Now().UTC()
	strategy := &model.StrategyModel{
		UserID:    req.UserID,
		Name:      req.Name,
		Market:    req.Market,
		State:     "inactive",
		Config:    datatypes.JSON(req.Config),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.strategies.Create(c.Request.Context(), strategy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Strategy created successfully",
		"strategy_id": strategy.ID,
	})
}

func (h *strategyHandler) handleGet(c *gin.Context) {
	strategy, ok := h.findByParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, strategyJSON(*strategy))
}

type updateStrategyRequest struct {
	Name   string          `json:"name"`
	Market string          `json:"market"`
	State  string          `json:"state"`
	Config json.RawMessage `json:"config"`
}

func (h *strategyHandler) handleUpdate(c *gin.Context) {
	strategy, ok := h.findByParam(c)
	if !ok {
		return
	}
	var req updateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != "" {
		strategy.Name = req.Name
	}
	if req.Market != "" {
		strategy.Market = req.Market
	}
	if req.State != "" {
		strategy.State = req.State
	}
	if len(req.Config) > 0 {
		if err := validateStrategyConfig(req.Config); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid strategy config: " + err.Error()})
			return
		}
		strategy.Config = datatypes.JSON(req.Config)
	}
	strategy.UpdatedAt = time.Now().UTC()
	if err := h.strategies.Save(c.Request.Context(), strategy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Strategy updated successfully",
		"strategy_id": strategy.ID,
	})
}

func (h *strategyHandler) handleDelete(c *gin.Context) {
	strategy, ok := h.findByParam(c)
	if !ok {
		return
	}
	if err := h.strategies.Delete(c.Request.Context(), strategy.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Strategy deleted successfully"})
}

func (h *strategyHandler) findByParam(c *gin.Context) (*model.StrategyModel, bool) {
	id, err := strconv.ParseInt(c.Param("strategy_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid strategy id"})
		return nil, false
	}
	strategy, err := h.strategies.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if strategy == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
		return nil, false
	}
	return strategy, true
}
