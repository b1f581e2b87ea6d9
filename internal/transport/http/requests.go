package httpapi

import (
	"net/http"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"github.com/gin-gonic/gin"
)

func registerRequestRoutes(group *gin.RouterGroup, leads store.LeadRepository) {
	h := &requestHandler{leads: leads}
	group.POST("/demo", h.handleDemo)
	group.POST("/investor", h.handleInvestor)
}

type requestHandler struct {
	leads store.LeadRepository
}

type demoRequestCreate struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Telegram string `json:"telegram"`
}

func (h *requestHandler) handleDemo(c *gin.Context) {
	var req demoRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record := &model.DemoRequestModel{
		Name:      req.Name,
		Email:     req.Email,
		Telegram:  req.Telegram,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.leads.CreateDemo(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo request submitted successfully", "id": record.ID})
}

type investorRequestCreate struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	ExpectedInvestment string `json:"expected_investment" binding:"required"`
}

func (h *requestHandler) handleInvestor(c *gin.Context) {
	var req investorRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record := &model.InvestorRequestModel{
		Name:               req.Name,
		Email:              req.Email,
		ExpectedInvestment: req.ExpectedInvestment,
		CreatedAt:          time.Now().UTC(),
	}
	if err := h.leads.CreateInvestor(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Investor request submitted successfully", "id": record.ID})
}
