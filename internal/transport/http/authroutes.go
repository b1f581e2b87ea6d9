package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"cerebro/internal/auth"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(group *gin.RouterGroup, svc *auth.Service) {
	h := &authHandler{svc: svc}
	group.POST("/register", h.handleRegister)
	group.POST("/token", h.handleLogin)
	group.GET("/me", svc.Middleware(), h.handleMe)
}

type authHandler struct {
	svc *auth.Service
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Wallet   string `json:"wallet"`
}

func (h *authHandler) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.Wallet)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully", "user_id": user.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// OAuth2 password-flow clients send "username" instead
	Username string `json:"username"`
}

func (h *authHandler) handleLogin(c *gin.Context) {
	var req loginRequest
	if strings.HasPrefix(c.ContentType(), "application/x-www-form-urlencoded") {
		req.Email = c.PostForm("username")
		req.Password = c.PostForm("password")
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Email == "" {
			req.Email = req.Username
		}
	}
	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// handleMe 在 Middleware 之后执行，context 里一定有已验证的邮箱。
func (h *authHandler) handleMe(c *gin.Context) {
	email := c.GetString(auth.ContextUserKey)
	user, err := h.svc.UserByEmail(c.Request.Context(), email)
	if err != nil || user == nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"wallet":      user.Wallet,
		"permissions": user.Permissions,
		"is_active":   user.IsActive,
	})
}
