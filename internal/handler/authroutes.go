package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messmate/internal/auth"
	"messmate/internal/user"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register handles POST /v1/auth/register. Self-registered accounts are
// plain users unless the email is in the configured admin set.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.users.Register(c.Request.Context(), req.Email, req.Name, req.Password, user.RoleUser, "")
	if err != nil {
		respondErr(c, err)
		return
	}

	h.issueTokens(c, http.StatusCreated, acc)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	h.issueTokens(c, http.StatusOK, acc)
}

func (h *Handler) issueTokens(c *gin.Context, status int, acc user.Account) {
	tokens, err := auth.Issue(acc.ID, acc.Email, acc.Name, acc.Role,
		h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	c.JSON(status, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_at":    tokens.AccessExp.Unix(),
		"role":          acc.Role,
		"user": gin.H{
			"id":    acc.ID,
			"email": acc.Email,
			"name":  acc.Name,
			"role":  acc.Role,
		},
	})
}
