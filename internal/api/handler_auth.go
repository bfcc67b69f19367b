package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombook-backend/internal/auth"
	"roombook-backend/internal/store"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	// Admin selects the admin realm, mirroring the separate admin portal.
	Admin bool `json:"admin"`
}

// Login verifies credentials against the bcrypt hash on record and
// issues a session token. Unknown accounts and wrong passwords are
// indistinguishable to the caller.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := auth.RoleUser
	var hash string
	var err error
	if req.Admin {
		role = auth.RoleAdmin
		a, aerr := h.store.GetAdmin(c.Request.Context(), req.Email)
		hash, err = a.PasswordHash, aerr
	} else {
		u, uerr := h.store.GetUser(c.Request.Context(), req.Email)
		hash, err = u.PasswordHash, uerr
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := h.auth.VerifyPassword(hash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.IssueToken(req.Email, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": req.Email, "role": role})
}
