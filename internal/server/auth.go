package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionCookiePath = "/"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	identity, token, err := s.authSvc.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	maxAge := s.cfg.SessionTTLHours * 3600
	c.SetCookie(sessionCookieName, token, maxAge, sessionCookiePath, "", s.cfg.AuthCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"data": identity})
}

func (s *Server) Logout(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err == nil && strings.TrimSpace(token) != "" {
		if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.SetCookie(sessionCookieName, "", -1, sessionCookiePath, "", s.cfg.AuthCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}

func (s *Server) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": currentIdentity(c)})
}
