package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	messagedomain "github.com/staffdeck/staffdeck/internal/message/domain"
)

func (s *Server) AdminInbox(c *gin.Context) {
	inbox, err := s.messageSvc.AdminInbox(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inbox})
}

type adminSendMessageRequest struct {
	CompanyID string `json:"company_id"`
	Text      string `json:"text"`
}

func (s *Server) AdminSendMessage(c *gin.Context) {
	var req adminSendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	companyID, err := parseOptionalID(req.CompanyID)
	if err != nil || companyID == 0 {
		AbortWithError(c, newValidationError("company_id", "invalid_id", "invalid company id"))
		return
	}

	to := messagedomain.Endpoint{Type: messagedomain.EndpointCompany, ID: companyID}
	msg, err := s.messageSvc.Send(c.Request.Context(), messagedomain.AdminEndpoint(), to, req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msg})
}

func (s *Server) MarkMessageRead(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.messageSvc.MarkRead(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"read": true}})
}

func (s *Server) CompanyThread(c *gin.Context) {
	identity := currentIdentity(c)

	thread, err := s.messageSvc.CompanyThread(c.Request.Context(), identity.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": thread})
}

type companySendMessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) CompanySendMessage(c *gin.Context) {
	identity := currentIdentity(c)

	var req companySendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from := messagedomain.Endpoint{Type: messagedomain.EndpointCompany, ID: identity.ID}
	msg, err := s.messageSvc.Send(c.Request.Context(), from, messagedomain.AdminEndpoint(), req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msg})
}
