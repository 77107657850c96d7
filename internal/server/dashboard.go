package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) AdminDashboard(c *gin.Context) {
	overview, err := s.dashboardSvc.AdminOverview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func (s *Server) CompanyDashboard(c *gin.Context) {
	identity := currentIdentity(c)

	overview, err := s.dashboardSvc.CompanyOverview(c.Request.Context(), identity.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func (s *Server) EmployeeDashboard(c *gin.Context) {
	identity := currentIdentity(c)

	overview, err := s.dashboardSvc.EmployeeOverview(c.Request.Context(), identity.ID, time.Now().UTC())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}
