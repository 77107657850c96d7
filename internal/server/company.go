package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
)

type createCompanyRequest struct {
	CompanyName   string `json:"company_name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	ProfilePicURL string `json:"profile_pic_url"`
}

func (s *Server) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	company, err := s.companySvc.Create(c.Request.Context(), companydomain.CreateCompanyRequest{
		CompanyName:   req.CompanyName,
		Username:      req.Username,
		Password:      req.Password,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": company})
}

func (s *Server) ListCompanies(c *gin.Context) {
	activeOnly := strings.EqualFold(c.Query("active"), "true")
	companies, err := s.companySvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": companies})
}

func (s *Server) GetCompany(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	company, err := s.companySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": company})
}

type setStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

func (s *Server) SetCompanyStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.companySvc.SetStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "is_active": *req.IsActive}})
}

type updateCompanyProfileRequest struct {
	CompanyName   string `json:"company_name"`
	ProfilePicURL string `json:"profile_pic_url"`
}

func (s *Server) UpdateCompanyProfile(c *gin.Context) {
	identity := currentIdentity(c)

	var req updateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.companySvc.UpdateProfile(c.Request.Context(), companydomain.UpdateProfileRequest{
		CompanyID:     identity.ID,
		CompanyName:   req.CompanyName,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) ResetCompanyPassword(c *gin.Context) {
	identity := currentIdentity(c)

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.companySvc.ResetPassword(c.Request.Context(), identity.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}
