package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
)

type createEmployeeRequest struct {
	BranchID      string `json:"branch_id"`
	RoleID        string `json:"role_id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	ProfilePicURL string `json:"profile_pic_url"`
}

func (s *Server) CreateEmployee(c *gin.Context) {
	identity := currentIdentity(c)

	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	branchID, err := parseOptionalID(req.BranchID)
	if err != nil {
		AbortWithError(c, newValidationError("branch_id", "invalid_id", "invalid branch id"))
		return
	}
	roleID, err := parseOptionalID(req.RoleID)
	if err != nil {
		AbortWithError(c, newValidationError("role_id", "invalid_id", "invalid role id"))
		return
	}

	created, err := s.employeeSvc.Create(c.Request.Context(), employeedomain.CreateEmployeeRequest{
		Actor:         identity,
		BranchID:      branchID,
		RoleID:        roleID,
		Username:      req.Username,
		Password:      req.Password,
		FullName:      req.FullName,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) ListEmployees(c *gin.Context) {
	identity := currentIdentity(c)

	filter := employeedomain.ListFilter{
		ActiveOnly: strings.EqualFold(c.Query("active"), "true"),
	}

	switch {
	case identity.IsAdmin():
		companyID, err := parseOptionalID(c.Query("company_id"))
		if err != nil {
			AbortWithError(c, newValidationError("company_id", "invalid_id", "invalid company id"))
			return
		}
		filter.CompanyID = companyID
	case identity.IsCompany():
		filter.CompanyID = identity.ID
	default:
		filter.CompanyID = identity.CompanyID
	}

	branchID, err := parseOptionalID(c.Query("branch_id"))
	if err != nil {
		AbortWithError(c, newValidationError("branch_id", "invalid_id", "invalid branch id"))
		return
	}
	filter.BranchID = branchID

	level, err := parseOptionalLevel(c.Query("role_level"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	filter.RoleLevel = level

	employees, err := s.employeeSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employees})
}

func (s *Server) GetEmployee(c *gin.Context) {
	detail, err := s.scopedEmployee(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (s *Server) SetEmployeeStatus(c *gin.Context) {
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

	identity := currentIdentity(c)
	if err := s.employeeSvc.SetStatus(c.Request.Context(), identity, id, *req.IsActive); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "is_active": *req.IsActive}})
}

type updateEmployeeRoleRequest struct {
	RoleID string `json:"role_id"`
}

func (s *Server) UpdateEmployeeRole(c *gin.Context) {
	detail, err := s.scopedEmployee(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateEmployeeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	roleID, err := parseOptionalID(req.RoleID)
	if err != nil || roleID == 0 {
		AbortWithError(c, newValidationError("role_id", "invalid_id", "invalid role id"))
		return
	}

	if err := s.employeeSvc.UpdateRole(c.Request.Context(), detail.ID, roleID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

type updateEmployeeBranchRequest struct {
	BranchID string `json:"branch_id"`
}

func (s *Server) UpdateEmployeeBranch(c *gin.Context) {
	detail, err := s.scopedEmployee(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateEmployeeBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	branchID, err := parseOptionalID(req.BranchID)
	if err != nil || branchID == 0 {
		AbortWithError(c, newValidationError("branch_id", "invalid_id", "invalid branch id"))
		return
	}

	if err := s.employeeSvc.UpdateBranch(c.Request.Context(), detail.ID, branchID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

type updateEmployeeProfileRequest struct {
	FullName      string `json:"full_name"`
	ProfilePicURL string `json:"profile_pic_url"`
}

func (s *Server) UpdateEmployeeProfile(c *gin.Context) {
	identity := currentIdentity(c)

	var req updateEmployeeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.employeeSvc.UpdateProfile(c.Request.Context(), employeedomain.UpdateProfileRequest{
		EmployeeID:    identity.ID,
		FullName:      req.FullName,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

func (s *Server) ResetEmployeePassword(c *gin.Context) {
	identity := currentIdentity(c)

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.employeeSvc.ResetPassword(c.Request.Context(), employeedomain.ResetPasswordRequest{
		EmployeeID:      identity.ID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

// scopedEmployee loads the :id employee and checks the caller may see it:
// companies see their own staff, employees see accounts in their company.
func (s *Server) scopedEmployee(c *gin.Context) (*employeedomain.EmployeeDetail, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	detail, err := s.employeeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	identity := currentIdentity(c)
	switch {
	case identity.IsCompany() && detail.CompanyID != identity.ID:
		return nil, ErrForbidden
	case identity.IsEmployee() && detail.CompanyID != identity.CompanyID:
		return nil, ErrForbidden
	}
	return detail, nil
}
