package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
)

func (s *Server) ListRoles(c *gin.Context) {
	identity := currentIdentity(c)

	roles, err := s.roleSvc.List(c.Request.Context(), identity.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles})
}

type roleRequest struct {
	RoleName  string `json:"role_name"`
	RoleLevel int    `json:"role_level"`
}

func (s *Server) CreateRole(c *gin.Context) {
	identity := currentIdentity(c)

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	role, err := s.roleSvc.Create(c.Request.Context(), roledomain.CreateRoleRequest{
		CompanyID: identity.ID,
		RoleName:  req.RoleName,
		RoleLevel: req.RoleLevel,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": role})
}

func (s *Server) UpdateRole(c *gin.Context) {
	role, err := s.companyRole(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.roleSvc.Update(c.Request.Context(), roledomain.UpdateRoleRequest{
		RoleID:    role.ID,
		RoleName:  req.RoleName,
		RoleLevel: req.RoleLevel,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

type deleteRoleRequest struct {
	ReplacementRoleID string `json:"replacement_role_id"`
}

func (s *Server) DeleteRole(c *gin.Context) {
	role, err := s.companyRole(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req deleteRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	replacementID, err := parseOptionalID(req.ReplacementRoleID)
	if err != nil {
		AbortWithError(c, newValidationError("replacement_role_id", "invalid_id", "invalid replacement role id"))
		return
	}

	if err := s.roleSvc.Delete(c.Request.Context(), role.ID, replacementID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) companyRole(c *gin.Context) (*roledomain.Role, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	role, err := s.roleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	identity := currentIdentity(c)
	if identity.IsCompany() && role.CompanyID != identity.ID {
		return nil, ErrForbidden
	}
	return role, nil
}
