package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
)

type createBranchRequest struct {
	BranchName     string `json:"branch_name"`
	Location       string `json:"location"`
	BranchHead     string `json:"branch_head"`
	ParentBranchID string `json:"parent_branch_id"`
	IsMainBranch   bool   `json:"is_main_branch"`
}

func (s *Server) CreateBranch(c *gin.Context) {
	identity := currentIdentity(c)

	var req createBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	parentID, err := parseOptionalID(req.ParentBranchID)
	if err != nil {
		AbortWithError(c, newValidationError("parent_branch_id", "invalid_id", "invalid parent branch id"))
		return
	}

	create := branchdomain.CreateBranchRequest{
		CompanyID:      identity.ID,
		ParentBranchID: parentID,
		BranchName:     req.BranchName,
		Location:       req.Location,
		BranchHead:     req.BranchHead,
	}

	var branch *branchdomain.Branch
	if req.IsMainBranch {
		branch, err = s.branchSvc.CreateMain(c.Request.Context(), create)
	} else {
		branch, err = s.branchSvc.CreateSub(c.Request.Context(), create)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branch})
}

func (s *Server) ListCompanyBranches(c *gin.Context) {
	identity := currentIdentity(c)

	branches, err := s.branchSvc.ListByCompany(c.Request.Context(), identity.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branches})
}

func (s *Server) ListAllBranches(c *gin.Context) {
	branches, err := s.branchSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branches})
}

func (s *Server) GetBranch(c *gin.Context) {
	branch, err := s.companyBranch(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branch})
}

type updateBranchRequest struct {
	BranchName     string `json:"branch_name"`
	Location       string `json:"location"`
	BranchHead     string `json:"branch_head"`
	ParentBranchID string `json:"parent_branch_id"`
}

func (s *Server) UpdateBranch(c *gin.Context) {
	branch, err := s.companyBranch(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	parentID, err := parseOptionalID(req.ParentBranchID)
	if err != nil {
		AbortWithError(c, newValidationError("parent_branch_id", "invalid_id", "invalid parent branch id"))
		return
	}

	err = s.branchSvc.Update(c.Request.Context(), branchdomain.UpdateBranchRequest{
		BranchID:       branch.ID,
		BranchName:     req.BranchName,
		Location:       req.Location,
		BranchHead:     req.BranchHead,
		ParentBranchID: parentID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": true}})
}

func (s *Server) SetBranchStatus(c *gin.Context) {
	branch, err := s.companyBranch(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.branchSvc.SetStatus(c.Request.Context(), branch.ID, *req.IsActive); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": branch.ID, "is_active": *req.IsActive}})
}

func (s *Server) ListBranchEmployees(c *gin.Context) {
	branch, err := s.companyBranch(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	employees, err := s.branchSvc.Employees(c.Request.Context(), branch.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": employees})
}

func (s *Server) ListParentCandidates(c *gin.Context) {
	identity := currentIdentity(c)

	excludeID, err := parseOptionalID(c.Query("exclude"))
	if err != nil {
		AbortWithError(c, newValidationError("exclude", "invalid_id", "invalid branch id"))
		return
	}

	branches, err := s.branchSvc.ParentCandidates(c.Request.Context(), identity.ID, excludeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branches})
}

func (s *Server) ListSubBranches(c *gin.Context) {
	branch, err := s.companyBranch(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	branches, err := s.branchSvc.SubBranches(c.Request.Context(), branch.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branches})
}

// companyBranch loads the :id branch and checks it belongs to the calling
// company.
func (s *Server) companyBranch(c *gin.Context) (*branchdomain.Branch, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	branch, err := s.branchSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	identity := currentIdentity(c)
	if identity.IsCompany() && branch.CompanyID != identity.ID {
		return nil, ErrForbidden
	}
	return branch, nil
}
