package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	reportdomain "github.com/staffdeck/staffdeck/internal/report/domain"
)

type submitReportRequest struct {
	ReportDate string `json:"report_date"`
	ReportText string `json:"report_text"`
}

func (s *Server) SubmitReport(c *gin.Context) {
	identity := currentIdentity(c)

	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := parseOptionalDate(req.ReportDate)
	if err != nil {
		AbortWithError(c, newValidationError("report_date", "invalid_date", "invalid report date"))
		return
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	result, err := s.reportSvc.Submit(c.Request.Context(), identity.ID, date, req.ReportText)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"result": result}})
}

func (s *Server) ListEmployeeReports(c *gin.Context) {
	employeeID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	dateRange, err := s.resolveDateRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	identity := currentIdentity(c)
	reports, err := s.reportSvc.ListForEmployee(c.Request.Context(), identity, employeeID, dateRange)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (s *Server) ListBranchReports(c *gin.Context) {
	branch, err := s.branchForReports(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	dateRange, err := s.resolveDateRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	roleLevel, err := parseOptionalLevel(c.Query("role_level"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reports, err := s.reportSvc.ListForBranch(c.Request.Context(), branch.ID, dateRange, roleLevel)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (s *Server) ListCompanyReports(c *gin.Context) {
	filter, err := s.companyReportFilter(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reports, err := s.reportSvc.ListForCompany(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (s *Server) ListAllReports(c *gin.Context) {
	dateRange, err := s.resolveDateRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reports, err := s.reportSvc.ListAll(c.Request.Context(), dateRange, strings.TrimSpace(c.Query("name")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

func (s *Server) companyReportFilter(c *gin.Context) (reportdomain.ListFilter, error) {
	identity := currentIdentity(c)

	dateRange, err := s.resolveDateRange(c)
	if err != nil {
		return reportdomain.ListFilter{}, err
	}

	branchID, err := parseOptionalID(c.Query("branch_id"))
	if err != nil {
		return reportdomain.ListFilter{}, newValidationError("branch_id", "invalid_id", "invalid branch id")
	}

	roleLevel, err := parseOptionalLevel(c.Query("role_level"))
	if err != nil {
		return reportdomain.ListFilter{}, err
	}

	return reportdomain.ListFilter{
		Range:        dateRange,
		CompanyID:    identity.ID,
		BranchID:     branchID,
		RoleLevel:    roleLevel,
		EmployeeName: strings.TrimSpace(c.Query("name")),
	}, nil
}

// branchForReports loads the :id branch and checks report visibility:
// companies see their own branches, employee callers must be management
// of the same company.
func (s *Server) branchForReports(c *gin.Context) (*branchdomain.Branch, error) {
	branch, err := s.companyBranch(c)
	if err != nil {
		return nil, err
	}

	identity := currentIdentity(c)
	if identity.IsEmployee() {
		if branch.CompanyID != identity.CompanyID || !policy.IsManagement(identity.RoleLevel) {
			return nil, ErrForbidden
		}
	}
	return branch, nil
}

func parseOptionalLevel(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newValidationError("role_level", "invalid_level", "invalid role level")
	}
	return level, nil
}
