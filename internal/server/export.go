package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/staffdeck/staffdeck/internal/providers/pdf"
	reportdomain "github.com/staffdeck/staffdeck/internal/report/domain"
)

const pdfContentType = "application/pdf"

func (s *Server) ExportEmployeeReports(c *gin.Context) {
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

	detail, err := s.employeeSvc.GetByID(c.Request.Context(), employeeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := make([]pdf.ReportRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, pdf.ReportRow{
			Date:       r.ReportDate,
			FullName:   detail.FullName,
			RoleName:   detail.RoleName,
			BranchName: detail.BranchName,
			Text:       r.ReportText,
		})
	}

	doc, err := s.pdfProvider.EmployeeReport(c.Request.Context(), pdf.ReportData{
		Heading:  detail.FullName,
		Subtitle: fmt.Sprintf("%s, %s", detail.RoleName, detail.BranchName),
		From:     dateRange.From,
		To:       dateRange.To,
		Rows:     rows,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.streamPDF(c, "employee-reports.pdf", doc)
}

func (s *Server) ExportBranchReports(c *gin.Context) {
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

	data := pdf.ReportData{
		Heading: branch.BranchName,
		From:    dateRange.From,
		To:      dateRange.To,
		Rows:    reportRows(reports),
	}

	var doc io.Reader
	if roleLevel > 0 {
		doc, err = s.pdfProvider.RoleReport(c.Request.Context(), data)
	} else {
		doc, err = s.pdfProvider.BranchReport(c.Request.Context(), data)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.streamPDF(c, "branch-reports.pdf", doc)
}

func (s *Server) ExportCompanyReports(c *gin.Context) {
	identity := currentIdentity(c)

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

	doc, err := s.pdfProvider.CompanyReport(c.Request.Context(), pdf.ReportData{
		Heading: identity.FullName,
		From:    filter.Range.From,
		To:      filter.Range.To,
		Rows:    reportRows(reports),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.streamPDF(c, "company-reports.pdf", doc)
}

func (s *Server) ExportAllReports(c *gin.Context) {
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

	doc, err := s.pdfProvider.CompanyReport(c.Request.Context(), pdf.ReportData{
		Heading: "All Companies",
		From:    dateRange.From,
		To:      dateRange.To,
		Rows:    reportRows(reports),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.streamPDF(c, "all-reports.pdf", doc)
}

func reportRows(reports []reportdomain.ReportListItem) []pdf.ReportRow {
	rows := make([]pdf.ReportRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, pdf.ReportRow{
			Date:       r.ReportDate,
			FullName:   r.FullName,
			RoleName:   r.RoleName,
			BranchName: r.BranchName,
			Text:       r.ReportText,
		})
	}
	return rows
}

func (s *Server) streamPDF(c *gin.Context, filename string, doc io.Reader) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, doc); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, pdfContentType, buf.Bytes())
}
