package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	taskdomain "github.com/staffdeck/staffdeck/internal/task/domain"
)

type createTaskRequest struct {
	BranchID    string `json:"branch_id"`
	EmployeeID  string `json:"employee_id"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func (s *Server) CreateTask(c *gin.Context) {
	identity := currentIdentity(c)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	branchID, err := parseOptionalID(req.BranchID)
	if err != nil {
		AbortWithError(c, newValidationError("branch_id", "invalid_id", "invalid branch id"))
		return
	}
	employeeID, err := parseOptionalID(req.EmployeeID)
	if err != nil {
		AbortWithError(c, newValidationError("employee_id", "invalid_id", "invalid employee id"))
		return
	}

	var dueDate *time.Time
	if due, err := parseOptionalDate(req.DueDate); err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_date", "invalid due date"))
		return
	} else if !due.IsZero() {
		dueDate = &due
	}

	var companyID snowflake.ID
	switch {
	case identity.IsAdmin():
		companyID, err = parseOptionalID(c.Query("company_id"))
		if err != nil || companyID == 0 {
			AbortWithError(c, newValidationError("company_id", "invalid_id", "company id is required"))
			return
		}
	case identity.IsCompany():
		companyID = identity.ID
	default:
		companyID = identity.CompanyID
	}

	created, err := s.taskSvc.Create(c.Request.Context(), taskdomain.CreateTaskRequest{
		Actor:       identity,
		CompanyID:   companyID,
		BranchID:    branchID,
		EmployeeID:  employeeID,
		Description: req.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}

func (s *Server) ListCompanyTasks(c *gin.Context) {
	identity := currentIdentity(c)

	tasks, err := s.taskSvc.ListForCompany(c.Request.Context(), identity.ID, parseStatusFilter(c.Query("status")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

func (s *Server) ListEmployeeTasks(c *gin.Context) {
	identity := currentIdentity(c)

	tasks, err := s.taskSvc.ListForEmployee(c.Request.Context(), identity.ID, parseStatusFilter(c.Query("status")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

func (s *Server) CompleteTask(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	identity := currentIdentity(c)
	outcome, err := s.taskSvc.Complete(c.Request.Context(), id, identity.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"outcome": outcome}})
}

func (s *Server) TaskProgress(c *gin.Context) {
	task, err := s.scopedTask(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	progress, err := s.taskSvc.BranchProgress(c.Request.Context(), task.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": progress})
}

func (s *Server) ReopenTask(c *gin.Context) {
	task, err := s.scopedTask(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	identity := currentIdentity(c)
	if identity.IsEmployee() {
		AbortWithError(c, ErrForbidden)
		return
	}

	if err := s.taskSvc.Reopen(c.Request.Context(), task.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"reopened": true}})
}

func (s *Server) DeleteTask(c *gin.Context) {
	task, err := s.scopedTask(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.taskSvc.Delete(c.Request.Context(), task.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// scopedTask loads the :id task and checks company callers own it and
// employee callers share its company.
func (s *Server) scopedTask(c *gin.Context) (*taskdomain.Task, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	task, err := s.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	identity := currentIdentity(c)
	switch {
	case identity.IsCompany() && task.CompanyID != identity.ID:
		return nil, ErrForbidden
	case identity.IsEmployee() && task.CompanyID != identity.CompanyID:
		return nil, ErrForbidden
	}
	return task, nil
}
