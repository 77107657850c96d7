package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/staffdeck/staffdeck/internal/auth"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
	"github.com/staffdeck/staffdeck/internal/branch"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	"github.com/staffdeck/staffdeck/internal/company"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	"github.com/staffdeck/staffdeck/internal/config"
	"github.com/staffdeck/staffdeck/internal/dashboard"
	"github.com/staffdeck/staffdeck/internal/employee"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/message"
	messagedomain "github.com/staffdeck/staffdeck/internal/message/domain"
	"github.com/staffdeck/staffdeck/internal/observability"
	obslogger "github.com/staffdeck/staffdeck/internal/observability/logger"
	obsmetrics "github.com/staffdeck/staffdeck/internal/observability/metrics"
	"github.com/staffdeck/staffdeck/internal/providers"
	"github.com/staffdeck/staffdeck/internal/providers/pdf"
	"github.com/staffdeck/staffdeck/internal/report"
	reportdomain "github.com/staffdeck/staffdeck/internal/report/domain"
	"github.com/staffdeck/staffdeck/internal/role"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"github.com/staffdeck/staffdeck/internal/task"
	taskdomain "github.com/staffdeck/staffdeck/internal/task/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(NewEngine),
	auth.Module,
	company.Module,
	branch.Module,
	role.Module,
	employee.Module,
	task.Module,
	report.Module,
	message.Module,
	dashboard.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, registry *prometheus.Registry, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	authSvc      authdomain.Service
	companySvc   companydomain.Service
	branchSvc    branchdomain.Service
	roleSvc      roledomain.Service
	employeeSvc  employeedomain.Service
	taskSvc      taskdomain.Service
	reportSvc    reportdomain.Service
	messageSvc   messagedomain.Service
	dashboardSvc dashboard.Service
	pdfProvider  pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	AuthSvc      authdomain.Service
	CompanySvc   companydomain.Service
	BranchSvc    branchdomain.Service
	RoleSvc      roledomain.Service
	EmployeeSvc  employeedomain.Service
	TaskSvc      taskdomain.Service
	ReportSvc    reportdomain.Service
	MessageSvc   messagedomain.Service
	DashboardSvc dashboard.Service
	PDFProvider  pdf.Provider
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authSvc:      p.AuthSvc,
		companySvc:   p.CompanySvc,
		branchSvc:    p.BranchSvc,
		roleSvc:      p.RoleSvc,
		employeeSvc:  p.EmployeeSvc,
		taskSvc:      p.TaskSvc,
		reportSvc:    p.ReportSvc,
		messageSvc:   p.MessageSvc,
		dashboardSvc: p.DashboardSvc,
		pdfProvider:  p.PDFProvider,
	}

	s.registerAuthRoutes()
	s.registerAdminRoutes()
	s.registerCompanyRoutes()
	s.registerEmployeeRoutes()
	s.registerSharedRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AuthRequired(), s.RequireKind(authdomain.KindAdmin))

	admin.GET("/dashboard", s.AdminDashboard)

	admin.POST("/companies", s.CreateCompany)
	admin.GET("/companies", s.ListCompanies)
	admin.GET("/companies/:id", s.GetCompany)
	admin.PATCH("/companies/:id/status", s.SetCompanyStatus)

	admin.GET("/branches", s.ListAllBranches)

	admin.GET("/messages", s.AdminInbox)
	admin.POST("/messages", s.AdminSendMessage)
	admin.POST("/messages/:id/read", s.MarkMessageRead)

	admin.GET("/reports", s.ListAllReports)
	admin.GET("/reports/export", s.ExportAllReports)
}

func (s *Server) registerCompanyRoutes() {
	co := s.engine.Group("/company", s.AuthRequired(), s.RequireKind(authdomain.KindCompany))

	co.GET("/dashboard", s.CompanyDashboard)
	co.PATCH("/profile", s.UpdateCompanyProfile)
	co.POST("/password", s.ResetCompanyPassword)

	co.POST("/branches", s.CreateBranch)
	co.GET("/branches", s.ListCompanyBranches)
	co.GET("/branches/parent-candidates", s.ListParentCandidates)
	co.GET("/branches/:id", s.GetBranch)
	co.PATCH("/branches/:id", s.UpdateBranch)
	co.PATCH("/branches/:id/status", s.SetBranchStatus)
	co.GET("/branches/:id/employees", s.ListBranchEmployees)
	co.GET("/branches/:id/sub-branches", s.ListSubBranches)

	co.GET("/roles", s.ListRoles)
	co.POST("/roles", s.CreateRole)
	co.PATCH("/roles/:id", s.UpdateRole)
	co.DELETE("/roles/:id", s.DeleteRole)

	co.GET("/tasks", s.ListCompanyTasks)
	co.DELETE("/tasks/:id", s.DeleteTask)

	co.GET("/messages", s.CompanyThread)
	co.POST("/messages", s.CompanySendMessage)

	co.GET("/reports", s.ListCompanyReports)
	co.GET("/reports/export", s.ExportCompanyReports)
}

func (s *Server) registerEmployeeRoutes() {
	em := s.engine.Group("/employee", s.AuthRequired(), s.RequireKind(authdomain.KindEmployee))

	em.GET("/dashboard", s.EmployeeDashboard)
	em.PATCH("/profile", s.UpdateEmployeeProfile)
	em.POST("/password", s.ResetEmployeePassword)

	em.GET("/tasks", s.ListEmployeeTasks)
	em.POST("/tasks/:id/complete", s.CompleteTask)

	em.POST("/reports", s.SubmitReport)
}

// Shared routes are reachable by more than one identity kind; the handlers
// scope access themselves.
func (s *Server) registerSharedRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees", s.ListEmployees)
	api.GET("/employees/:id", s.GetEmployee)
	api.PATCH("/employees/:id/status", s.SetEmployeeStatus)
	api.PATCH("/employees/:id/role", s.UpdateEmployeeRole)
	api.PATCH("/employees/:id/branch", s.UpdateEmployeeBranch)
	api.GET("/employees/:id/reports", s.ListEmployeeReports)
	api.GET("/employees/:id/reports/export", s.ExportEmployeeReports)

	api.POST("/tasks", s.CreateTask)
	api.GET("/tasks/:id/progress", s.TaskProgress)
	api.POST("/tasks/:id/reopen", s.ReopenTask)

	api.GET("/branches/:id/reports", s.ListBranchReports)
	api.GET("/branches/:id/reports/export", s.ExportBranchReports)
}
