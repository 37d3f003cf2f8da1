package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/balance"
	"github.com/ruangkerja/leave-management/internal/employee"
	"github.com/ruangkerja/leave-management/internal/leave"
	"github.com/ruangkerja/leave-management/internal/leavetype"
	"github.com/ruangkerja/leave-management/internal/report"
	"github.com/ruangkerja/leave-management/internal/transport/middleware"
	"github.com/ruangkerja/leave-management/internal/transport/swagger"
)

type Handlers struct {
	Auth      *auth.Handler
	LeaveType *leavetype.Handler
	Leave     *leave.Handler
	Balance   *balance.Handler
	Report    *report.Handler
	Employee  *employee.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, rbac *auth.RBACAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI document and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if handlers.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", handlers.Auth.Login)
				sr.Post("/refresh", handlers.Auth.RefreshToken)
				sr.Post("/logout", handlers.Auth.Logout)
			})
		}

		// leave types are readable without authentication
		if handlers.LeaveType != nil {
			r.Get("/leave-types", handlers.LeaveType.GetLeaveTypes)
		}

		if handlers.Auth == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			if handlers.LeaveType != nil {
				pr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageLeaveTypes())
					mr.Post("/leave-types", handlers.LeaveType.CreateLeaveType)
					mr.Patch("/leave-types/{id}", handlers.LeaveType.UpdateLeaveType)
					mr.Delete("/leave-types/{id}", handlers.LeaveType.DeleteLeaveType)
				})
			}

			if handlers.Leave != nil {
				pr.Route("/leave-requests", func(lr chi.Router) {
					lr.Post("/", handlers.Leave.SubmitLeave)
					lr.Get("/", handlers.Leave.GetMyLeaveRequests)
					lr.Get("/{id}", handlers.Leave.GetLeaveRequest)
					lr.Post("/{id}/cancel", handlers.Leave.CancelLeave)

					lr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireViewAllLeave())
						rr.Get("/pending", handlers.Leave.GetPendingLeaveRequests)
					})

					lr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireApproveLeave())
						rr.Patch("/{id}/approve", handlers.Leave.ApproveLeave)
					})

					lr.Group(func(rr chi.Router) {
						rr.Use(rbac.RequireRejectLeave())
						rr.Patch("/{id}/reject", handlers.Leave.RejectLeave)
					})
				})
			}

			if handlers.Balance != nil {
				pr.Get("/balances/me", handlers.Balance.GetMyBalance)

				pr.Group(func(br chi.Router) {
					br.Use(rbac.RequireManageBalances())
					br.Get("/balances/{employeeID}", handlers.Balance.GetEmployeeBalance)
					br.Put("/balances/{employeeID}", handlers.Balance.UpdateEmployeeBalance)
				})
			}

			if handlers.Report != nil {
				pr.Get("/reports/statistics", handlers.Report.GetLeaveStatistics)

				pr.Group(func(rr chi.Router) {
					rr.Use(rbac.RequireViewAllLeave())
					rr.Get("/reports/leave-requests", handlers.Report.GetAllLeaveRequests)
					rr.Get("/reports/leave-requests/export", handlers.Report.ExportLeaveRequests)
				})
			}

			if handlers.Employee != nil {
				pr.Group(func(er chi.Router) {
					er.Use(rbac.RequireHR())
					er.Get("/employees", handlers.Employee.GetEmployees)
					er.Get("/employees/{id}", handlers.Employee.GetEmployee)
				})
			}
		})
	})
}
