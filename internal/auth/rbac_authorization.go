package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization builds route middleware around the permission checker.
// Handlers behind these guards can still re-check in the service layer; the
// middleware exists to fail fast with a consistent response.
type RBACAuthorization struct {
	checker PermissionChecker
	logger  *slog.Logger
}

func NewRBACAuthorization(checker PermissionChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		checker: checker,
		logger:  logger,
	}
}

func (ra *RBACAuthorization) require(name string, allowed func(permissions []string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context", "check", name)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(user.Permissions) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"check", name,
					"user_permissions", user.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireApproveLeave() func(http.Handler) http.Handler {
	return ra.require("approve_leave", ra.checker.CanApproveLeave)
}

func (ra *RBACAuthorization) RequireRejectLeave() func(http.Handler) http.Handler {
	return ra.require("reject_leave", ra.checker.CanRejectLeave)
}

func (ra *RBACAuthorization) RequireManageBalances() func(http.Handler) http.Handler {
	return ra.require("manage_balances", ra.checker.CanManageBalances)
}

func (ra *RBACAuthorization) RequireManageLeaveTypes() func(http.Handler) http.Handler {
	return ra.require("manage_leave_types", ra.checker.CanManageLeaveTypes)
}

func (ra *RBACAuthorization) RequireViewAllLeave() func(http.Handler) http.Handler {
	return ra.require("view_all_leave", ra.checker.CanViewAllLeave)
}

func (ra *RBACAuthorization) RequireHR() func(http.Handler) http.Handler {
	return ra.require("hr", ra.checker.IsHR)
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require("admin", ra.checker.IsAdmin)
}
