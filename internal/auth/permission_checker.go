package auth

import "context"

type PermissionChecker interface {
	CanApproveLeave(userPermissions []string) bool
	CanRejectLeave(userPermissions []string) bool
	CanManageBalances(userPermissions []string) bool
	CanManageLeaveTypes(userPermissions []string) bool
	CanViewAllLeave(userPermissions []string) bool
	HasAnyPermission(userPermissions []string, requiredPermissions []string) bool
	IsHR(userPermissions []string) bool
	IsAdmin(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) HasPermission(ctx context.Context, userPermissions []string, permission string) (bool, error) {
	return c.HasAnyPermission(userPermissions, []string{permission}), nil
}

func (c *DefaultPermissionChecker) CanApproveLeaveCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanApproveLeave(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanRejectLeaveCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanRejectLeave(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageBalancesCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageBalances(userPermissions), nil
}

func (c *DefaultPermissionChecker) IsHRCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.IsHR(userPermissions), nil
}

func (c *DefaultPermissionChecker) IsAdminCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.IsAdmin(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanApproveLeave(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermApproveLeave, PermAdmin})
}

func (c *DefaultPermissionChecker) CanRejectLeave(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermRejectLeave, PermAdmin})
}

func (c *DefaultPermissionChecker) CanManageBalances(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermManageBalances, PermAdmin})
}

func (c *DefaultPermissionChecker) CanManageLeaveTypes(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermManageLeaveTypes, PermAdmin})
}

func (c *DefaultPermissionChecker) CanViewAllLeave(userPermissions []string) bool {
	hrPerms := []string{PermViewAllLeave, PermApproveLeave, PermRejectLeave, PermAdmin}
	return c.HasAnyPermission(userPermissions, hrPerms)
}

func (c *DefaultPermissionChecker) HasAnyPermission(userPermissions []string, requiredPermissions []string) bool {
	for _, userPerm := range userPermissions {
		for _, requiredPerm := range requiredPermissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) IsHR(userPermissions []string) bool {
	hrPerms := []string{PermApproveLeave, PermRejectLeave, PermManageBalances, PermAdmin}
	return c.HasAnyPermission(userPermissions, hrPerms)
}

func (c *DefaultPermissionChecker) IsAdmin(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{PermAdmin})
}
