package authz

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewRoleRepository(db),
		NewMemoryPermissionCache(time.Minute),
	)
	return svc, db
}

func createRole(t *testing.T, db *gorm.DB, name string, active bool, perms models.ModulePermissionList) *models.Role {
	t.Helper()
	role := models.Role{Name: name, IsActive: active, Permissions: perms}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	return &role
}

func createUser(t *testing.T, db *gorm.DB, email string, admin bool, roleID *uint) *models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Status:       constants.UserStatusActive,
		IsAdmin:      admin,
		RoleID:       roleID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func TestCheckPermissionAdminBypass(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	admin := createUser(t, db, "admin@test.local", true, nil)

	if err := svc.CheckPermission(admin.ID, constants.ModuleCoupons, constants.ActionDelete); err != nil {
		t.Fatalf("expected admin allow, got: %v", err)
	}
}

func TestCheckPermissionUserNotFound(t *testing.T) {
	svc, _ := setupAuthzServiceTest(t)
	if err := svc.CheckPermission(9999, constants.ModulePosts, constants.ActionView); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestCheckPermissionRoleGrants(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	role := createRole(t, db, "editor", true, models.ModulePermissionList{
		{Module: constants.ModulePosts, Actions: []int{constants.ActionCreate, constants.ActionView, constants.ActionUpdate}},
	})
	user := createUser(t, db, "editor@test.local", false, &role.ID)

	if err := svc.CheckPermission(user.ID, constants.ModulePosts, constants.ActionUpdate); err != nil {
		t.Fatalf("expected allow, got: %v", err)
	}
	if err := svc.CheckPermission(user.ID, constants.ModulePosts, constants.ActionDelete); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected deny for missing action, got: %v", err)
	}
	if err := svc.CheckPermission(user.ID, constants.ModuleCoupons, constants.ActionView); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected deny for missing module, got: %v", err)
	}
}

func TestCheckPermissionNoRoleDenied(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	user := createUser(t, db, "norole@test.local", false, nil)

	if err := svc.CheckPermission(user.ID, constants.ModuleOrders, constants.ActionView); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected deny without role, got: %v", err)
	}
}

func TestCheckPermissionInactiveRoleDenied(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	role := createRole(t, db, "dormant", false, models.ModulePermissionList{
		{Module: constants.ModuleOrders, Actions: []int{constants.ActionView}},
	})
	user := createUser(t, db, "dormant@test.local", false, &role.ID)

	if err := svc.CheckPermission(user.ID, constants.ModuleOrders, constants.ActionView); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected deny for inactive role, got: %v", err)
	}
}

func TestCheckPermissionDisabledUserDenied(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	role := createRole(t, db, "staff", true, models.ModulePermissionList{
		{Module: constants.ModuleOrders, Actions: []int{constants.ActionView}},
	})
	user := createUser(t, db, "disabled@test.local", false, &role.ID)
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if err := svc.CheckPermission(user.ID, constants.ModuleOrders, constants.ActionView); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected deny for disabled user, got: %v", err)
	}
}

func TestCheckPermissionTicketCreateForRolelessUser(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	user := createUser(t, db, "customer@test.local", false, nil)

	if err := svc.CheckPermission(user.ID, constants.ModuleTickets, constants.ActionCreate); err != nil {
		t.Fatalf("expected ticket create allow for roleless user, got: %v", err)
	}
	if err := svc.CheckPermission(user.ID, constants.ModuleTickets, constants.ActionDelete); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ticket delete deny, got: %v", err)
	}
}

func TestCheckPermissionCacheInvalidation(t *testing.T) {
	svc, db := setupAuthzServiceTest(t)
	role := createRole(t, db, "support", true, models.ModulePermissionList{
		{Module: constants.ModuleTickets, Actions: []int{constants.ActionView}},
	})
	user := createUser(t, db, "support@test.local", false, &role.ID)

	if err := svc.CheckPermission(user.ID, constants.ModuleTickets, constants.ActionView); err != nil {
		t.Fatalf("expected allow, got: %v", err)
	}

	// 直接改库扩展权限，缓存未失效前仍按旧列表判定
	role.Permissions = models.ModulePermissionList{
		{Module: constants.ModuleTickets, Actions: []int{constants.ActionView, constants.ActionUpdate}},
	}
	if err := db.Save(role).Error; err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	if err := svc.CheckPermission(user.ID, constants.ModuleTickets, constants.ActionUpdate); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected stale cache deny, got: %v", err)
	}

	svc.InvalidateRole(role.ID)
	if err := svc.CheckPermission(user.ID, constants.ModuleTickets, constants.ActionUpdate); err != nil {
		t.Fatalf("expected allow after invalidation, got: %v", err)
	}
}
