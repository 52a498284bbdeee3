package models

import (
	"strings"

	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("is_admin = ?", true).Count(&count)

	// 已存在管理员时确保默认账号仍具备管理员标记
	if count > 0 {
		if err := DB.Model(&User{}).Where("email = ?", "admin@wordmart.local").Update("is_admin", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_failed", "error", err)
		}
		return nil
	}

	if email == "" {
		email = "admin@wordmart.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		DisplayName:  "Administrator",
		Status:       constants.UserStatusActive,
		IsAdmin:      true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", admin.Email)
		logger.Warnw("default_admin_password_change_required", "email", admin.Email)
	} else {
		logger.Warnw("default_admin_created", "email", admin.Email, "password_hidden", true)
	}

	return nil
}
