package service

import "errors"

// 业务哨兵错误，由各 handler 层映射为响应码与 i18n 文案
var (
	// 优惠券
	ErrCouponNotFound          = errors.New("coupon not found or inactive")
	ErrCouponMinAmount         = errors.New("coupon minimum order amount not met")
	ErrCouponSingleItemOnly    = errors.New("coupon applies to a single item only")
	ErrCouponUsageLimit        = errors.New("coupon total usage limit reached")
	ErrCouponPerUserLimit      = errors.New("coupon per-user usage limit reached")
	ErrCouponNoEligibleItems   = errors.New("no eligible items for coupon")
	ErrCouponWordCountExceeded = errors.New("all items exceed coupon word count limit")
	ErrCouponTypeInvalid       = errors.New("unknown coupon discount type")
	ErrCouponProductRequired   = errors.New("required product missing from cart")
	ErrCouponMinQuantity       = errors.New("coupon minimum quantity not met")
	ErrCouponCodeTaken         = errors.New("coupon code already exists")
	ErrCouponCodeRequired      = errors.New("coupon code required")
	ErrCouponValueInvalid      = errors.New("coupon discount value out of range")
	ErrCartEmpty               = errors.New("cart is empty")

	// 用户与认证
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrUserStatusInvalid  = errors.New("unknown user status")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrCaptchaInvalid     = errors.New("captcha verification failed")
	ErrRateLimited        = errors.New("too many attempts, try again later")

	// 角色
	ErrRoleNotFound     = errors.New("role not found")
	ErrRoleNameRequired = errors.New("role name required")
	ErrRoleNameTaken    = errors.New("role name already exists")
	ErrRoleInUse        = errors.New("role is assigned to users")

	// 目录与内容
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is not available")
	ErrSlugTaken        = errors.New("slug already exists")
	ErrSlugRequired     = errors.New("slug required")
	ErrPostNotFound     = errors.New("post not found")
	ErrPostTypeInvalid  = errors.New("unknown post type")

	// 购物车与订单
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrQuantityInvalid   = errors.New("quantity must be positive")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderStateInvalid = errors.New("order state does not allow this operation")

	// 支付
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotConfigured = errors.New("payment provider not configured")
	ErrWebhookSignature     = errors.New("webhook signature verification failed")

	// 工单
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketInputInvalid = errors.New("ticket subject and message required")
	ErrTicketClosed       = errors.New("ticket is closed")

	// 邮件
	ErrEmailDisabled       = errors.New("email sending is disabled")
	ErrEmailNotConfigured  = errors.New("email service not configured")
	ErrEmailAddressInvalid = errors.New("invalid email address")
)
