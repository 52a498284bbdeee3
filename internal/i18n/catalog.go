package i18n

// catalog 文案目录（按语言 -> key -> 文案）
var catalog = map[string]map[string]string{
	"en-US": {
		"error.bad_request":  "Invalid request",
		"error.unauthorized": "Authentication required",
		"error.forbidden":    "Access denied",
		"error.not_found":    "Resource not found",
		"error.internal":     "Internal server error",

		"error.auth_header_missing": "Authorization header missing",
		"error.auth_header_invalid": "Authorization header invalid",
		"error.token_invalid":       "Invalid or expired token",
		"error.token_revoked":       "Token has been revoked",
		"error.jwt_secret_missing":  "Server auth is not configured",

		"error.user_not_found":         "User not found",
		"error.email_exists":           "Email is already registered",
		"error.invalid_credentials":    "Invalid email or password",
		"error.user_disabled":          "Account is disabled",
		"error.password_policy":        "Password does not meet the security policy",
		"error.captcha_required":       "Captcha is required",
		"error.captcha_invalid":        "Captcha verification failed",
		"error.login_too_many":         "Too many login attempts, please try again in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",

		"error.cart_empty":            "Cart cannot be empty",
		"error.cart_item_invalid":     "Invalid cart item",
		"error.product_not_found":     "Product not found",
		"error.product_not_available": "Product is not available",
		"error.category_not_found":    "Category not found",
		"error.category_in_use":       "Category still has products",
		"error.post_not_found":        "Post not found",
		"error.ticket_not_found":      "Ticket not found",

		"error.coupon_invalid":             "Invalid coupon",
		"error.coupon_not_found":           "Invalid or expired coupon",
		"error.coupon_type_invalid":        "Invalid discount type",
		"error.coupon_min_amount":          "Minimum order amount not met",
		"error.coupon_min_quantity":        "Minimum item quantity for this coupon not met",
		"error.coupon_product_required":    "Required product for this coupon is not in the cart",
		"error.coupon_no_eligible_items":   "No items qualify for this coupon",
		"error.coupon_word_count_exceeded": "No items qualify: word count exceeds the coupon limit",
		"error.coupon_single_item_only":    "This coupon applies to single-item purchases only",
		"error.coupon_usage_limit":         "Coupon has reached its total usage limit",
		"error.coupon_per_user_limit":      "You have reached the usage limit for this coupon",
		"error.coupon_exists":              "Coupon code already exists",

		"error.order_not_found":      "Order not found",
		"error.order_status_invalid": "Order status does not allow this operation",
		"error.order_create_failed":  "Failed to create order",

		"error.payment_invalid":           "Invalid payment request",
		"error.payment_gateway_failed":    "Payment gateway request failed",
		"error.payment_signature_invalid": "Payment signature verification failed",
		"error.payment_not_found":         "Payment not found",

		"error.role_not_found": "Role not found",
		"error.role_invalid":   "Invalid role configuration",
		"error.role_exists":    "Role name already exists",
		"error.role_in_use":    "Role is still assigned to users",

		"error.coupon_code_required":   "Coupon code is required",
		"error.coupon_value_invalid":   "Invalid discount value",
		"error.role_name_required":     "Role name is required",
		"error.slug_required":          "Slug is required",
		"error.slug_exists":            "Slug already exists",
		"error.post_type_invalid":      "Invalid post type",
		"error.ticket_input_invalid":   "Ticket subject and message are required",
		"error.ticket_closed":          "Ticket is closed",
		"error.user_status_invalid":    "Invalid user status",
		"error.payment_not_configured": "Payment provider is not configured",

		"order.status.pending_payment": "Pending payment",
		"order.status.paid":            "Paid",
		"order.status.completed":       "Completed",
		"order.status.canceled":        "Canceled",

		"email.order_status.subject": "Order update: %s",
		"email.order_status.body":    "Order %s is now %s.\nAmount: %s %s",
	},
	"zh-CN": {
		"error.bad_request":  "请求无效",
		"error.unauthorized": "请先登录",
		"error.forbidden":    "无权访问",
		"error.not_found":    "资源不存在",
		"error.internal":     "服务器内部错误",

		"error.auth_header_missing": "缺少认证信息",
		"error.auth_header_invalid": "认证信息格式错误",
		"error.token_invalid":       "登录凭证无效或已过期",
		"error.token_revoked":       "登录凭证已失效",
		"error.jwt_secret_missing":  "服务端认证未配置",

		"error.user_not_found":         "用户不存在",
		"error.email_exists":           "邮箱已被注册",
		"error.invalid_credentials":    "邮箱或密码错误",
		"error.user_disabled":          "账号已被禁用",
		"error.password_policy":        "密码不符合安全策略",
		"error.captcha_required":       "请输入验证码",
		"error.captcha_invalid":        "验证码错误",
		"error.login_too_many":         "登录尝试过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用",

		"error.cart_empty":            "购物车不能为空",
		"error.cart_item_invalid":     "购物车条目无效",
		"error.product_not_found":     "商品不存在",
		"error.product_not_available": "商品已下架",
		"error.category_not_found":    "分类不存在",
		"error.category_in_use":       "分类下仍有商品",
		"error.post_not_found":        "文章不存在",
		"error.ticket_not_found":      "工单不存在",

		"error.coupon_invalid":             "优惠券无效",
		"error.coupon_not_found":           "优惠券无效或已过期",
		"error.coupon_type_invalid":        "不支持的优惠类型",
		"error.coupon_min_amount":          "未达到最低消费金额",
		"error.coupon_min_quantity":        "未达到优惠券要求的最低数量",
		"error.coupon_product_required":    "购物车中缺少该优惠券指定的商品",
		"error.coupon_no_eligible_items":   "没有符合该优惠券条件的商品",
		"error.coupon_word_count_exceeded": "没有符合条件的商品：字数超出优惠券限制",
		"error.coupon_single_item_only":    "该优惠券仅适用于单件购买",
		"error.coupon_usage_limit":         "优惠券已达到总使用上限",
		"error.coupon_per_user_limit":      "您已达到该优惠券的使用上限",
		"error.coupon_exists":              "优惠码已存在",

		"error.order_not_found":      "订单不存在",
		"error.order_status_invalid": "订单状态不允许该操作",
		"error.order_create_failed":  "创建订单失败",

		"error.payment_invalid":           "支付请求无效",
		"error.payment_gateway_failed":    "支付网关请求失败",
		"error.payment_signature_invalid": "支付签名校验失败",
		"error.payment_not_found":         "支付记录不存在",

		"error.role_not_found": "角色不存在",
		"error.role_invalid":   "角色配置无效",
		"error.role_exists":    "角色名称已存在",
		"error.role_in_use":    "角色仍被用户使用",

		"error.coupon_code_required":   "请填写优惠码",
		"error.coupon_value_invalid":   "优惠数值无效",
		"error.role_name_required":     "请填写角色名称",
		"error.slug_required":          "请填写 slug",
		"error.slug_exists":            "slug 已存在",
		"error.post_type_invalid":      "不支持的文章类型",
		"error.ticket_input_invalid":   "请填写工单标题和内容",
		"error.ticket_closed":          "工单已关闭",
		"error.user_status_invalid":    "用户状态无效",
		"error.payment_not_configured": "支付渠道未配置",

		"order.status.pending_payment": "待支付",
		"order.status.paid":            "已支付",
		"order.status.completed":       "已完成",
		"order.status.canceled":        "已取消",

		"email.order_status.subject": "订单状态更新：%s",
		"email.order_status.body":    "您的订单 %s 当前状态为 %s。\n金额：%s %s",
	},
}
