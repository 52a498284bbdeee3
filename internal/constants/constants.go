package constants

// 权限模块常量
const (
	ModuleCoupons    = "coupons"
	ModuleProducts   = "products"
	ModuleCategories = "categories"
	ModulePosts      = "posts"
	ModuleOrders     = "orders"
	ModuleRoles      = "roles"
	ModuleUsers      = "users"
	ModuleTickets    = "tickets"
)

// 权限动作编码常量（按约定：0=创建 1=查看 2=更新 3=删除）
const (
	ActionCreate = 0
	ActionView   = 1
	ActionUpdate = 2
	ActionDelete = 3
)

// 优惠券类型常量
const (
	DiscountTypePercentage      = "percentage"
	DiscountTypeFlat            = "flat"
	DiscountTypeProductSpecific = "product_specific"
	DiscountTypeQuantityBased   = "quantity_based"
)

// 文章类型常量
const (
	PostTypeBlog      = "blog"
	PostTypeCaseStudy = "case_study"
	PostTypeService   = "service"
)

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// 支付渠道常量
const (
	PaymentProviderStripe = "stripe"
)

// 支付状态常量
const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusSuccess   = "success"
	PaymentStatusFailed    = "failed"
	PaymentStatusExpired   = "expired"
)

// 工单状态常量
const (
	TicketStatusOpen     = "open"
	TicketStatusAnswered = "answered"
	TicketStatusClosed   = "closed"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列与任务常量
const (
	QueueDefault           = "default"
	TaskOrderStatusEmail   = "order:status_email"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)

// 验证码场景常量
const (
	CaptchaSceneLogin = "login"
)
