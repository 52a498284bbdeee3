package router

import (
	"fmt"
	"strings"

	"github.com/wordmart/internal/cache"
	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/constants"
	adminhandlers "github.com/wordmart/internal/http/handlers/admin"
	publichandlers "github.com/wordmart/internal/http/handlers/public"
	"github.com/wordmart/internal/logger"
	"github.com/wordmart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "wm"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	userAuth := UserJWTAuthMiddleware(c.UserAuthService)
	perm := func(module string, action int) gin.HandlerFunc {
		return RequirePermission(c.AuthzService, module, action)
	}

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProductBySlug)
		apiV1.GET("/posts", publicHandler.GetPosts)
		apiV1.GET("/posts/:slug", publicHandler.GetPostBySlug)
		apiV1.POST("/coupons/preview", publicHandler.PreviewCoupon)
		apiV1.GET("/captcha/image", publicHandler.GetCaptcha)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(userAuth)
		{
			user.GET("/me", publicHandler.Me)
			user.POST("/me/logout", publicHandler.Logout)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders", publicHandler.GetOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:id/payments", publicHandler.CreatePayment)
			user.GET("/orders/:id/payments/latest", publicHandler.GetPayment)
			user.POST("/tickets", perm(constants.ModuleTickets, constants.ActionCreate), publicHandler.CreateTicket)
			user.GET("/tickets", publicHandler.GetTickets)
			user.GET("/tickets/:id", publicHandler.GetTicket)
		}

		// 支付网关回调（签名校验，无用户态）
		apiV1.POST("/payments/webhook/stripe", publicHandler.StripeWebhook)

		// 管理员接口，每条路由以权限中间件为首道守卫
		admin := apiV1.Group("/admin")
		admin.Use(userAuth)
		{
			admin.GET("/coupons", perm(constants.ModuleCoupons, constants.ActionView), adminHandler.ListCoupons)
			admin.GET("/coupons/:id", perm(constants.ModuleCoupons, constants.ActionView), adminHandler.GetCoupon)
			admin.POST("/coupons", perm(constants.ModuleCoupons, constants.ActionCreate), adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", perm(constants.ModuleCoupons, constants.ActionUpdate), adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", perm(constants.ModuleCoupons, constants.ActionDelete), adminHandler.DeleteCoupon)

			admin.GET("/categories", perm(constants.ModuleCategories, constants.ActionView), adminHandler.ListCategories)
			admin.POST("/categories", perm(constants.ModuleCategories, constants.ActionCreate), adminHandler.CreateCategory)
			admin.PUT("/categories/:id", perm(constants.ModuleCategories, constants.ActionUpdate), adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", perm(constants.ModuleCategories, constants.ActionDelete), adminHandler.DeleteCategory)

			admin.GET("/products", perm(constants.ModuleProducts, constants.ActionView), adminHandler.ListProducts)
			admin.GET("/products/:id", perm(constants.ModuleProducts, constants.ActionView), adminHandler.GetProduct)
			admin.POST("/products", perm(constants.ModuleProducts, constants.ActionCreate), adminHandler.CreateProduct)
			admin.PUT("/products/:id", perm(constants.ModuleProducts, constants.ActionUpdate), adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", perm(constants.ModuleProducts, constants.ActionDelete), adminHandler.DeleteProduct)

			admin.GET("/posts", perm(constants.ModulePosts, constants.ActionView), adminHandler.ListPosts)
			admin.GET("/posts/:id", perm(constants.ModulePosts, constants.ActionView), adminHandler.GetPost)
			admin.POST("/posts", perm(constants.ModulePosts, constants.ActionCreate), adminHandler.CreatePost)
			admin.PUT("/posts/:id", perm(constants.ModulePosts, constants.ActionUpdate), adminHandler.UpdatePost)
			admin.DELETE("/posts/:id", perm(constants.ModulePosts, constants.ActionDelete), adminHandler.DeletePost)

			admin.GET("/orders", perm(constants.ModuleOrders, constants.ActionView), adminHandler.ListOrders)
			admin.GET("/orders/:id", perm(constants.ModuleOrders, constants.ActionView), adminHandler.GetOrder)
			admin.POST("/orders/:id/mark-paid", perm(constants.ModuleOrders, constants.ActionUpdate), adminHandler.MarkOrderPaid)
			admin.POST("/orders/:id/complete", perm(constants.ModuleOrders, constants.ActionUpdate), adminHandler.CompleteOrder)
			admin.POST("/orders/:id/cancel", perm(constants.ModuleOrders, constants.ActionUpdate), adminHandler.CancelOrder)

			admin.GET("/roles", perm(constants.ModuleRoles, constants.ActionView), adminHandler.ListRoles)
			admin.GET("/roles/:id", perm(constants.ModuleRoles, constants.ActionView), adminHandler.GetRole)
			admin.POST("/roles", perm(constants.ModuleRoles, constants.ActionCreate), adminHandler.CreateRole)
			admin.PUT("/roles/:id", perm(constants.ModuleRoles, constants.ActionUpdate), adminHandler.UpdateRole)
			admin.DELETE("/roles/:id", perm(constants.ModuleRoles, constants.ActionDelete), adminHandler.DeleteRole)

			admin.GET("/users", perm(constants.ModuleUsers, constants.ActionView), adminHandler.ListUsers)
			admin.GET("/users/:id", perm(constants.ModuleUsers, constants.ActionView), adminHandler.GetUser)
			admin.PUT("/users/:id/role", perm(constants.ModuleUsers, constants.ActionUpdate), adminHandler.AssignUserRole)
			admin.PUT("/users/:id/admin", perm(constants.ModuleUsers, constants.ActionUpdate), adminHandler.SetUserAdmin)
			admin.PUT("/users/:id/status", perm(constants.ModuleUsers, constants.ActionUpdate), adminHandler.SetUserStatus)

			admin.GET("/tickets", perm(constants.ModuleTickets, constants.ActionView), adminHandler.ListTickets)
			admin.GET("/tickets/:id", perm(constants.ModuleTickets, constants.ActionView), adminHandler.GetTicket)
			admin.POST("/tickets/:id/reply", perm(constants.ModuleTickets, constants.ActionUpdate), adminHandler.ReplyTicket)
			admin.POST("/tickets/:id/close", perm(constants.ModuleTickets, constants.ActionUpdate), adminHandler.CloseTicket)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
