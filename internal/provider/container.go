package provider

import (
	"time"

	"github.com/wordmart/internal/authz"
	"github.com/wordmart/internal/cache"
	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/logger"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/queue"
	"github.com/wordmart/internal/repository"
	"github.com/wordmart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	RoleRepo        repository.RoleRepository
	CategoryRepo    repository.CategoryRepository
	ProductRepo     repository.ProductRepository
	PostRepo        repository.PostRepository
	CartRepo        repository.CartRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	OrderRepo       repository.OrderRepository
	PaymentRepo     repository.PaymentRepository
	TicketRepo      repository.TicketRepository

	// Services
	AuthzService       *authz.Service
	UserAuthService    *service.UserAuthService
	UserAdminService   *service.UserAdminService
	RoleAdminService   *service.RoleAdminService
	CaptchaService     *service.CaptchaService
	EmailService       *service.EmailService
	CatalogService     *service.CatalogService
	PostService        *service.PostService
	CartService        *service.CartService
	CouponService      *service.CouponService
	CouponAdminService *service.CouponAdminService
	OrderService       *service.OrderService
	PaymentService     *service.PaymentService
	TicketService      *service.TicketService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}
	if queueClient == nil {
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RoleRepo = repository.NewRoleRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.TicketRepo = repository.NewTicketRepository(db)
}

func (c *Container) initServices() {
	permCache := authz.NewMemoryPermissionCache(time.Duration(c.Config.Authz.CacheTTLSeconds) * time.Second)
	c.AuthzService = authz.NewService(c.UserRepo, c.RoleRepo, permCache)

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo, c.RoleRepo)
	c.RoleAdminService = service.NewRoleAdminService(c.RoleRepo, c.UserRepo, c.AuthzService)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.EmailService = service.NewEmailService(c.Config.Email)
	c.CatalogService = service.NewCatalogService(c.CategoryRepo, c.ProductRepo)
	c.PostService = service.NewPostService(c.PostRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(models.DB, c.CouponRepo, c.CouponUsageRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.OrderService = service.NewOrderService(models.DB, c.Config, c.OrderRepo, c.CartRepo, c.CartService, c.CouponService, c.QueueClient)
	c.PaymentService = service.NewPaymentService(c.Config, c.PaymentRepo, c.OrderRepo, c.OrderService)
	c.TicketService = service.NewTicketService(c.TicketRepo, c.OrderRepo)
}
