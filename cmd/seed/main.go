package main

import (
	"time"

	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/constants"
	"github.com/wordmart/internal/logger"
	"github.com/wordmart/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedRoles(stdLog.Printf)
	seedUsers(stdLog.Printf)
	seedCatalog(stdLog.Printf)
	seedPosts(stdLog.Printf)
	seedCoupons(stdLog.Printf)

	stdLog.Printf("Seed finished")
}

type printfFunc func(format string, args ...interface{})

func seedRoles(printf printfFunc) {
	roles := []models.Role{
		{
			Name:     "editor",
			IsActive: true,
			Permissions: models.ModulePermissionList{
				{Module: constants.ModulePosts, Actions: []int{constants.ActionCreate, constants.ActionView, constants.ActionUpdate, constants.ActionDelete}},
				{Module: constants.ModuleCategories, Actions: []int{constants.ActionView}},
				{Module: constants.ModuleProducts, Actions: []int{constants.ActionView}},
			},
		},
		{
			Name:     "support",
			IsActive: true,
			Permissions: models.ModulePermissionList{
				{Module: constants.ModuleTickets, Actions: []int{constants.ActionCreate, constants.ActionView, constants.ActionUpdate}},
				{Module: constants.ModuleOrders, Actions: []int{constants.ActionView}},
			},
		},
		{
			Name:     "marketing",
			IsActive: true,
			Permissions: models.ModulePermissionList{
				{Module: constants.ModuleCoupons, Actions: []int{constants.ActionCreate, constants.ActionView, constants.ActionUpdate, constants.ActionDelete}},
				{Module: constants.ModuleProducts, Actions: []int{constants.ActionView}},
			},
		},
	}
	for _, role := range roles {
		var existing models.Role
		if err := models.DB.Where("name = ?", role.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&role).Error; err != nil {
				printf("Failed to create role %s: %v", role.Name, err)
			} else {
				printf("Created role: %s", role.Name)
			}
		} else {
			printf("Role already exists: %s", role.Name)
		}
	}
}

func seedUsers(printf printfFunc) {
	type seedUser struct {
		Email       string
		Password    string
		DisplayName string
		IsAdmin     bool
		RoleName    string
	}
	users := []seedUser{
		{Email: "admin@wordmart.local", Password: "admin123", DisplayName: "Administrator", IsAdmin: true},
		{Email: "editor@wordmart.local", Password: "editor123", DisplayName: "Editor", RoleName: "editor"},
		{Email: "customer@wordmart.local", Password: "customer123", DisplayName: "Demo Customer"},
	}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			printf("User already exists: %s", u.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			printf("Failed to hash password for %s: %v", u.Email, err)
			continue
		}
		user := models.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			DisplayName:  u.DisplayName,
			Status:       constants.UserStatusActive,
			IsAdmin:      u.IsAdmin,
		}
		if u.RoleName != "" {
			var role models.Role
			if err := models.DB.Where("name = ?", u.RoleName).First(&role).Error; err == nil {
				user.RoleID = &role.ID
			}
		}
		if err := models.DB.Create(&user).Error; err != nil {
			printf("Failed to create user %s: %v", u.Email, err)
		} else {
			printf("Created user: %s", u.Email)
		}
	}
}

func seedCatalog(printf printfFunc) {
	categories := []models.Category{
		{Slug: "copywriting", Name: "Copywriting", Description: "Landing pages, product copy and brand voice", SortOrder: 1},
		{Slug: "editing", Name: "Editing & Proofreading", Description: "Line edits and style polish for existing drafts", SortOrder: 2},
		{Slug: "content-strategy", Name: "Content Strategy", Description: "Editorial calendars and content audits", SortOrder: 3},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				printf("Created category: %s", cat.Slug)
			}
		} else {
			printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"copywriting", "editing", "content-strategy"}).Find(&categoryList).Error; err != nil {
		printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []models.Product{
		{
			CategoryID:  categoryIDs["copywriting"],
			Slug:        "landing-page-copy",
			Title:       "Landing Page Copy",
			Description: "Conversion-focused landing page copy up to 800 words",
			PriceAmount: models.NewMoneyFromFloat(249.00),
			WordCount:   800,
			Images:      models.StringArray{"https://images.unsplash.com/photo-1455390582262-044cdead277a?w=800"},
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["copywriting"],
			Slug:        "blog-article-1500",
			Title:       "Blog Article (1500 words)",
			Description: "Researched long-form article with SEO brief",
			PriceAmount: models.NewMoneyFromFloat(179.00),
			WordCount:   1500,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["editing"],
			Slug:        "line-edit-5000",
			Title:       "Line Edit (up to 5000 words)",
			Description: "Sentence-level edit for clarity and tone",
			PriceAmount: models.NewMoneyFromFloat(129.00),
			WordCount:   5000,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["content-strategy"],
			Slug:        "content-audit",
			Title:       "Content Audit",
			Description: "Full site content inventory with recommendations",
			PriceAmount: models.NewMoneyFromFloat(499.00),
			IsActive:    true,
			SortOrder:   1,
		},
	}
	for _, product := range products {
		if product.CategoryID == 0 {
			printf("Skip product %s: category missing", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				printf("Created product: %s", product.Slug)
			}
		} else {
			printf("Product already exists: %s", product.Slug)
		}
	}
}

func seedPosts(printf printfFunc) {
	now := time.Now()
	posts := []models.Post{
		{
			Type:        constants.PostTypeBlog,
			Slug:        "how-to-brief-a-copywriter",
			Title:       "How to Brief a Copywriter",
			Summary:     "A short checklist that saves a revision round.",
			Body:        "A good brief names the audience, the action you want and the voice you already use...",
			IsPublished: true,
			PublishedAt: &now,
			SortOrder:   1,
		},
		{
			Type:        constants.PostTypeCaseStudy,
			Slug:        "saas-landing-rewrite",
			Title:       "SaaS Landing Page Rewrite",
			Summary:     "Signup conversion up 32% after a messaging overhaul.",
			Body:        "The original page led with features. We rewrote it around the problem...",
			IsPublished: true,
			PublishedAt: &now,
			SortOrder:   1,
		},
		{
			Type:        constants.PostTypeService,
			Slug:        "white-papers",
			Title:       "White Papers",
			Summary:     "Research-heavy pieces for B2B pipelines.",
			Body:        "Scoped per project. Get in touch with an outline and we will quote...",
			IsPublished: false,
			SortOrder:   2,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				printf("Created post: %s", post.Slug)
			}
		} else {
			printf("Post already exists: %s", post.Slug)
		}
	}
}

func seedCoupons(printf printfFunc) {
	expires := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:           "WELCOME10",
			IsActive:       true,
			DiscountType:   constants.DiscountTypePercentage,
			DiscountValue:  models.NewMoneyFromFloat(10),
			MinOrderAmount: models.NewMoneyFromFloat(50),
			ExpiresAt:      &expires,
		},
		{
			Code:              "FLAT25",
			IsActive:          true,
			DiscountType:      constants.DiscountTypeFlat,
			DiscountValue:     models.NewMoneyFromFloat(25),
			MinOrderAmount:    models.NewMoneyFromFloat(100),
			UsageLimitPerUser: 1,
			TotalUsageLimit:   200,
		},
		{
			Code:          "BULKWRITE",
			IsActive:      true,
			DiscountType:  constants.DiscountTypeQuantityBased,
			DiscountValue: models.NewMoneyFromFloat(15),
			MinQuantity:   3,
		},
		{
			Code:            "FREEAUDIT",
			IsActive:        true,
			DiscountType:    constants.DiscountTypePercentage,
			DiscountValue:   models.NewMoneyFromFloat(100),
			MaxWordCount:    1000,
			TotalUsageLimit: 50,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				printf("Created coupon: %s", coupon.Code)
			}
		} else {
			printf("Coupon already exists: %s", coupon.Code)
		}
	}
}
