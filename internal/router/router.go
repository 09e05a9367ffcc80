package router

import (
	"woniunote/internal/handlers"
	"woniunote/internal/middleware"
	"woniunote/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes 组装服务与处理器并注册全部路由。
// 数据库句柄从入口处注入，一路传到服务层。
func RegisterRoutes(r *gin.Engine, database *gorm.DB) {
	// Services
	creditService := services.NewCreditService(database)
	userService := services.NewUserService(database, creditService)
	articleService := services.NewArticleService(database, creditService)
	commentService := services.NewCommentService(database, creditService)
	favoriteService := services.NewFavoriteService(database)
	cardService := services.NewCardService(database)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	articleHandler := handlers.NewArticleHandler(articleService, commentService, favoriteService)
	commentHandler := handlers.NewCommentHandler(commentService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	cardHandler := handlers.NewCardHandler(cardService)
	userHandler := handlers.NewUserHandler(userService, articleService, commentService, creditService)
	adminHandler := handlers.NewAdminHandler(articleService, userService, creditService)

	// 公共路由 (Public Routes)
	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/articles", articleHandler.List)                    // 公开文章列表
	r.GET("/articles/recommended", articleHandler.Recommended) // 推荐位
	r.GET("/article/:id", articleHandler.Detail)               // 文章详情
	r.GET("/article/:id/comments", commentHandler.ListByArticle)
	r.GET("/u/:id", userHandler.Profile) // 用户主页

	// 登录后路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/article", articleHandler.Create)
		authorized.POST("/article/:id/edit", articleHandler.Update)
		authorized.POST("/article/:id/publish", articleHandler.PublishDraft)
		authorized.DELETE("/article/:id", articleHandler.Hide)
		authorized.GET("/drafts", articleHandler.Drafts)

		authorized.POST("/article/:id/comment", commentHandler.Create)
		authorized.POST("/comment/:id/agree", commentHandler.Agree)
		authorized.POST("/comment/:id/oppose", commentHandler.Oppose)
		authorized.DELETE("/comment/:id", commentHandler.Hide)

		authorized.POST("/favorite/:id", favoriteHandler.Add)
		authorized.DELETE("/favorite/:id", favoriteHandler.Cancel)
		authorized.POST("/favorite/switch/:id", favoriteHandler.Switch)
		authorized.GET("/favorites", favoriteHandler.Mine)

		authorized.GET("/cards", cardHandler.List)
		authorized.POST("/card", cardHandler.Create)
		authorized.POST("/card/:id/edit", cardHandler.Update)
		authorized.DELETE("/card/:id", cardHandler.Delete)
		authorized.POST("/card/:id/done", cardHandler.Done)
		authorized.POST("/card/:id/reopen", cardHandler.Reopen)
		authorized.GET("/card/categories", cardHandler.ListCategories)
		authorized.POST("/card/category", cardHandler.CreateCategory)
		authorized.DELETE("/card/category/:id", cardHandler.DeleteCategory)

		authorized.GET("/ucenter/credits", userHandler.CreditHistory)
		authorized.GET("/ucenter/articles", userHandler.MyArticles)
		authorized.POST("/ucenter/settings", userHandler.UpdateProfile)
	}

	// 管理路由 (Admin Routes)
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/pending", adminHandler.Pending)
		admin.POST("/article/:id/approve", adminHandler.Approve)
		admin.POST("/article/:id/unhide", adminHandler.Unhide)
		admin.POST("/article/:id/recommend", adminHandler.Recommend)
		admin.POST("/user/:id/role", adminHandler.SetRole)
		admin.POST("/user/:id/credit", adminHandler.AdjustCredit)
	}
}
