package app

import (
	"edu_platform_backend/docs"
	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/middleware"
	"edu_platform_backend/internal/model"
	"edu_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(api, c)

	// 2. 目录浏览：可选认证，讲师登录后可以看到草稿
	catalogue := api.Group("")
	catalogue.Use(middleware.OptionalAuth(cfg.JWT.Secret))
	a.registerCatalogueRoutes(catalogue, c)

	// 3. 需要登录的路由
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)

		// 讲师（管理员自动拥有权限）
		instructor := authGroup.Group("")
		instructor.Use(middleware.RoleMiddleware(model.RoleInstructor))
		a.registerInstructorRoutes(instructor, c)

		// 仅管理员
		admin := authGroup.Group("")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		a.registerAdminRoutes(admin, c)
	}
}

func (a *App) registerPublicRoutes(public *gin.RouterGroup, c *controllers) {
	public.GET("/health", c.health.HealthCheck)
	public.GET("/schemas", c.schema.Kinds)
	public.POST("/schemas/:kind/validate", c.schema.Validate)
	public.GET("/config/educational", c.schema.EducationalConfig)
}

func (a *App) registerCatalogueRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/paths", c.learningPath.List)
	r.GET("/paths/:id", c.learningPath.Get)
	r.GET("/modules/:id", c.learningPath.GetModule)
	r.GET("/modules/:id/lessons", c.content.ListLessons)
	r.GET("/modules/:id/labs", c.content.ListLabs)
	r.GET("/modules/:id/assessments", c.content.ListAssessments)
	r.GET("/lessons/:id", c.content.GetLesson)
	r.GET("/labs/:id", c.content.GetLab)
	r.GET("/assessments/:id", c.content.GetAssessment)

	r.GET("/scenarios", c.scenario.List)
	r.GET("/scenarios/:id", c.scenario.Get)

	r.GET("/kb", c.knowledgeBase.Search)
	r.GET("/kb/:id", c.knowledgeBase.Get)

	r.GET("/forum/threads", c.forum.ListThreads)
	r.GET("/forum/threads/:id", c.forum.GetThread)

	r.GET("/instructors", c.instructor.List)
	r.GET("/instructors/:id", c.instructor.Get)
}

func (a *App) registerStudentRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/paths/:id/completion", c.learningPath.Completion)
	r.GET("/modules/:id/completion", c.learningPath.ModuleCompletion)

	// 学习进度
	r.POST("/progress", c.progress.Record)
	r.GET("/progress", c.progress.List)
	r.GET("/progress/:contentId", c.progress.Get)
	r.POST("/progress/:contentId/bookmarks", c.progress.AddBookmark)
	r.DELETE("/progress/:contentId/bookmarks/:index", c.progress.RemoveBookmark)

	// 评估提交
	r.POST("/assessments/:id/results", c.assessment.Submit)
	r.GET("/assessments/:id/results", c.assessment.ListResults)
	r.GET("/results/:id", c.assessment.GetResult)

	// 报名
	r.POST("/enrollments", c.enrollment.Enroll)
	r.GET("/enrollments", c.enrollment.List)
	r.GET("/enrollments/:id", c.enrollment.Get)
	r.PUT("/enrollments/:id/status", c.enrollment.UpdateStatus)

	// 知识库反馈
	r.POST("/kb/:id/feedback", c.knowledgeBase.Feedback)

	// 论坛
	r.POST("/forum/threads", c.forum.CreateThread)
	r.DELETE("/forum/threads/:id", c.forum.DeleteThread)
	r.POST("/forum/threads/:id/posts", c.forum.Reply)
	r.POST("/forum/threads/:id/accept", c.forum.AcceptAnswer)
	r.POST("/forum/threads/:id/vote", c.forum.VoteThread)
	r.PUT("/forum/posts/:id", c.forum.EditPost)
	r.POST("/forum/posts/:id/vote", c.forum.VotePost)
	r.POST("/forum/posts/:id/flag", c.forum.Flag)
	r.POST("/forum/posts/:id/attachments", c.forum.AddAttachment)

	// 实时推送
	r.GET("/forum/threads/:id/live", c.forum.Live)
	r.GET("/scenarios/:id/live", c.scenario.Live)
}

func (a *App) registerInstructorRoutes(r *gin.RouterGroup, c *controllers) {
	// 学习路径与模块
	r.POST("/paths", c.learningPath.Create)
	r.PUT("/paths/:id", c.learningPath.Update)
	r.PUT("/paths/:id/status", c.learningPath.SetStatus)
	r.DELETE("/paths/:id", c.learningPath.Delete)
	r.POST("/paths/:id/modules", c.learningPath.AddModule)
	r.PUT("/paths/:id/certification", c.learningPath.SetCertification)
	r.DELETE("/paths/:id/certification", c.learningPath.DeleteCertification)
	r.PUT("/modules/:id", c.learningPath.UpdateModule)
	r.DELETE("/modules/:id", c.learningPath.DeleteModule)

	// 课程
	r.POST("/modules/:id/lessons", c.content.CreateLesson)
	r.PUT("/lessons/:id", c.content.UpdateLesson)
	r.DELETE("/lessons/:id", c.content.DeleteLesson)
	r.PUT("/lessons/:id/quiz", c.content.SetQuiz)
	r.DELETE("/lessons/:id/quiz", c.content.RemoveQuiz)
	r.POST("/lessons/:id/video", c.content.UploadVideo)

	// 实验
	r.GET("/labs/template", c.content.LabTemplate)
	r.POST("/modules/:id/labs", c.content.CreateLab)
	r.PUT("/labs/:id", c.content.UpdateLab)
	r.DELETE("/labs/:id", c.content.DeleteLab)

	// 评估
	r.POST("/modules/:id/assessments", c.content.CreateAssessment)
	r.PUT("/assessments/:id", c.content.UpdateAssessment)
	r.DELETE("/assessments/:id", c.content.DeleteAssessment)
	r.PUT("/results/:id/grade", c.assessment.Grade)

	// 报名与证书
	r.POST("/enrollments/:id/certificate", c.enrollment.IssueCertificate)

	// 演练场景
	r.POST("/scenarios", c.scenario.Create)
	r.PUT("/scenarios/:id", c.scenario.Update)
	r.DELETE("/scenarios/:id", c.scenario.Delete)
	r.POST("/scenarios/:id/events/:eventId/reveal", c.scenario.RevealEvent)

	// 知识库
	r.POST("/kb", c.knowledgeBase.Create)
	r.PUT("/kb/:id", c.knowledgeBase.Update)
	r.PUT("/kb/:id/status", c.knowledgeBase.SetStatus)
	r.POST("/kb/:id/attachments", c.knowledgeBase.AddAttachment)
	r.DELETE("/kb/:id", c.knowledgeBase.Delete)

	// 论坛管理
	r.PUT("/forum/posts/:id/moderate", c.forum.Moderate)
	r.PUT("/forum/threads/:id/status", c.forum.SetThreadStatus)
	r.PUT("/forum/threads/:id/pin", c.forum.SetPinned)

	r.GET("/statistics", c.statistics.Get)
}

func (a *App) registerAdminRoutes(r *gin.RouterGroup, c *controllers) {
	r.PUT("/enrollments/:id/payment", c.enrollment.UpdatePayment)

	r.POST("/instructors", c.instructor.Create)
	r.PUT("/instructors/:id", c.instructor.Update)
	r.DELETE("/instructors/:id", c.instructor.Delete)
}
