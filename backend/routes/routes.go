package routes

import (
	"lms/backend/config"
	"lms/backend/controllers"
	"lms/backend/middleware"
	"lms/backend/services/cache"
	"lms/backend/services/payment"
	"lms/backend/services/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, courseCache *cache.CourseCache, payments payment.Provider, files storage.Service) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	teacherMiddleware := middleware.TeacherMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/users/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/users/profile", authMiddleware, userController.UpdateProfile)

	// Courses routes; browsing is public, writes are teacher-only and upload-url
	// is registered before the :courseId routes so the param never captures it
	coursesController := controllers.NewCoursesController(db, cfg, courseCache, files)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.ListCourses)
	courses.Post("/", authMiddleware, teacherMiddleware, coursesController.CreateCourse)
	courses.Post("/upload-url", authMiddleware, teacherMiddleware, coursesController.GetUploadURL)
	courses.Get("/:courseId", coursesController.GetCourse)
	courses.Put("/:courseId", authMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:courseId", authMiddleware, coursesController.DeleteCourse)

	// Chapter comment routes
	commentsController := controllers.NewCommentsController(db, cfg)
	courses.Get("/:courseId/chapters/:chapterId/comments", authMiddleware, commentsController.GetChapterComments)
	courses.Post("/:courseId/chapters/:chapterId/comments", authMiddleware, commentsController.AddChapterComment)

	// Course progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/users/course-progress", authMiddleware)
	progress.Get("/:userId/enrolled-courses", progressController.GetEnrolledCourses)
	progress.Get("/:userId/courses/:courseId", progressController.GetProgress)
	progress.Put("/:userId/courses/:courseId", progressController.UpdateProgress)

	// Transaction routes
	transactionsController := controllers.NewTransactionsController(db, cfg, payments)
	transactions := app.Group("/api/transactions", authMiddleware)
	transactions.Get("/", transactionsController.ListTransactions)
	transactions.Post("/", transactionsController.CreateTransaction)
	transactions.Post("/stripe/payment-intent", transactionsController.CreateStripePaymentIntent)
}
