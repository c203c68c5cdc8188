package routes

import (
	"net/http"

	"accounts/constants"
	"accounts/controllers"
	"accounts/middleware"
	"accounts/services"
	"accounts/services/logger"
	"accounts/services/notification"

	"github.com/gin-gonic/gin"
)

// Dependencies gom mọi thành phần mà router cần
type Dependencies struct {
	Backend   *services.BackendClient
	Sessions  services.SessionRepository
	Toasts    notification.Service
	Auth      *services.AuthService
	Employees *services.EmployeeDashboard
	Salary    *services.SalaryDashboard
	Cookie    middleware.CookieOptions
	Logger    logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	base := controllers.Base{
		Toasts:   deps.Toasts,
		Sessions: deps.Auth,
		Logger:   deps.Logger,
	}
	authController := controllers.NewAuthController(base, deps.Auth, deps.Sessions)
	employeeController := controllers.NewEmployeeController(base, deps.Employees)
	salaryController := controllers.NewSalaryController(base, deps.Salary, deps.Backend)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	web := router.Group("/")
	web.Use(middleware.SessionMiddleware(deps.Cookie), middleware.ErrorHandler(deps.Logger))

	web.GET(constants.PathHome, authController.Home)
	web.GET(constants.PathLogin, authController.LoginPage)
	web.POST(constants.PathLogin, authController.Login)
	web.GET(constants.PathSignup, authController.SignupPage)
	web.POST(constants.PathSignup, authController.Signup)
	web.POST("/logout", authController.Logout)
	web.GET("/api/session", authController.SessionInfo)

	authorized := web.Group("/")
	authorized.Use(middleware.AuthMiddleware(deps.Sessions, deps.Toasts, deps.Logger))

	employees := authorized.Group(constants.PathEmployees)
	employees.GET("", employeeController.Mount)
	employees.GET("/current", employeeController.Current)
	employees.GET("/new", employeeController.New)
	employees.GET("/export", employeeController.Export)
	employees.POST("", employeeController.Create)
	employees.GET("/:id", employeeController.Show)
	employees.GET("/:id/edit", employeeController.Edit)
	employees.POST("/:id", employeeController.Update)
	employees.GET("/:id/delete", employeeController.ConfirmDelete)
	employees.POST("/:id/delete", employeeController.Delete)

	accounts := authorized.Group(constants.PathAccounts)
	accounts.GET("", salaryController.Mount)
	accounts.GET("/current", salaryController.Current)
	accounts.GET("/export", salaryController.Export)
	accounts.POST("/slips", salaryController.Generate)
	accounts.POST("/slips/:id/delete", salaryController.Delete)

	authorized.GET("/download/:file", salaryController.Download)
}
