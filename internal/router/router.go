package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"consigne/internal/auth"
	"consigne/internal/config"
	"consigne/internal/handler"
	"consigne/internal/middleware"
	"consigne/internal/model"
)

// Register wires routes and middleware. Every secured route goes through the
// jwt middleware first (401 on missing/invalid/expired token) and the admin
// routes additionally through RequireRole (403 on wrong role); that ordering
// is what keeps "unauthenticated" and "forbidden" distinct.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	collecteHandler *handler.CollecteHandler,
	materialHandler *handler.MaterialHandler,
	bottleHandler *handler.BottleHandler,
	passageHandler *handler.PassageHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/confirm", authHandler.Confirm)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/materials/file/:name", materialHandler.ServeImage)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", authHandler.Me)
	secured.PUT("/me/collecte-status", collecteHandler.ReportOwnStatus)
	secured.GET("/me/orders", orderHandler.ListOwnOrders)
	secured.POST("/orders", orderHandler.CreateOrder)

	// Admin routes
	admin := secured.Group("", middleware.RequireRole(model.RoleAdmin))

	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/export", userHandler.ExportUsers)
	admin.GET("/users/count", userHandler.CountUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)
	admin.PUT("/users/:id/collecte-status", collecteHandler.ReportStatus)

	admin.GET("/passages/awaiting", collecteHandler.ListAwaiting)
	admin.GET("/passages/awaiting/count", collecteHandler.CountAwaiting)
	admin.GET("/passages", passageHandler.ListPassages)
	admin.GET("/passages/count", passageHandler.CountPassages)
	admin.POST("/passages", passageHandler.SchedulePassage)
	admin.GET("/passages/:id", passageHandler.GetPassage)
	admin.POST("/passages/:id/complete", passageHandler.CompletePassage)
	admin.DELETE("/passages/:id", passageHandler.DeletePassage)

	admin.GET("/materials", materialHandler.ListMaterials)
	admin.GET("/materials/export", materialHandler.ExportMaterials)
	admin.GET("/materials/count", materialHandler.CountMaterials)
	admin.POST("/materials", materialHandler.CreateMaterial)
	admin.GET("/materials/:id", materialHandler.GetMaterial)
	admin.PUT("/materials/:id", materialHandler.UpdateMaterial)
	admin.DELETE("/materials/:id", materialHandler.DeleteMaterial)

	admin.GET("/bottles", bottleHandler.ListBottles)
	admin.GET("/bottles/count", bottleHandler.CountBottles)
	admin.POST("/bottles", bottleHandler.CreateBottle)
	admin.GET("/bottles/:id", bottleHandler.GetBottle)
	admin.PUT("/bottles/:id", bottleHandler.UpdateBottle)
	admin.DELETE("/bottles/:id", bottleHandler.DeleteBottle)

	admin.GET("/orders", orderHandler.ListOrders)
	admin.GET("/orders/count", orderHandler.CountOrders)
	admin.GET("/orders/:id", orderHandler.GetOrder)
	admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	admin.DELETE("/orders/:id", orderHandler.DeleteOrder)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
