package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nhatro-backend/controllers"
	"nhatro-backend/middleware"
	"nhatro-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the route tree.
func SetupRouter(
	authService *services.AuthService,
	ac *controllers.AuthController,
	mc *controllers.MotelController,
	rc *controllers.RoomController,
	cc *controllers.ContractController,
	mtc *controllers.MaintenanceController,
	apc *controllers.AppointmentController,
	ic *controllers.InvoiceController,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}

		// Public listing/search pages.
		api.GET("/motels", mc.List)
		api.GET("/rooms", rc.List)
		api.GET("/rooms/:id", rc.Get)

		// Guest-friendly appointment booking.
		appointments := api.Group("/appointments")
		appointments.Use(middleware.OptionalAuth(authService))
		{
			appointments.POST("", apc.Create)
			appointments.GET("/:id", apc.Get)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.POST("/motels", mc.Create)
			authed.POST("/rooms", rc.Create)
			authed.GET("/rooms/:id/appointments", apc.ListForRoom)

			contracts := authed.Group("/contracts")
			{
				contracts.POST("", cc.Create)
				contracts.GET("", cc.List)
				contracts.GET("/:id", cc.Get)
				contracts.DELETE("/:id", cc.Delete)
				contracts.POST("/:id/terminate", cc.Terminate)
				contracts.GET("/:id/document", cc.Document)
			}

			maintenance := authed.Group("/maintenance-requests")
			{
				maintenance.POST("", mtc.Create)
				maintenance.GET("", mtc.List)
				maintenance.GET("/:id", mtc.Get)
				maintenance.PUT("/:id", mtc.Update)
			}

			authedAppointments := authed.Group("/appointments")
			{
				authedAppointments.PUT("/:id/status", apc.SetStatus)
				authedAppointments.DELETE("/:id", apc.Delete)
			}

			invoices := authed.Group("/invoices")
			{
				invoices.POST("", ic.Create)
				invoices.GET("", ic.List)
				invoices.POST("/sweep-overdue", ic.SweepOverdue)
				invoices.POST("/:id/pay", ic.Pay)
				invoices.GET("/:id/document", ic.Document)
			}
		}
	}

	return r
}
