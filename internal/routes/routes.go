package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alumnihub/internal/authz"
	"alumnihub/internal/handlers"
	"alumnihub/internal/middleware"
	"alumnihub/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	tokens services.TokenService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	rideHandler *handlers.RideHandler,
) *gin.Engine {

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server Health Check: OK")
	})

	api := r.Group("/api/v1")

	// ---- public
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
		// reset carries its own bearer credential (the temp token); the
		// session middleware must not see it
		auth.PUT("/otp/reset", authHandler.ResetPassword)
	}

	// ---- protected
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(tokens))

	status := private.Group("/status")
	{
		status.GET("/profile", userHandler.GetProfile)
		status.PUT("/profile", userHandler.UpdateProfile)
		status.GET("/users/:username", userHandler.ViewPublicProfile)
		status.PUT("/update/password", userHandler.ChangePassword)
		status.DELETE("/account/delete", userHandler.DeleteAccount)
	}

	rides := private.Group("/rides")
	{
		rides.POST("/request",
			middleware.RequireRoles(authz.RoleRider),
			rideHandler.RequestRide)
		rides.GET("/pending",
			middleware.RequireRoles(authz.RoleDriver),
			rideHandler.ListPending)
		rides.PATCH("/:id/accept",
			middleware.RequireRoles(authz.RoleDriver),
			rideHandler.Accept)
		rides.PATCH("/:id/start",
			middleware.RequireRoles(authz.RoleDriver),
			rideHandler.Start)
		rides.PATCH("/:id/complete",
			middleware.RequireRoles(authz.RoleDriver),
			rideHandler.Complete)
		rides.GET("/my-trips", rideHandler.MyTrips)
	}

	return r
}
