package main

import "alumnihub/internal/app"

// @title           AlumniHub API
// @version         1.0
// @description     Membership platform backend: accounts, OTP password recovery, profiles, rides.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
