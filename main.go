package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/asclub/club-api/cmd/app"
)

// @title           AS Club API
// @version         1.0
// @description     Public website and back office API of the football club.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
