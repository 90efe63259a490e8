package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/Melinia-CIT/melinia-api/cmd/app"
)

// @contact.name   Melinia Tech Team
// @contact.email  tech@melinia.in
//
// @license.name  MIT
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
