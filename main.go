package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/eventdesk/cmd/app"
)

// @title          eventdesk API
// @description    Local API over the event data files shared with the console process.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		os.Exit(1)
	}
}
