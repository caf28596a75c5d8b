package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/volleyhub/registration-api/cmd/app"
)

// @termsOfService  http://swagger.io/terms/
// @contact.name   API Support
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name volley_session
// @description Session issued by /auth/login
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
