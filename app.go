package main

import (
	"github.com/synthoshq/constants"
	"github.com/synthoshq/database"
	"github.com/synthoshq/internal/capacity"
	"github.com/synthoshq/internal/email"
	"github.com/synthoshq/internal/handlers"
	"github.com/synthoshq/internal/pipeline"
	"github.com/synthoshq/internal/repository"
	"github.com/synthoshq/internal/routes"

	"flag"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var (
	prod = flag.Bool("prod", false, "Enable prefork in Production")
)

func main() {
	constant := constants.New()

	// Parse command-line flags
	flag.Parse()

	// Create fiber app
	app := fiber.New(fiber.Config{
		Prefork: *prod, // go run app.go -prod
	})

	app.Static("/", "./static/public")

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: constant.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	dbConfig := database.Config{
		Host:     constant.DbHost,
		Port:     constant.DbPort,
		Password: constant.DbPassword,
		User:     constant.DbUser,
		DBName:   constant.DbName,
	}

	database.Connect(&dbConfig)

	database.RunManualMigration(database.DB)

	// Confirmation email transport, built once and injected
	sender, err := email.NewSender(email.Config{
		Host:         constant.SmtpHost,
		Port:         constant.SmtpPort,
		User:         constant.SmtpUser,
		Password:     constant.SmtpPassword,
		From:         constant.EmailFrom,
		FromName:     constant.EmailFromName,
		TemplatePath: "templates/email/waitlist_confirmation.html",
	})
	if err != nil {
		log.Fatalf("email sender: %v", err)
	}

	waitlistRepo := repository.NewWaitlistRepository(database.DB)
	pipe := pipeline.NewPipeline(waitlistRepo, sender)
	gate := capacity.NewGate(waitlistRepo, constant.MaxWaitlistSpots)

	// Bind routes
	routes.Routes(app, database.DB, pipe, gate)

	// Handle not founds
	app.Use(handlers.NotFound)

	port := os.Getenv("PORT")
	if port == "" {
		port = constant.Port
	}

	// Listen on port set in .env
	log.Fatal(app.Listen(":" + port))
}
