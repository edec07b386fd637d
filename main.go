package main

import (
	"log"

	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/handler"
	"github.com/akshad110/campus-eats-sub000/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // payment screenshots
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	handler.StartExpireOrderWorker()
	handler.StartOrderReconciler()
	defer handler.StopOrderReconciler()
	handler.StartDailyDigestScheduler()
	defer handler.StopDailyDigestScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
