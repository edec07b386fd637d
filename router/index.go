package router

import (
	"github.com/akshad110/campus-eats-sub000/handler"
	"github.com/akshad110/campus-eats-sub000/middleware"
	"github.com/akshad110/campus-eats-sub000/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	// customer (student) accounts
	students := v1.Group("/students")
	students.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	students.Post("/login", validate.CustomerLogin(), handler.CustomerLogin)
	students.Get("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCurrentCustomer)
	students.Post("/change-password", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.ChangePasswordCustomer(), handler.ChangePasswordCustomer)

	// public shop browse
	shops := v1.Group("/shops", logger.New())
	shops.Get("/", handler.GetShops)
	shops.Get("/:shopId/menu", handler.GetShopMenu)
	shops.Get("/:shopId/queue", handler.GetShopQueue)
	shops.Get("/:slug", handler.GetShopDetail)

	// shop management
	shops.Post("/", middleware.Protected(), validate.CreateShop(), handler.CreateShop)
	shops.Put("/:shopId", middleware.Protected(), validate.EditShop(), handler.EditShop)
	shops.Patch("/:shopId/open", middleware.Protected(), handler.ToggleShopOpen)
	shops.Post("/:shopId/menu", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	shops.Put("/:shopId/menu/:itemId", middleware.Protected(), validate.EditMenuItem(), handler.EditMenuItem)
	shops.Delete("/:shopId/menu/:itemId", middleware.Protected(), handler.DeleteMenuItem)
	shops.Get("/:shopId/stats", middleware.Protected(), handler.GetShopStats)

	// shop order console
	shops.Get("/:shopId/orders/pending", middleware.Protected(), handler.GetPendingOrders)
	shops.Get("/:shopId/orders/active", middleware.Protected(), handler.GetActiveOrders)
	shopOrders := v1.Group("/shops/orders", logger.New())
	shopOrders.Post("/:orderId/approve", middleware.Protected(), validate.ApproveOrder(), handler.ApproveOrder)
	shopOrders.Post("/:orderId/reject", middleware.Protected(), validate.RejectOrder(), handler.RejectOrder)

	// orders
	orders := v1.Group("/orders", middleware.OptionalJWT(), middleware.OptionalAuth())
	orders.Post("/", validate.CreateOrder(), handler.CreateOrder)
	orders.Get("/", handler.GetMyOrders)
	orders.Get("/:orderCode", handler.GetOrderDetail)
	orders.Post("/:orderCode/cancel", handler.CancelOrderByUser)
	orders.Post("/:orderCode/review", validate.ReviewOrder(), handler.ReviewOrder)
	orders.Post("/:orderCode/payment-screenshot", validate.PaymentScreenshot(), handler.AttachPaymentScreenshot)
	orders.Put("/:orderId/status", middleware.Protected(), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)

	// uploads
	v1.Post("/cloudinary-signature", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GenerateSignature)
	v1.Post("/upload", middleware.Protected(), handler.UploadImage)

	// payments
	app.Post("/payments", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreatePayment(), handler.CreatePayment)
	app.Post("/payments/verify", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.VerifyPayment(), handler.VerifyPayment)
	app.Post("/razorpay/webhook", handler.RazorpayWebhook)

	// realtime: /ws/orders/user/:id and /ws/orders/shop/:id
	app.Get("/ws/orders/:kind/:id", websocket.New(handler.OrderWebsocket))
}
