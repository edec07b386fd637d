package validate

import (
	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePayment() fiber.Handler {
	return parseBody[model.CreatePaymentInput]
}

func VerifyPayment() fiber.Handler {
	return parseBody[model.VerifyPaymentInput]
}
