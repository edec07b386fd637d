package validate

import (
	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/gofiber/fiber/v2"
)

func RegisterCustomer() fiber.Handler {
	return parseBody[model.RegisterCustomerInput]
}

func CustomerLogin() fiber.Handler {
	return parseBody[model.CustomerLoginInput]
}

func ChangePasswordCustomer() fiber.Handler {
	return parseBody[model.ChangePasswordInput]
}
