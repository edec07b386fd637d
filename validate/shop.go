package validate

import (
	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/gofiber/fiber/v2"
)

func CreateShop() fiber.Handler {
	return parseBody[model.CreateShopInput]
}

func EditShop() fiber.Handler {
	return parseBody[model.EditShopInput]
}

func CreateMenuItem() fiber.Handler {
	return parseBody[model.CreateMenuItemInput]
}

func EditMenuItem() fiber.Handler {
	return parseBody[model.EditMenuItemInput]
}
