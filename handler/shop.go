package handler

import (
	"errors"
	"strconv"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/helper"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
)

// GET /api/v1/shops — public browse, open shops first.
func GetShops(c *fiber.Ctx) error {
	var shops []model.Shop
	if err := database.DB.Order("is_open desc, name asc").Find(&shops).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, 200, shops)
}

// GET /api/v1/shops/:slug
func GetShopDetail(c *fiber.Ctx) error {
	var shop model.Shop
	if err := database.DB.
		Preload("MenuItems", "available = true").
		Where("slug = ?", c.Params("slug")).
		First(&shop).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOP_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, 200, fiber.Map{
		"shop":         shop,
		"activeTokens": ActiveTokens(shop.ID),
	})
}

// POST /api/v1/shops — admin only.
func CreateShop(c *fiber.Ctx) error {
	claim, isAccount := helper.GetInfoAccountFromToken(c)
	if !isAccount {
		return utils.ErrorResponse(c, 403, constants.ACCOUNT_NOT_PERMISSION, errors.New("account required"))
	}

	var admin model.Account
	if err := database.DB.First(&admin, claim.AccountId).Error; err != nil || admin.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, 403, constants.ACCOUNT_NOT_PERMISSION, errors.New("admin required"))
	}

	input := c.Locals("input").(model.CreateShopInput)

	shop := model.Shop{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		Location:    input.Location,
		Phone:       input.Phone,
		Email:       input.Email,
		UpiId:       input.UpiId,
		OpensAt:     input.OpensAt,
		ClosesAt:    input.ClosesAt,
		IsOpen:      true,
	}
	if err := database.DB.Create(&shop).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, 201, shop)
}

// PUT /api/v1/shops/:shopId — owner of that shop or admin.
func EditShop(c *fiber.Ctx) error {
	shopId, err := requireOwnShop(c)
	if err != nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, err)
	}

	var shop model.Shop
	if err := database.DB.First(&shop, shopId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOP_NOT_FOUND, err)
	}

	input := c.Locals("input").(model.EditShopInput)
	if err := copier.CopyWithOption(&shop, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}
	if input.Name != nil {
		shop.Slug = slug.Make(*input.Name)
	}

	if err := database.DB.Save(&shop).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, 200, shop)
}

// PATCH /api/v1/shops/:shopId/open — quick open/close toggle for the counter.
func ToggleShopOpen(c *fiber.Ctx) error {
	shopId, err := requireOwnShop(c)
	if err != nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, err)
	}

	var shop model.Shop
	if err := database.DB.First(&shop, shopId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOP_NOT_FOUND, err)
	}

	if err := database.DB.Model(&shop).Update("is_open", !shop.IsOpen).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"isOpen": !shop.IsOpen})
}

// requireOwnShop checks the :shopId param against the caller's shop claim.
// Admin accounts pass for any shop.
func requireOwnShop(c *fiber.Ctx) (uint, error) {
	claim, isAccount := helper.GetInfoAccountFromToken(c)
	if !isAccount {
		return 0, errors.New("account required")
	}

	shopId64, err := strconv.ParseUint(c.Params("shopId"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid shop id")
	}
	shopId := uint(shopId64)

	if claim.ShopId != nil && *claim.ShopId == shopId {
		return shopId, nil
	}

	var account model.Account
	if err := database.DB.First(&account, claim.AccountId).Error; err == nil && account.Role == constants.ROLE_ADMIN {
		return shopId, nil
	}

	return 0, errors.New("not your shop")
}
