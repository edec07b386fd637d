package handler

import (
	"strconv"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// GET /api/v1/shops/:shopId/menu — public, available items only.
func GetShopMenu(c *fiber.Ctx) error {
	shopId64, err := strconv.ParseUint(c.Params("shopId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var items []model.MenuItem
	query := database.DB.Where("shop_id = ? AND available = true", uint(shopId64))
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, items)
}

// POST /api/v1/shops/:shopId/menu
func CreateMenuItem(c *fiber.Ctx) error {
	shopId, err := requireOwnShop(c)
	if err != nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, err)
	}

	input := c.Locals("input").(model.CreateMenuItemInput)

	item := model.MenuItem{
		ShopId:      shopId,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageUrl:    input.ImageUrl,
		Available:   true,
	}
	if input.IsVeg != nil {
		item.IsVeg = *input.IsVeg
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, 201, item)
}

// PUT /api/v1/shops/:shopId/menu/:itemId
func EditMenuItem(c *fiber.Ctx) error {
	shopId, err := requireOwnShop(c)
	if err != nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, err)
	}

	itemId64, err := strconv.ParseUint(c.Params("itemId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var item model.MenuItem
	if err := database.DB.Where("id = ? AND shop_id = ?", uint(itemId64), shopId).First(&item).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MENU_ITEM_NOT_FOUND, err)
	}

	input := c.Locals("input").(model.EditMenuItemInput)
	if err := copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	if err := database.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, 200, item)
}

// DELETE /api/v1/shops/:shopId/menu/:itemId — soft delete by availability;
// existing orders keep their snapshots either way.
func DeleteMenuItem(c *fiber.Ctx) error {
	shopId, err := requireOwnShop(c)
	if err != nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, err)
	}

	itemId64, err := strconv.ParseUint(c.Params("itemId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	result := database.DB.Model(&model.MenuItem{}).
		Where("id = ? AND shop_id = ?", uint(itemId64), shopId).
		Update("available", false)
	if result.Error != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, 404, constants.MENU_ITEM_NOT_FOUND, nil)
	}

	return utils.SuccessResponse(c, 200, "menu item disabled")
}
