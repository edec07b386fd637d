package handler

import (
	"strconv"

	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// ActiveTokens is the shop's visible queue depth: in-flight orders that are
// paid. approved-but-unpaid orders are excluded, the queue only shows
// committed work.
func ActiveTokens(shopId uint) int64 {
	var count int64
	database.DB.Model(&model.Order{}).
		Where("shop_id = ? AND status IN ? AND payment_status = ?", shopId, model.ActiveStatuses, model.PaymentCompleted).
		Count(&count)
	return count
}

// GET /api/v1/shops/:shopId/queue
// Poll backstop for clients that missed websocket events.
func GetShopQueue(c *fiber.Ctx) error {
	shopId64, err := strconv.ParseUint(c.Params("shopId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, "Invalid shop id", err)
	}
	shopId := uint(shopId64)

	var shop model.Shop
	if err := database.DB.First(&shop, shopId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Shop not found", err)
	}

	type queueEntry struct {
		TokenNumber int    `json:"tokenNumber"`
		Status      string `json:"status"`
	}

	var entries []queueEntry
	database.DB.Model(&model.Order{}).
		Select("token_number, status").
		Where("shop_id = ? AND status IN ? AND payment_status = ?", shopId, model.ActiveStatuses, model.PaymentCompleted).
		Order("updated_at asc").
		Scan(&entries)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"shopId":       shopId,
		"activeTokens": len(entries),
		"queue":        entries,
	})
}
