package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/helper"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/v1/orders
// Line items are normalized here: name and unit price are snapshotted from
// the menu at creation and never re-derived afterwards.
func CreateOrder(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	input := c.Locals("input").(model.CreateOrderInput)
	db := database.DB

	var shop model.Shop
	if err := db.First(&shop, input.ShopId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.SHOP_NOT_FOUND, err)
	}
	if !shop.IsOpen {
		return utils.ErrorResponse(c, 400, constants.SHOP_CLOSED, errors.New("shop is not accepting orders"))
	}

	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		totalAmount := float64(0)
		items := make([]model.OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			var menuItem model.MenuItem
			if err := tx.Where("id = ? AND shop_id = ? AND available = true", line.MenuItemId, shop.ID).
				First(&menuItem).Error; err != nil {
				return fmt.Errorf("menu item %d: %w", line.MenuItemId, err)
			}
			items = append(items, model.OrderItem{
				MenuItemId: menuItem.ID,
				Name:       menuItem.Name,
				Quantity:   line.Quantity,
				UnitPrice:  menuItem.Price,
			})
			totalAmount += menuItem.Price * float64(line.Quantity)
		}

		orderNumber, err := helper.NextOrderNumber(tx, shop.ID)
		if err != nil {
			return err
		}
		tokenNumber, err := helper.NextTokenNumber(tx, shop.ID)
		if err != nil {
			return err
		}

		order = model.Order{
			PublicCode:    helper.NewOrderCode(),
			OrderNumber:   orderNumber,
			TokenNumber:   tokenNumber,
			CustomerID:    customer.ID,
			ShopID:        shop.ID,
			Items:         items,
			TotalAmount:   totalAmount,
			Notes:         input.Notes,
			Status:        model.OrderPendingApproval,
			PaymentStatus: utils.Ptr(model.PaymentPending),
		}
		return tx.Create(&order).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, 404, constants.MENU_ITEM_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, 500, constants.ERROR_CREATE, err)
	}

	order.Shop = shop
	return utils.SuccessResponse(c, 201, order)
}

// GET /api/v1/orders?user_id=...
func GetMyOrders(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Items").
		Preload("Shop").
		Where("customer_id = ?", customer.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to load orders", err)
	}

	return utils.SuccessResponse(c, 200, orders)
}

// GET /api/v1/orders/:orderCode
// One QR per order, carrying the public code the counter scans at pickup.
func GetOrderDetail(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.
		Preload("Items").
		Preload("Shop").
		Where("public_code = ?", orderCode).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	qrBase64 := ""
	qrBytes, err := utils.GenerateQRCode(order.PublicCode, 400)
	if err != nil {
		log.Printf("QR for order %s: %v", order.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	remainingMs := int64(0)
	if order.Status == model.OrderApproved && (order.PaymentStatus == nil || *order.PaymentStatus != model.PaymentCompleted) {
		remaining := PaymentWindow - time.Since(order.UpdatedAt)
		if remaining > 0 {
			remainingMs = remaining.Milliseconds()
		}
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"order":              order,
		"qrCode":             qrBase64,
		"paymentRemainingMs": remainingMs,
		"activeTokens":       ActiveTokens(order.ShopID),
	})
}

// GET /api/v1/shops/:shopId/orders/pending
// Polled by the shop console every 15s; the console removes entries
// optimistically on approve/reject and reconciles against this list.
func GetPendingOrders(c *fiber.Ctx) error {
	return getShopOrdersByStatus(c, []string{model.OrderPendingApproval})
}

// GET /api/v1/shops/:shopId/orders/active
func GetActiveOrders(c *fiber.Ctx) error {
	return getShopOrdersByStatus(c, model.ActiveStatuses)
}

func getShopOrdersByStatus(c *fiber.Ctx, statuses []string) error {
	claim, isShop := helper.GetInfoAccountFromToken(c)
	if !isShop || claim.ShopId == nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, errors.New("shop account required"))
	}

	shopId64, err := strconv.ParseUint(c.Params("shopId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	if uint(shopId64) != *claim.ShopId {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, errors.New("not your shop"))
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Items").
		Preload("Customer").
		Where("shop_id = ? AND status IN ?", uint(shopId64), statuses).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to load orders", err)
	}

	return utils.SuccessResponse(c, 200, orders)
}

// POST /api/v1/orders/:orderCode/cancel
// Customers may back out of an approved order before paying; after payment
// cancellation is the shop's call (uncollected ready orders).
func CancelOrderByUser(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	var order model.Order
	if err := database.DB.
		Where("public_code = ? AND customer_id = ?", c.Params("orderCode"), customer.ID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	updated, _, err := ApplyTransition(order.ID, TransitionRequest{
		Status: utils.Ptr(model.OrderCancelled),
	})
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, 200, updated)
}

// POST /api/v1/orders/:orderCode/review
// At most two submissions per order: the original review plus one edit.
func ReviewOrder(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	input := c.Locals("input").(model.ReviewOrderInput)

	var order model.Order
	if err := database.DB.
		Where("public_code = ? AND customer_id = ?", c.Params("orderCode"), customer.ID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	if order.Status != model.OrderFulfilled {
		return utils.ErrorResponse(c, 400, constants.ORDER_NOT_FULFILLED, errors.New("only fulfilled orders can be reviewed"))
	}
	if order.ReviewCount >= 2 {
		return utils.ErrorResponse(c, 400, constants.REVIEW_LIMIT_REACHED, errors.New("review already submitted twice"))
	}

	if err := database.DB.Model(&order).Updates(map[string]any{
		"rating":       input.Rating,
		"review":       input.Review,
		"review_count": order.ReviewCount + 1,
	}).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	return utils.SuccessResponse(c, 200, order)
}
