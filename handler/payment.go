package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// POST /payments
// Creates a Razorpay order for an approved, unpaid order. The checkout
// happens on the client; /payments/verify closes the loop.
func CreatePayment(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	input := c.Locals("input").(model.CreatePaymentInput)
	db := database.DB

	var order model.Order
	if err := db.Where("id = ? AND customer_id = ? AND status = ?",
		input.OrderId, customer.ID, model.OrderApproved).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 400, "Order is not awaiting payment", err)
	}

	if order.PaymentStatus != nil && *order.PaymentStatus == model.PaymentCompleted {
		return utils.ErrorResponse(c, 400, "Order already paid", errors.New("payment completed"))
	}
	if time.Since(order.UpdatedAt) > PaymentWindow {
		return utils.ErrorResponse(c, 400, "Payment window has expired", errors.New("approval window elapsed"))
	}

	paymentCode := fmt.Sprintf("PAY_%s_%d", time.Now().Format("20060102"), rand.Intn(100000))

	razorpay := NewRazorpay()
	gatewayOrder, err := razorpay.CreateOrder(order.TotalAmount, paymentCode)
	if err != nil {
		return utils.ErrorResponse(c, 502, "Failed to create gateway order", err)
	}

	payment := model.Payment{
		OrderId:     order.ID,
		Amount:      order.TotalAmount,
		PaymentCode: paymentCode,
		GatewayRef:  gatewayOrder.ID,
		Status:      "CREATED",
		Method:      input.Method,
	}
	if err := db.Create(&payment).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"paymentCode":     paymentCode,
		"razorpayOrderId": gatewayOrder.ID,
		"amount":          gatewayOrder.Amount,
		"currency":        gatewayOrder.Currency,
		"keyId":           razorpay.Config.KeyID,
	})
}

// POST /payments/verify
// Client posts the checkout result; a valid signature marks the payment
// completed and moves the order into preparing in one engine call.
func VerifyPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.VerifyPaymentInput)
	db := database.DB

	razorpay := NewRazorpay()
	if !razorpay.VerifyCheckoutSignature(input.RazorpayOrderId, input.RazorpayPaymentId, input.RazorpaySignature) {
		return utils.ErrorResponse(c, 400, "Invalid payment signature", errors.New("signature mismatch"))
	}

	var payment model.Payment
	if err := db.Where("gateway_ref = ?", input.RazorpayOrderId).First(&payment).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Payment not found", err)
	}

	order, _, err := ApplyTransition(payment.OrderId, TransitionRequest{
		Status:        utils.Ptr(model.OrderPreparing),
		PaymentStatus: utils.Ptr(model.PaymentCompleted),
		TransactionId: &input.RazorpayPaymentId,
	})
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	db.Model(&payment).Update("status", "CAPTURED")

	return utils.SuccessResponse(c, 200, order)
}

// POST /razorpay/webhook
// Server-to-server confirmation. Idempotent: a payment already CAPTURED is
// acknowledged without another transition.
func RazorpayWebhook(c *fiber.Ctx) error {
	razorpay := NewRazorpay()

	body := c.Body()
	signature := c.Get("X-Razorpay-Signature")
	if !razorpay.VerifyWebhookSignature(body, signature) {
		return c.Status(400).JSON(fiber.Map{"status": "invalid signature"})
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": "bad payload"})
	}

	if event.Event != "payment.captured" {
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	db := database.DB
	var payment model.Payment
	if err := db.Where("gateway_ref = ? AND status != ?", event.Payload.Payment.Entity.OrderID, "CAPTURED").
		First(&payment).Error; err != nil {
		return c.JSON(fiber.Map{"status": "ok"}) // unknown or already captured
	}

	paymentId := event.Payload.Payment.Entity.ID
	if _, _, err := ApplyTransition(payment.OrderId, TransitionRequest{
		Status:        utils.Ptr(model.OrderPreparing),
		PaymentStatus: utils.Ptr(model.PaymentCompleted),
		TransactionId: &paymentId,
	}); err != nil && !errors.Is(err, ErrInvalidTransition) {
		return c.Status(500).JSON(fiber.Map{"status": "error"})
	}

	db.Model(&payment).Update("status", "CAPTURED")
	return c.JSON(fiber.Map{"status": "ok"})
}

// POST /api/v1/orders/:orderCode/payment-screenshot
// UPI screenshot fallback: stores the uploaded image URL and marks the
// payment pending until the shop verifies it by hand.
func AttachPaymentScreenshot(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, 401, "Please log in", nil)
	}

	input := c.Locals("input").(model.PaymentScreenshotInput)

	var order model.Order
	if err := database.DB.
		Where("public_code = ? AND customer_id = ?", c.Params("orderCode"), customer.ID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	}

	if order.Status != model.OrderApproved {
		return utils.ErrorResponse(c, 400, "Order is not awaiting payment", errors.New("status "+order.Status))
	}

	if err := database.DB.Model(&order).Update("screenshot_url", input.Url).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_UPDATE, err)
	}

	updated, _, err := ApplyTransition(order.ID, TransitionRequest{
		PaymentStatus: utils.Ptr(model.PaymentPending),
	})
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, 200, updated)
}
