package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akshad110/campus-eats-sub000/config"
	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/helper"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Engine error taxonomy. Handlers map these onto HTTP statuses; anything
// else is a store failure (5xx).
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("transition not allowed")
	ErrMissingReason       = errors.New("rejection reason required")
	ErrPaymentNotCompleted = errors.New("payment not completed")
)

// PaymentWindow is how long an approved order may stay unpaid before the
// sweep expires it. Anchored on updated_at, which approval bumps.
const PaymentWindow = 5 * time.Minute

// TransitionRequest is the single mutation entry for an order. Every status
// or payment change in the system goes through ApplyTransition with one of
// these; nothing else writes order status columns.
type TransitionRequest struct {
	Status          *string
	RejectionReason *string
	PaymentStatus   *string
	TransactionId   *string
	PreparationTime *int
}

// normalize folds the legacy payment_* order statuses onto the payment axis
// so older clients keep working without widening the state graph.
func (req *TransitionRequest) normalize() {
	if req.Status == nil {
		return
	}
	switch *req.Status {
	case model.OrderPaymentPending:
		req.Status = nil
		req.PaymentStatus = utils.Ptr(model.PaymentPending)
	case model.OrderPaymentCompleted:
		req.Status = nil
		req.PaymentStatus = utils.Ptr(model.PaymentCompleted)
	case model.OrderPaymentFailed:
		req.Status = nil
		req.PaymentStatus = utils.Ptr(model.PaymentFailed)
	}
}

// ApplyTransition validates and applies one transition atomically: row lock,
// graph check, write, reload. Re-submitting the current state is a no-op
// (changed=false) so client retries are safe. One event is published per
// accepted transition, none for no-ops.
func ApplyTransition(orderId uint, req TransitionRequest) (*model.Order, bool, error) {
	req.normalize()
	if req.Status == nil && req.PaymentStatus == nil {
		return nil, false, fmt.Errorf("empty request: %w", ErrInvalidTransition)
	}

	var order model.Order
	changed := false
	tokenReady := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := database.LockForUpdate(tx).First(&order, orderId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		now := time.Now()
		updates := map[string]any{"updated_at": now}

		newStatus := order.Status
		if req.Status != nil && *req.Status != order.Status {
			if !model.CanTransition(order.Status, *req.Status) {
				return fmt.Errorf("%s -> %s: %w", order.Status, *req.Status, ErrInvalidTransition)
			}
			newStatus = *req.Status
		}

		newPayment := order.PaymentStatus
		if req.PaymentStatus != nil {
			same := order.PaymentStatus != nil && *order.PaymentStatus == *req.PaymentStatus
			if !same {
				if !model.CanTransitionPayment(order.PaymentStatus, *req.PaymentStatus, newStatus) {
					return fmt.Errorf("payment %v -> %s: %w", order.PaymentStatus, *req.PaymentStatus, ErrInvalidTransition)
				}
				newPayment = req.PaymentStatus
				updates["payment_status"] = *req.PaymentStatus
				changed = true
			}
		}

		if newStatus != order.Status {
			changed = true
			updates["status"] = newStatus

			switch newStatus {
			case model.OrderApproved:
				prep := config.ConfigInt("DEFAULT_PREP_MINUTES", 15)
				if req.PreparationTime != nil {
					prep = *req.PreparationTime
				}
				updates["preparation_time"] = prep
				updates["estimated_pickup_time"] = now.Add(time.Duration(prep) * time.Minute)
				// NULL, not pending: the customer UI shows "Pay Now" only
				// while payment_status is NULL
				updates["payment_status"] = nil
				newPayment = nil

			case model.OrderRejected:
				if req.RejectionReason == nil || *req.RejectionReason == "" {
					return ErrMissingReason
				}
				updates["rejection_reason"] = *req.RejectionReason

			case model.OrderPreparing:
				if newPayment == nil || *newPayment != model.PaymentCompleted {
					return ErrPaymentNotCompleted
				}
				tokenReady = true

			case model.OrderExpired:
				// the payment window ran out; close the payment axis with it
				if newPayment == nil || *newPayment != model.PaymentCompleted {
					updates["payment_status"] = model.PaymentFailed
					newPayment = utils.Ptr(model.PaymentFailed)
				}
			}
		}

		if !changed {
			// already in the requested state; retrying clients still get the
			// same snapshot shape as an accepted transition
			return tx.Preload("Items").Preload("Shop").Preload("Customer").First(&order, orderId).Error
		}

		if req.TransactionId != nil {
			updates["transaction_id"] = *req.TransactionId
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Preload("Items").Preload("Shop").Preload("Customer").First(&order, orderId).Error
	})

	if err != nil {
		return nil, false, err
	}

	if changed {
		PublishOrderEvent(OrderStatusEvent{
			Type:          "order_status_update",
			OrderId:       order.ID,
			UserId:        order.CustomerID,
			ShopId:        order.ShopID,
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			ActiveTokens:  ActiveTokens(order.ShopID),
			TokenReady:    tokenReady,
			Order:         &order,
		})
		notifyCustomer(&order)
	}

	return &order, changed, nil
}

// notifyCustomer sends the status email for the transitions customers care
// about. Async inside SendOrderStatusEmail, errors logged there.
func notifyCustomer(order *model.Order) {
	if order.Customer == nil || order.Customer.Email == "" {
		return
	}

	items := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}

	data := utils.OrderEmailData{
		OrderCode:   order.PublicCode,
		ShopName:    order.Shop.Name,
		TokenNumber: order.TokenNumber,
		Items:       strings.Join(items, ", "),
		TotalAmount: order.TotalAmount,
	}
	if order.EstimatedPickupTime != nil {
		data.PickupTime = order.EstimatedPickupTime.Format("15:04")
	}

	switch order.Status {
	case model.OrderApproved:
		data.PayLink = fmt.Sprintf("%s/orders/%s/pay", config.Config("APP_URL"), order.PublicCode)
		utils.SendOrderStatusEmail(order.Customer.Email, utils.OrderSubject("Order approved", order.PublicCode), "order_approved.html", data, "")
	case model.OrderReady:
		utils.SendOrderStatusEmail(order.Customer.Email, utils.OrderSubject("Order ready for pickup", order.PublicCode), "order_ready.html", data, order.PublicCode)
	case model.OrderRejected:
		if order.RejectionReason != nil {
			data.RejectionReason = *order.RejectionReason
		}
		utils.SendOrderStatusEmail(order.Customer.Email, utils.OrderSubject("Order rejected", order.PublicCode), "order_rejected.html", data, "")
	}
}

func transitionErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return utils.ErrorResponse(c, 404, constants.ORDER_NOT_FOUND, err)
	case errors.Is(err, ErrMissingReason):
		return utils.ErrorResponse(c, 400, constants.MISSING_REASON, err)
	case errors.Is(err, ErrPaymentNotCompleted):
		return utils.ErrorResponse(c, 400, constants.PAYMENT_NOT_COMPLETED, err)
	case errors.Is(err, ErrInvalidTransition):
		return utils.ErrorResponse(c, 409, constants.INVALID_TRANSITION, err)
	}
	return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
}

// PUT /api/v1/orders/:orderId/status
func UpdateOrderStatus(c *fiber.Ctx) error {
	orderId64, err := strconv.ParseUint(c.Params("orderId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input := c.Locals("input").(model.UpdateOrderStatusInput)
	req := TransitionRequest{
		Status:          input.Status,
		RejectionReason: input.RejectionReason,
		PaymentStatus:   input.PaymentStatus,
		TransactionId:   input.TransactionId,
		PreparationTime: input.PreparationTime,
	}

	order, _, err := ApplyTransition(uint(orderId64), req)
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, 200, order)
}

// POST /api/v1/shops/orders/:orderId/approve
func ApproveOrder(c *fiber.Ctx) error {
	claim, isShop := helper.GetInfoAccountFromToken(c)
	if !isShop || claim.ShopId == nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, errors.New("shop account required"))
	}

	orderId64, err := strconv.ParseUint(c.Params("orderId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	if err := orderBelongsToShop(uint(orderId64), *claim.ShopId); err != nil {
		return transitionErrorResponse(c, err)
	}

	input := c.Locals("input").(model.ApproveOrderInput)
	order, _, err := ApplyTransition(uint(orderId64), TransitionRequest{
		Status:          utils.Ptr(model.OrderApproved),
		PreparationTime: input.PreparationTime,
	})
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, 200, order)
}

// POST /api/v1/shops/orders/:orderId/reject
// Reason comes from the fixed code set; "other" requires custom text, which
// is rejected here before the engine runs.
func RejectOrder(c *fiber.Ctx) error {
	claim, isShop := helper.GetInfoAccountFromToken(c)
	if !isShop || claim.ShopId == nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, errors.New("shop account required"))
	}

	orderId64, err := strconv.ParseUint(c.Params("orderId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	if err := orderBelongsToShop(uint(orderId64), *claim.ShopId); err != nil {
		return transitionErrorResponse(c, err)
	}

	input := c.Locals("input").(model.RejectOrderInput)
	reason, err := ResolveRejectionReason(input.ReasonCode, input.CustomText)
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.MISSING_REASON, err)
	}

	order, _, err := ApplyTransition(uint(orderId64), TransitionRequest{
		Status:          utils.Ptr(model.OrderRejected),
		RejectionReason: &reason,
	})
	if err != nil {
		return transitionErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, 200, order)
}

// ResolveRejectionReason maps a reason code to the stored label. For "other"
// the shopkeeper's own text is the label.
func ResolveRejectionReason(code, customText string) (string, error) {
	label, ok := model.RejectionReasonLabels[code]
	if !ok {
		return "", fmt.Errorf("unknown reason code %q: %w", code, ErrMissingReason)
	}
	if code == "other" {
		if strings.TrimSpace(customText) == "" {
			return "", fmt.Errorf("custom text required for reason %q: %w", code, ErrMissingReason)
		}
		return strings.TrimSpace(customText), nil
	}
	return label, nil
}

func orderBelongsToShop(orderId, shopId uint) error {
	var order model.Order
	if err := database.DB.Select("id", "shop_id").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.ShopID != shopId {
		return fmt.Errorf("order %d belongs to shop %d: %w", orderId, order.ShopID, ErrOrderNotFound)
	}
	return nil
}
