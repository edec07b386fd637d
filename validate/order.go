package validate

import (
	"errors"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return parseBody[model.CreateOrderInput]
}

// UpdateOrderStatus enforces the request shape before the engine runs: at
// least one axis present, and a reason whenever the target is rejected.
func UpdateOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.Status == nil && input.PaymentStatus == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT,
				errors.New("one of status or payment_status is required"))
		}
		if input.Status != nil && *input.Status == model.OrderRejected {
			if input.RejectionReason == nil || *input.RejectionReason == "" {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_REASON,
					errors.New("rejection_reason is required when status is rejected"))
			}
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ApproveOrder() fiber.Handler {
	return parseBody[model.ApproveOrderInput]
}

func RejectOrder() fiber.Handler {
	return parseBody[model.RejectOrderInput]
}

func ReviewOrder() fiber.Handler {
	return parseBody[model.ReviewOrderInput]
}

func PaymentScreenshot() fiber.Handler {
	return parseBody[model.PaymentScreenshotInput]
}
