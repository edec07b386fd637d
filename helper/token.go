package helper

import (
	"math/rand"
	"strings"

	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewOrderCode builds a public order reference like ORD-1A2B3C4D.
func NewOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// NextOrderNumber returns the next sequential order number for a shop. Must
// be called inside the creation transaction so concurrent orders don't
// collide.
func NextOrderNumber(tx *gorm.DB, shopId uint) (int, error) {
	var max int
	err := tx.Model(&model.Order{}).
		Where("shop_id = ?", shopId).
		Select("COALESCE(MAX(order_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// NextTokenNumber picks a random 3-digit pickup token not currently on the
// shop's active queue. Tokens recycle once an order leaves the queue, so
// uniqueness only matters among in-flight orders.
func NextTokenNumber(tx *gorm.DB, shopId uint) (int, error) {
	for attempt := 0; attempt < 20; attempt++ {
		token := 100 + rand.Intn(900)

		var count int64
		err := tx.Model(&model.Order{}).
			Where("shop_id = ? AND token_number = ? AND status IN ?", shopId, token, append([]string{model.OrderPendingApproval}, model.ActiveStatuses...)).
			Count(&count).Error
		if err != nil {
			return 0, err
		}
		if count == 0 {
			return token, nil
		}
	}
	// queue is saturated with 3-digit tokens, extremely unlikely on campus
	return 100 + rand.Intn(900), nil
}
