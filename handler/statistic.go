package handler

import (
	"time"

	"github.com/akshad110/campus-eats-sub000/constants"
	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

type ShopStats struct {
	TodayOrders   int64   `json:"todayOrders"`
	TodayRevenue  float64 `json:"todayRevenue"`
	PendingOrders int64   `json:"pendingOrders"`
	ActiveTokens  int64   `json:"activeTokens"`
	OrdersGrowth  float64 `json:"ordersGrowth"`  // % vs yesterday
	RevenueGrowth float64 `json:"revenueGrowth"` // % vs yesterday

	StatusBreakdown map[string]int64 `json:"statusBreakdown"`
}

// ComputeShopStats builds the dashboard numbers for one shop. Revenue counts
// fulfilled orders only.
func ComputeShopStats(shopId uint, now time.Time) ShopStats {
	db := database.DB
	var stats ShopStats

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	db.Model(&model.Order{}).
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopId, todayStart, todayEnd).
		Count(&stats.TodayOrders)

	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE shop_id = ? AND status = 'fulfilled'
          AND created_at >= ? AND created_at < ?
    `, shopId, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Model(&model.Order{}).
		Where("shop_id = ? AND status = ?", shopId, model.OrderPendingApproval).
		Count(&stats.PendingOrders)

	stats.ActiveTokens = ActiveTokens(shopId)

	yesterdayStart := todayStart.AddDate(0, 0, -1)

	var yesterdayOrders int64
	var yesterdayRevenue float64
	db.Model(&model.Order{}).
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopId, yesterdayStart, todayStart).
		Count(&yesterdayOrders)
	db.Raw(`
        SELECT COALESCE(SUM(total_amount), 0)
        FROM orders
        WHERE shop_id = ? AND status = 'fulfilled'
          AND created_at >= ? AND created_at < ?
    `, shopId, yesterdayStart, todayStart).Scan(&yesterdayRevenue)

	stats.OrdersGrowth = utils.CalculateGrowth(float64(stats.TodayOrders), float64(yesterdayOrders))
	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, yesterdayRevenue)

	stats.StatusBreakdown = make(map[string]int64)
	rows, err := db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopId, todayStart, todayEnd).
		Group("status").Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var status string
			var count int64
			if err := rows.Scan(&status, &count); err == nil {
				stats.StatusBreakdown[status] = count
			}
		}
	}

	return stats
}

// GET /api/v1/shops/:shopId/stats
func GetShopStats(c *fiber.Ctx) error {
	shopId, err := requireOwnShop(c)
	if err != nil {
		return utils.ErrorResponse(c, 403, constants.NOT_SHOP_OWNER, err)
	}

	return utils.SuccessResponse(c, 200, ComputeShopStats(shopId, time.Now()))
}
