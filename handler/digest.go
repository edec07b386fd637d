package handler

import (
	"fmt"
	"log"
	"time"

	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/go-co-op/gocron/v2"
)

var digestScheduler gocron.Scheduler

// SendDailyDigests mails every shop its previous day's numbers. Runs just
// after the campus day closes.
func SendDailyDigests() {
	var shops []model.Shop
	if err := database.DB.Find(&shops).Error; err != nil {
		log.Printf("daily digest: load shops: %v", err)
		return
	}

	yesterday := time.Now().AddDate(0, 0, -1)
	for _, shop := range shops {
		if shop.Email == "" {
			continue
		}

		stats := ComputeShopStats(shop.ID, yesterday)
		data := utils.OrderEmailData{
			ShopName:    shop.Name,
			Items:       fmt.Sprintf("%d orders", stats.TodayOrders),
			TotalAmount: stats.TodayRevenue,
		}
		utils.SendOrderStatusEmail(
			shop.Email,
			fmt.Sprintf("Daily summary for %s - %s", shop.Name, yesterday.Format("02/01/2006")),
			"daily_digest.html",
			data,
			"",
		)
	}
	log.Printf("daily digest queued for %d shops", len(shops))
}

func StartDailyDigestScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("IST", 5*3600+1800)),
	)
	if err != nil {
		log.Fatal(err)
	}

	digestScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 15, 0),
			),
		),
		gocron.NewTask(SendDailyDigests),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("daily digest scheduler started (00:15 IST)")
}

func StopDailyDigestScheduler() {
	if digestScheduler != nil {
		_ = digestScheduler.Shutdown()
	}
}
