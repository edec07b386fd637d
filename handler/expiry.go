package handler

import (
	"log"
	"sync"
	"time"

	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/robfig/cron/v3"
)

var (
	expiryFired  = make(map[uint]bool)
	expiryMutex  sync.Mutex
	reconcileJob *cron.Cron
)

// StaleReadyTimeout is how long a ready order may sit uncollected before the
// reconciler cancels it.
const StaleReadyTimeout = 2 * time.Hour

// StartExpireOrderWorker sweeps approved-but-unpaid orders past the payment
// window and expires them through the engine. Server-owned so expiry fires
// whether or not a customer tab is open.
func StartExpireOrderWorker() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			ExpireUnpaidOrders()
		}
	}()
}

// ExpireUnpaidOrders runs one sweep. Errors are logged and the next tick
// carries on; the sweep never takes the process down.
func ExpireUnpaidOrders() {
	deadline := time.Now().Add(-PaymentWindow)

	var orders []model.Order
	err := database.DB.
		Select("id").
		Where("status = ? AND (payment_status IS NULL OR payment_status != ?) AND updated_at < ?",
			model.OrderApproved, model.PaymentCompleted, deadline).
		Find(&orders).Error
	if err != nil {
		log.Printf("expiry sweep: %v", err)
		return
	}

	for _, order := range orders {
		expiryMutex.Lock()
		if expiryFired[order.ID] {
			expiryMutex.Unlock()
			continue
		}
		expiryFired[order.ID] = true
		expiryMutex.Unlock()

		// message-passing into the engine; a racing payment wins or loses
		// at the row lock, never both. The engine marks the payment failed
		// alongside the expiry.
		_, changed, err := ApplyTransition(order.ID, TransitionRequest{
			Status: utils.Ptr(model.OrderExpired),
		})
		if err != nil {
			// lost the race to a payment or another instance; forget the
			// guard so a later sweep can re-check
			expiryMutex.Lock()
			delete(expiryFired, order.ID)
			expiryMutex.Unlock()
			log.Printf("expire order %d: %v", order.ID, err)
			continue
		}
		if changed {
			log.Printf("order %d expired after unpaid approval window", order.ID)
		}
	}
}

// StartOrderReconciler runs every 5 minutes: cancels ready orders nobody
// collected and clears the expiry guard of finished orders.
func StartOrderReconciler() {
	reconcileJob = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := reconcileJob.AddFunc("*/5 * * * *", reconcileStaleOrders)
	if err != nil {
		log.Printf("reconciler init: %v", err)
		return
	}

	reconcileJob.Start()
	log.Println("order reconciler started (every 5 minutes)")
}

func StopOrderReconciler() {
	if reconcileJob != nil {
		reconcileJob.Stop()
		log.Println("order reconciler stopped")
	}
}

func reconcileStaleOrders() {
	cutoff := time.Now().Add(-StaleReadyTimeout)

	var orders []model.Order
	err := database.DB.
		Select("id").
		Where("status = ? AND updated_at < ?", model.OrderReady, cutoff).
		Find(&orders).Error
	if err != nil {
		log.Printf("reconcile sweep: %v", err)
		return
	}

	for _, order := range orders {
		if _, _, err := ApplyTransition(order.ID, TransitionRequest{
			Status: utils.Ptr(model.OrderCancelled),
		}); err != nil {
			log.Printf("cancel uncollected order %d: %v", order.ID, err)
		}
	}

	// drop guard entries for orders that left approved long ago
	expiryMutex.Lock()
	for id := range expiryFired {
		var count int64
		database.DB.Model(&model.Order{}).
			Where("id = ? AND status = ?", id, model.OrderApproved).
			Count(&count)
		if count == 0 {
			delete(expiryFired, id)
		}
	}
	expiryMutex.Unlock()
}
