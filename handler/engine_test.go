package handler

import (
	"fmt"
	"testing"
	"time"

	"github.com/akshad110/campus-eats-sub000/database"
	"github.com/akshad110/campus-eats-sub000/helper"
	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Customer{},
		&model.Shop{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	))
	database.DB = db
}

func seedOrder(t *testing.T, shopId uint, status string, payment *string) *model.Order {
	t.Helper()
	order := &model.Order{
		PublicCode:    helper.NewOrderCode(),
		OrderNumber:   1,
		TokenNumber:   101,
		CustomerID:    1,
		ShopID:        shopId,
		TotalAmount:   100,
		Status:        status,
		PaymentStatus: payment,
	}
	require.NoError(t, database.DB.Create(order).Error)
	return order
}

func TestApplyTransitionApproveIdempotent(t *testing.T) {
	setupTestDB(t)
	order := seedOrder(t, 1, model.OrderPendingApproval, utils.Ptr(model.PaymentPending))

	first, changed, err := ApplyTransition(order.ID, TransitionRequest{Status: utils.Ptr(model.OrderApproved)})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderApproved, first.Status)
	require.NotNil(t, first.EstimatedPickupTime)
	assert.Nil(t, first.PaymentStatus) // approval resets the payment axis

	// a re-submitted approve is a no-op: no new pickup estimate, no
	// updated_at bump that would restart the payment window
	second, changed, err := ApplyTransition(order.ID, TransitionRequest{Status: utils.Ptr(model.OrderApproved)})
	require.NoError(t, err)
	assert.False(t, changed)
	require.NotNil(t, second.EstimatedPickupTime)
	assert.True(t, first.EstimatedPickupTime.Equal(*second.EstimatedPickupTime))
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))
}

func TestApplyTransitionPreparingRequiresPayment(t *testing.T) {
	setupTestDB(t)
	order := seedOrder(t, 1, model.OrderApproved, nil)

	_, _, err := ApplyTransition(order.ID, TransitionRequest{Status: utils.Ptr(model.OrderPreparing)})
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)

	out, changed, err := ApplyTransition(order.ID, TransitionRequest{
		Status:        utils.Ptr(model.OrderPreparing),
		PaymentStatus: utils.Ptr(model.PaymentCompleted),
		TransactionId: utils.Ptr("pay_TEST1"),
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderPreparing, out.Status)
	require.NotNil(t, out.PaymentStatus)
	assert.Equal(t, model.PaymentCompleted, *out.PaymentStatus)
}

func TestApplyTransitionRejectsEarlyPayment(t *testing.T) {
	setupTestDB(t)

	pending := seedOrder(t, 1, model.OrderPendingApproval, utils.Ptr(model.PaymentPending))
	_, _, err := ApplyTransition(pending.ID, TransitionRequest{PaymentStatus: utils.Ptr(model.PaymentCompleted)})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	rejected := seedOrder(t, 1, model.OrderRejected, utils.Ptr(model.PaymentPending))
	_, _, err = ApplyTransition(rejected.ID, TransitionRequest{PaymentStatus: utils.Ptr(model.PaymentCompleted)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyTransitionRejectedNeedsReason(t *testing.T) {
	setupTestDB(t)
	order := seedOrder(t, 1, model.OrderPendingApproval, utils.Ptr(model.PaymentPending))

	_, _, err := ApplyTransition(order.ID, TransitionRequest{Status: utils.Ptr(model.OrderRejected)})
	assert.ErrorIs(t, err, ErrMissingReason)

	out, changed, err := ApplyTransition(order.ID, TransitionRequest{
		Status:          utils.Ptr(model.OrderRejected),
		RejectionReason: utils.Ptr("Out of ingredients"),
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.OrderRejected, out.Status)
	require.NotNil(t, out.RejectionReason)
	assert.Equal(t, "Out of ingredients", *out.RejectionReason)
}

func TestApplyTransitionNoOpKeepsSnapshotShape(t *testing.T) {
	setupTestDB(t)
	order := &model.Order{
		PublicCode:    helper.NewOrderCode(),
		OrderNumber:   1,
		TokenNumber:   101,
		CustomerID:    1,
		ShopID:        1,
		TotalAmount:   60,
		Status:        model.OrderPendingApproval,
		PaymentStatus: utils.Ptr(model.PaymentPending),
		Items: []model.OrderItem{
			{MenuItemId: 1, Name: "Masala Dosa", Quantity: 1, UnitPrice: 60},
		},
	}
	require.NoError(t, database.DB.Create(order).Error)

	out, changed, err := ApplyTransition(order.ID, TransitionRequest{PaymentStatus: utils.Ptr(model.PaymentPending)})
	require.NoError(t, err)
	assert.False(t, changed)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Masala Dosa", out.Items[0].Name)
}

func TestExpireUnpaidOrders(t *testing.T) {
	setupTestDB(t)
	expiryMutex.Lock()
	expiryFired = make(map[uint]bool)
	expiryMutex.Unlock()

	stale := seedOrder(t, 1, model.OrderApproved, nil)
	fresh := seedOrder(t, 1, model.OrderApproved, nil)
	paid := seedOrder(t, 1, model.OrderApproved, utils.Ptr(model.PaymentCompleted))

	past := time.Now().Add(-2 * PaymentWindow)
	require.NoError(t, database.DB.Model(&model.Order{}).
		Where("id IN ?", []uint{stale.ID, paid.ID}).
		UpdateColumn("updated_at", past).Error)

	ExpireUnpaidOrders()

	var out model.Order
	require.NoError(t, database.DB.First(&out, stale.ID).Error)
	assert.Equal(t, model.OrderExpired, out.Status)
	require.NotNil(t, out.PaymentStatus)
	assert.Equal(t, model.PaymentFailed, *out.PaymentStatus)

	out = model.Order{}
	require.NoError(t, database.DB.First(&out, fresh.ID).Error)
	assert.Equal(t, model.OrderApproved, out.Status)

	out = model.Order{}
	require.NoError(t, database.DB.First(&out, paid.ID).Error)
	assert.Equal(t, model.OrderApproved, out.Status)
}

func TestActiveTokensCountsPaidInFlightOnly(t *testing.T) {
	setupTestDB(t)
	const shopId uint = 7

	seedOrder(t, shopId, model.OrderApproved, utils.Ptr(model.PaymentCompleted))
	seedOrder(t, shopId, model.OrderPreparing, utils.Ptr(model.PaymentCompleted))
	seedOrder(t, shopId, model.OrderReady, utils.Ptr(model.PaymentCompleted))
	seedOrder(t, shopId, model.OrderApproved, nil)
	seedOrder(t, shopId, model.OrderApproved, utils.Ptr(model.PaymentPending))
	seedOrder(t, shopId, model.OrderPendingApproval, utils.Ptr(model.PaymentPending))
	seedOrder(t, shopId, model.OrderFulfilled, utils.Ptr(model.PaymentCompleted))
	seedOrder(t, 8, model.OrderApproved, utils.Ptr(model.PaymentCompleted))

	assert.EqualValues(t, 3, ActiveTokens(shopId))
}
