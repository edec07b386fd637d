package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to approved", OrderPendingApproval, OrderApproved, true},
		{"pending to rejected", OrderPendingApproval, OrderRejected, true},
		{"pending to preparing skips approval", OrderPendingApproval, OrderPreparing, false},
		{"approved to preparing", OrderApproved, OrderPreparing, true},
		{"approved to expired", OrderApproved, OrderExpired, true},
		{"approved to cancelled", OrderApproved, OrderCancelled, true},
		{"approved back to pending", OrderApproved, OrderPendingApproval, false},
		{"preparing to ready", OrderPreparing, OrderReady, true},
		{"preparing to cancelled", OrderPreparing, OrderCancelled, false},
		{"ready to fulfilled", OrderReady, OrderFulfilled, true},
		{"ready to cancelled", OrderReady, OrderCancelled, true},
		{"fulfilled is terminal", OrderFulfilled, OrderCancelled, false},
		{"rejected is terminal", OrderRejected, OrderApproved, false},
		{"expired is terminal", OrderExpired, OrderApproved, false},
		{"cancelled is terminal", OrderCancelled, OrderReady, false},
		{"unknown status", "shipped", OrderReady, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for _, s := range []string{OrderRejected, OrderFulfilled, OrderCancelled, OrderExpired} {
		assert.True(t, IsTerminalStatus(s), s)
	}
	for _, s := range []string{OrderPendingApproval, OrderApproved, OrderPreparing, OrderReady} {
		assert.False(t, IsTerminalStatus(s), s)
	}
}

func TestCanTransitionPayment(t *testing.T) {
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name        string
		from        *string
		to          string
		orderStatus string
		want        bool
	}{
		{"null to pending", nil, PaymentPending, OrderApproved, true},
		{"null to completed via gateway", nil, PaymentCompleted, OrderPreparing, true},
		{"null to failed", nil, PaymentFailed, OrderApproved, true},
		{"null to refunded", nil, PaymentRefunded, OrderCancelled, false},
		{"completed blocked before approval", nil, PaymentCompleted, OrderPendingApproval, false},
		{"pending completed blocked before approval", ptr(PaymentPending), PaymentCompleted, OrderPendingApproval, false},
		{"completed blocked on rejected order", ptr(PaymentPending), PaymentCompleted, OrderRejected, false},
		{"completed allowed on ready order", ptr(PaymentPending), PaymentCompleted, OrderReady, true},
		{"pending blocked on expired order", nil, PaymentPending, OrderExpired, false},
		{"failed blocked on fulfilled order", ptr(PaymentPending), PaymentFailed, OrderFulfilled, false},
		{"pending to completed", ptr(PaymentPending), PaymentCompleted, OrderPreparing, true},
		{"pending to failed", ptr(PaymentPending), PaymentFailed, OrderApproved, true},
		{"pending to refunded", ptr(PaymentPending), PaymentRefunded, OrderCancelled, false},
		{"completed to pending", ptr(PaymentCompleted), PaymentPending, OrderPreparing, false},
		{"completed to failed", ptr(PaymentCompleted), PaymentFailed, OrderPreparing, false},
		{"refund requires cancelled order", ptr(PaymentCompleted), PaymentRefunded, OrderReady, false},
		{"refund on cancelled order", ptr(PaymentCompleted), PaymentRefunded, OrderCancelled, true},
		{"failed is a dead end", ptr(PaymentFailed), PaymentCompleted, OrderApproved, false},
		{"idempotent pending", ptr(PaymentPending), PaymentPending, OrderApproved, true},
		{"idempotent completed", ptr(PaymentCompleted), PaymentCompleted, OrderPreparing, true},
		{"idempotent failed", ptr(PaymentFailed), PaymentFailed, OrderApproved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionPayment(tt.from, tt.to, tt.orderStatus))
		})
	}
}

func TestRejectionReasonLabels(t *testing.T) {
	for _, code := range []string{"food_unavailable", "time_up", "ingredients_out", "equipment_issue", "staff_shortage", "high_demand"} {
		label, ok := RejectionReasonLabels[code]
		assert.True(t, ok, code)
		assert.NotEmpty(t, label, code)
	}

	// "other" is known but has no canned label; the shopkeeper supplies it
	label, ok := RejectionReasonLabels["other"]
	assert.True(t, ok)
	assert.Empty(t, label)

	_, ok = RejectionReasonLabels["bad_weather"]
	assert.False(t, ok)
}
