package handler

import (
	"testing"

	"github.com/akshad110/campus-eats-sub000/model"
	"github.com/akshad110/campus-eats-sub000/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRejectionReason(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		customText string
		want       string
		wantErr    bool
	}{
		{"fixed code", "food_unavailable", "", "Food unavailable", false},
		{"fixed code ignores custom text", "high_demand", "whatever", "Too many orders right now", false},
		{"other with text", "other", "kitchen flooded", "kitchen flooded", false},
		{"other trims text", "other", "  closing early  ", "closing early", false},
		{"other without text", "other", "", "", true},
		{"other with only spaces", "other", "   ", "", true},
		{"unknown code", "bad_weather", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRejectionReason(tt.code, tt.customText)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingReason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionRequestNormalize(t *testing.T) {
	t.Run("payment_pending folds onto payment axis", func(t *testing.T) {
		req := TransitionRequest{Status: utils.Ptr(model.OrderPaymentPending)}
		req.normalize()
		assert.Nil(t, req.Status)
		require.NotNil(t, req.PaymentStatus)
		assert.Equal(t, model.PaymentPending, *req.PaymentStatus)
	})

	t.Run("payment_completed folds onto payment axis", func(t *testing.T) {
		req := TransitionRequest{Status: utils.Ptr(model.OrderPaymentCompleted)}
		req.normalize()
		assert.Nil(t, req.Status)
		require.NotNil(t, req.PaymentStatus)
		assert.Equal(t, model.PaymentCompleted, *req.PaymentStatus)
	})

	t.Run("payment_failed folds onto payment axis", func(t *testing.T) {
		req := TransitionRequest{Status: utils.Ptr(model.OrderPaymentFailed)}
		req.normalize()
		assert.Nil(t, req.Status)
		require.NotNil(t, req.PaymentStatus)
		assert.Equal(t, model.PaymentFailed, *req.PaymentStatus)
	})

	t.Run("graph statuses pass through", func(t *testing.T) {
		req := TransitionRequest{Status: utils.Ptr(model.OrderReady)}
		req.normalize()
		require.NotNil(t, req.Status)
		assert.Equal(t, model.OrderReady, *req.Status)
		assert.Nil(t, req.PaymentStatus)
	})

	t.Run("explicit payment status is kept", func(t *testing.T) {
		req := TransitionRequest{
			Status:        utils.Ptr(model.OrderPreparing),
			PaymentStatus: utils.Ptr(model.PaymentCompleted),
		}
		req.normalize()
		require.NotNil(t, req.Status)
		assert.Equal(t, model.OrderPreparing, *req.Status)
		assert.Equal(t, model.PaymentCompleted, *req.PaymentStatus)
	})

	t.Run("empty request stays empty", func(t *testing.T) {
		req := TransitionRequest{}
		req.normalize()
		assert.Nil(t, req.Status)
		assert.Nil(t, req.PaymentStatus)
	})
}
