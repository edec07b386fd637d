package model

import "time"

// Order statuses. Only the statuses in the transition graph below are ever
// assigned by the lifecycle engine; the payment_* values are accepted on the
// wire for compatibility and carried on the payment axis instead.
const (
	OrderPendingApproval  = "pending_approval"
	OrderApproved         = "approved"
	OrderRejected         = "rejected"
	OrderPaymentPending   = "payment_pending"
	OrderPaymentCompleted = "payment_completed"
	OrderPaymentFailed    = "payment_failed"
	OrderPreparing        = "preparing"
	OrderReady            = "ready"
	OrderFulfilled        = "fulfilled"
	OrderCancelled        = "cancelled"
	OrderExpired          = "expired"
)

// Payment statuses. The zero state is NULL (no attempt yet), represented as a
// nil pointer on the order.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// statusGraph enumerates every legal status edge. Terminal statuses have no
// entry. approved -> preparing additionally requires completed payment,
// enforced by the engine, not here.
var statusGraph = map[string][]string{
	OrderPendingApproval: {OrderApproved, OrderRejected},
	OrderApproved:        {OrderPreparing, OrderExpired, OrderCancelled},
	OrderPreparing:       {OrderReady},
	OrderReady:           {OrderFulfilled, OrderCancelled},
}

func CanTransition(from, to string) bool {
	for _, next := range statusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminalStatus(s string) bool {
	switch s {
	case OrderRejected, OrderFulfilled, OrderCancelled, OrderExpired:
		return true
	}
	return false
}

// ActiveStatuses are the in-flight statuses counted by the queue aggregator.
var ActiveStatuses = []string{OrderApproved, OrderPreparing, OrderReady}

// CanTransitionPayment validates the payment sub-axis against the order
// status. from == nil is the NULL state before any payment attempt; approval
// resets to it. The gateway verify path jumps NULL -> completed directly
// (the "Pay Now" flow), the screenshot path goes through pending. completed
// requires an order already approved or further along; terminal orders admit
// no payment change except completed -> refunded once cancelled.
func CanTransitionPayment(from *string, to string, orderStatus string) bool {
	if from != nil && *from == to {
		return true // idempotent re-submit
	}
	cur := ""
	if from != nil {
		cur = *from
	}
	if cur == PaymentCompleted {
		// completed is one-way; refund only once the order itself is cancelled
		return to == PaymentRefunded && orderStatus == OrderCancelled
	}
	if IsTerminalStatus(orderStatus) {
		return false
	}

	completedOk := orderStatus == OrderApproved || orderStatus == OrderPreparing || orderStatus == OrderReady
	switch cur {
	case "":
		if to == PaymentCompleted {
			return completedOk
		}
		return to == PaymentPending || to == PaymentFailed
	case PaymentPending:
		if to == PaymentCompleted {
			return completedOk
		}
		return to == PaymentFailed
	}
	return false
}

// Rejection reason codes and the labels stored on the order.
var RejectionReasonLabels = map[string]string{
	"food_unavailable": "Food unavailable",
	"time_up":          "Shop is closing soon",
	"ingredients_out":  "Out of ingredients",
	"equipment_issue":  "Equipment issue",
	"staff_shortage":   "Staff shortage",
	"high_demand":      "Too many orders right now",
	"other":            "",
}

type Order struct {
	DTO
	PublicCode  string `gorm:"unique;size:20" json:"publicCode"` // ORD-XXXXXXXX
	OrderNumber int    `gorm:"not null" json:"orderNumber"`      // sequential per shop
	TokenNumber int    `gorm:"not null" json:"tokenNumber"`      // pickup number shown on the queue board

	CustomerID uint      `gorm:"index;not null" json:"customerId"`
	Customer   *Customer `json:"customer,omitempty"`
	ShopID     uint      `gorm:"index;not null" json:"shopId"`
	Shop       Shop      `json:"shop"`

	Items       []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`
	Notes       string      `json:"notes"`

	Status        string  `gorm:"not null;default:'pending_approval';index" json:"status"`
	PaymentStatus *string `gorm:"index" json:"paymentStatus"` // nil = no attempt yet
	TransactionID *string `json:"transactionId,omitempty"`
	ScreenshotUrl *string `json:"screenshotUrl,omitempty"`

	PreparationTime     *int       `json:"preparationTime,omitempty"` // minutes, set at approval
	EstimatedPickupTime *time.Time `json:"estimatedPickupTime,omitempty"`
	RejectionReason     *string    `json:"rejectionReason,omitempty"`

	Rating      *int    `json:"rating,omitempty"`
	Review      *string `json:"review,omitempty"`
	ReviewCount int     `gorm:"default:0" json:"-"`
}

// OrderItem is a snapshot taken at order creation. UnitPrice is never
// re-derived from the live menu afterwards.
type OrderItem struct {
	DTO
	OrderId    uint    `gorm:"index;not null" json:"orderId"`
	MenuItemId uint    `gorm:"not null" json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`
}

type CreateOrderItemInput struct {
	MenuItemId uint `json:"menuItemId" validate:"required,gt=0"`
	Quantity   int  `json:"quantity" validate:"required,gt=0,lte=20"`
}

type CreateOrderInput struct {
	ShopId uint                   `json:"shopId" validate:"required,gt=0"`
	Items  []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	Notes  string                 `json:"notes" validate:"omitempty,max=300"`
}

// UpdateOrderStatusInput is the single transition request body. At least one
// of Status/PaymentStatus must be present.
type UpdateOrderStatusInput struct {
	Status          *string `json:"status" validate:"omitempty,oneof=pending_approval approved rejected payment_pending payment_completed payment_failed preparing ready fulfilled cancelled expired"`
	RejectionReason *string `json:"rejection_reason"`
	PaymentStatus   *string `json:"payment_status" validate:"omitempty,oneof=pending completed failed refunded"`
	TransactionId   *string `json:"transaction_id"`
	PreparationTime *int    `json:"preparation_time" validate:"omitempty,gt=0,lte=120"`
}

type ApproveOrderInput struct {
	PreparationTime *int `json:"preparationTime" validate:"omitempty,gt=0,lte=120"`
}

type RejectOrderInput struct {
	ReasonCode string `json:"reasonCode" validate:"required,oneof=food_unavailable time_up ingredients_out equipment_issue staff_shortage high_demand other"`
	CustomText string `json:"customText" validate:"omitempty,max=300"`
}

type ReviewOrderInput struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"omitempty,max=500"`
}
