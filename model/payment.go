package model

// Payment is one gateway attempt against an order. An order can accumulate
// several attempts (failed retry, screenshot fallback) but at most one ends
// up CAPTURED.
type Payment struct {
	DTO
	OrderId     uint    `gorm:"index;not null" json:"orderId"`
	Amount      float64 `gorm:"not null" json:"amount"`
	PaymentCode string  `gorm:"unique" json:"paymentCode"` // our reference, sent to the gateway as the receipt
	GatewayRef  string  `gorm:"index" json:"gatewayRef"`   // razorpay order id
	Status      string  `gorm:"default:'CREATED'" json:"status"`
	Method      string  `json:"method"` // RAZORPAY, UPI_SCREENSHOT

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type CreatePaymentInput struct {
	OrderId uint   `json:"orderId" validate:"required,gt=0"`
	Method  string `json:"method" validate:"required,oneof=RAZORPAY UPI_SCREENSHOT"`
}

type VerifyPaymentInput struct {
	RazorpayOrderId   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentId string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type RazorpayConfig struct {
	KeyID      string
	KeySecret  string
	WebhookKey string
	BaseURL    string
}

type RazorpayOrderRequest struct {
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type RazorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type PaymentScreenshotInput struct {
	Url string `json:"url" validate:"required,url"`
}
