package strategy

import (
	"net/http"

	orderModel "github.com/neoenginex/gemsutopia/internal/domain/order/model"
	orderService "github.com/neoenginex/gemsutopia/internal/domain/order/service"
)

// ConfirmedPayment is what every provider path normalizes into: the
// canonical order row plus the detail the test/live classifier needs.
// Webhook and polling deliveries of the same payment must build identical
// ConfirmedPayments; the unique payment id makes the second delivery a
// no-op at insert time.
type ConfirmedPayment struct {
	Order   *orderModel.Order
	Details orderService.PaymentDetails
}

// PaymentStrategy handles asynchronous provider notifications.
type PaymentStrategy interface {
	// Channel is the method label written into order metadata.
	Channel() string

	// HandleWebhook verifies the notification signature and parses the
	// payload. A nil ConfirmedPayment with nil error means the event type
	// is not one we record (e.g. charge:pending).
	HandleWebhook(body []byte, header http.Header) (*ConfirmedPayment, error)
}
