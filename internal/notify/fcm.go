package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"brandoraBack/internal/models"
	"brandoraBack/internal/repositories"
)

// Notifier sends order-expiry pushes over FCM. Redis SETNX guards each order
// so a notification goes out at most once even across restarts.
type Notifier struct {
	Messaging *messaging.Client
	Redis     *redis.Client
	Tokens    *repositories.DeviceTokenRepository
	ErrorLog  *log.Logger
}

const notifyGuardTTL = 2 * time.Hour

// OrderExpiringSoon notifies the order's owner that the payment window is
// about to close. Returns without sending when the order was already
// announced or FCM is not configured.
func (n *Notifier) OrderExpiringSoon(ctx context.Context, order models.Order) error {
	if n.Messaging == nil || order.OrderID == "" {
		return nil
	}
	guard := "order_expiry_notified:" + order.OrderID
	set, err := n.Redis.SetNX(ctx, guard, 1, notifyGuardTTL).Result()
	if err != nil {
		return err
	}
	if !set {
		return nil
	}

	tokens, err := n.Tokens.TokensForUser(ctx, order.UserID)
	if err != nil {
		return err
	}
	remaining := order.Remaining(time.Now())
	body := fmt.Sprintf("Your order expires in %dm %ds. Complete the payment to keep your plan.",
		remaining.Minutes+remaining.Hours*60, remaining.Seconds)

	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "Payment window closing",
				Body:  body,
			},
			Data: map[string]string{
				"order_id": order.OrderID,
				"link":     "/billing/orders",
			},
		}
		if _, err := n.Messaging.Send(ctx, msg); err != nil {
			if n.ErrorLog != nil {
				n.ErrorLog.Printf("fcm send for order %s: %v", order.OrderID, err)
			}
			// A dead token must not block the remaining devices.
			if messaging.IsRegistrationTokenNotRegistered(err) {
				_ = n.Tokens.Remove(ctx, token)
			}
		}
	}
	return nil
}
