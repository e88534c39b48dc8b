package services

import (
	"context"
	"log"
	"time"

	"github.com/priyathamsetti1/aditya-foods/entity"
	"github.com/priyathamsetti1/aditya-foods/repository"
)

// PushSender delivers one push to one device token. pkg/push is the Expo
// implementation.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]any) error
}

// OrderFeed streams order events to connected admin consoles (ws package).
type OrderFeed interface {
	Publish(adminID uint, payload any)
}

// NotificationService tells the restaurant about a new order: one push per
// registered device, plus the live WebSocket feed. Strictly best-effort;
// every failure is logged and swallowed, order creation never depends on it.
type NotificationService struct {
	TokenRepo *repository.TokenRepository
	Sender    PushSender
	Feed      OrderFeed
}

func NewNotificationService(tr *repository.TokenRepository, sender PushSender, feed OrderFeed) *NotificationService {
	return &NotificationService{TokenRepo: tr, Sender: sender, Feed: feed}
}

// OrderSummary is what the admin console receives on the feed.
type OrderSummary struct {
	ID      uint      `json:"id"`
	UserID  uint      `json:"ordered_person_id"`
	AdminID uint      `json:"admin_id"`
	Total   int64     `json:"amount"`
	Status  string    `json:"status"`
	Placed  time.Time `json:"orderDate"`
}

func (s *NotificationService) NotifyNewOrder(ctx context.Context, order *entity.Order) {
	if s.Feed != nil {
		s.Feed.Publish(order.AdminID, OrderSummary{
			ID:      order.ID,
			UserID:  order.UserID,
			AdminID: order.AdminID,
			Total:   order.Total,
			Status:  order.Status,
			Placed:  order.OrderDate,
		})
	}

	if s.Sender == nil {
		return
	}
	// Pushes are best-effort and slow at worst; they must not hold up the
	// order response.
	go s.pushToDevices(ctx, order.AdminID)
}

func (s *NotificationService) pushToDevices(ctx context.Context, adminID uint) {
	tokens, err := s.TokenRepo.TokensForAdmin(adminID)
	if err != nil {
		log.Printf("notify: token lookup for admin %d failed: %v", adminID, err)
		return
	}

	for _, token := range tokens {
		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := s.Sender.Send(sendCtx, token, "New Order Received", "You have a new order!",
			map[string]any{"screen": "PendingOrders"})
		cancel()
		if err != nil {
			log.Printf("notify: push to %s failed: %v", token, err)
		}
	}
}
