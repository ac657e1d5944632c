package handler

import (
	"context"

	"cinema_factory/events"
	"cinema_factory/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

type PaymentStatusLookup interface {
	FindByMerchantTxnNo(ctx context.Context, merchantTxnNo string) (*model.TransactionRecord, error)
}

// PaymentSocket streams one payment's events to the apply page while the
// browser waits for the gateway.
type PaymentSocket struct {
	Redis  *redis.Client
	Ledger PaymentStatusLookup
}

func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (s *PaymentSocket) Connection(c *websocket.Conn) {
	txnNo := c.Params("txn")
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.Close()
	}()

	if rec, err := s.Ledger.FindByMerchantTxnNo(ctx, txnNo); err == nil {
		c.WriteJSON(fiber.Map{"type": "payment.status", "key": txnNo, "data": rec})
	}

	pubsub := s.Redis.Subscribe(ctx, events.Channel(txnNo))
	defer pubsub.Close()

	// the read loop only notices the client going away
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	channel := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-channel:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Debugw("payment socket closed", "merchantTxnNo", txnNo, "error", err)
				return
			}
		}
	}
}
