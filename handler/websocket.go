package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	orderRooms = make(map[string]*orderRoom)
	roomMutex  sync.Mutex
)

// orderRoom holds every live connection for one channel plus the single
// redis subscription feeding them. One subscription per room keeps delivery
// at-most-once per connected client.
type orderRoom struct {
	conns  map[*websocket.Conn]bool
	pubsub *redis.PubSub
}

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// OrderStatusEvent is the payload pushed on every accepted transition.
type OrderStatusEvent struct {
	Type          string       `json:"type"` // order_status_update
	OrderId       uint         `json:"orderId"`
	UserId        uint         `json:"userId"`
	ShopId        uint         `json:"shopId"`
	Status        string       `json:"status"`
	PaymentStatus *string      `json:"paymentStatus"`
	ActiveTokens  int64        `json:"activeTokens"`
	TokenReady    bool         `json:"tokenReady"` // true exactly once, on entry to preparing
	Order         *model.Order `json:"order"`
}

func userChannel(userId uint) string { return fmt.Sprintf("orders:user:%d", userId) }
func shopChannel(shopId uint) string { return fmt.Sprintf("orders:shop:%d", shopId) }

// PublishOrderEvent fans an event out to the customer and shop channels.
// Best-effort: a failed publish is logged and dropped, reconnecting clients
// re-fetch current state over HTTP.
func PublishOrderEvent(event OrderStatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("order event marshal: %v", err)
		return
	}

	ctx := context.Background()
	if err := redisClient.Publish(ctx, userChannel(event.UserId), payload).Err(); err != nil {
		log.Printf("publish %s: %v", userChannel(event.UserId), err)
	}
	if err := redisClient.Publish(ctx, shopChannel(event.ShopId), payload).Err(); err != nil {
		log.Printf("publish %s: %v", shopChannel(event.ShopId), err)
	}
}

func joinRoom(channel string, c *websocket.Conn) {
	roomMutex.Lock()
	defer roomMutex.Unlock()

	room, ok := orderRooms[channel]
	if !ok {
		room = &orderRoom{
			conns:  make(map[*websocket.Conn]bool),
			pubsub: redisClient.Subscribe(context.Background(), channel),
		}
		orderRooms[channel] = room

		go func() {
			for msg := range room.pubsub.Channel() {
				payload := []byte(msg.Payload)

				roomMutex.Lock()
				for conn := range room.conns {
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						conn.Close()
						delete(room.conns, conn)
					}
				}
				roomMutex.Unlock()
			}
		}()
	}
	room.conns[c] = true
}

func leaveRoom(channel string, c *websocket.Conn) {
	roomMutex.Lock()
	defer roomMutex.Unlock()

	room, ok := orderRooms[channel]
	if !ok {
		return
	}
	delete(room.conns, c)
	if len(room.conns) == 0 {
		room.pubsub.Close() // ends the fanout goroutine
		delete(orderRooms, channel)
	}
}

// OrderWebsocket subscribes one connection to a user or shop channel.
// Route params: :kind = "user"|"shop", :id.
func OrderWebsocket(c *websocket.Conn) {
	kind := c.Params("kind")
	id64, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || (kind != "user" && kind != "shop") {
		c.Close()
		return
	}

	var channel string
	if kind == "user" {
		channel = userChannel(uint(id64))
	} else {
		channel = shopChannel(uint(id64))
	}

	joinRoom(channel, c)
	defer func() {
		leaveRoom(channel, c)
		c.Close()
	}()

	// keep the connection open until the client goes away; there is no
	// client -> server protocol on this channel
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
