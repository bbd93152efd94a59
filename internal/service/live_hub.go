package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"edu_platform_backend/pkg/logger"
	"edu_platform_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	liveSendBuffer = 64
	liveChannel    = "edu:live"
)

// 推送事件类型
const (
	EventPostCreated   = "post.created"
	EventThreadStatus  = "thread.status"
	EventScenarioEvent = "scenario.event"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func ThreadTopic(id string) string   { return "thread:" + id }
func ScenarioTopic(id string) string { return "scenario:" + id }

// LiveEvent 下发给订阅者的消息
type LiveEvent struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  any    `json:"data"`
}

type LiveClient struct {
	hub    *LiveHub
	conn   *websocket.Conn
	send   chan []byte
	topic  string
	userID string
}

// readPump 客户端只订阅不上行，读循环只负责心跳和断线检测
func (c *LiveClient) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn("WebSocket unexpected close", zap.Error(err), zap.String("userId", c.userID))
			}
			return
		}
	}
}

func (c *LiveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// LiveHub 按主题（论坛主题、演练场景）推送实时事件。
// 配置了 Redis 且 Run 已订阅成功时经 Redis 频道广播到所有实例，否则只在本实例内分发。
// nil 的 *LiveHub 可以直接调用，Publish 不做任何事。
type LiveHub struct {
	Redis *redis.Client

	mu     sync.RWMutex
	topics map[string]map[*LiveClient]struct{}
	relay  atomic.Bool
}

func NewLiveHub(rdb *redis.Client) *LiveHub {
	return &LiveHub{Redis: rdb, topics: make(map[string]map[*LiveClient]struct{})}
}

func (h *LiveHub) add(c *LiveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.topics[c.topic]
	if !ok {
		set = make(map[*LiveClient]struct{})
		h.topics[c.topic] = set
	}
	set[c] = struct{}{}
	monitoring.LiveConnections.Inc()
}

// remove 可重复调用，send 只关闭一次
func (h *LiveHub) remove(c *LiveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.topics[c.topic]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.topics, c.topic)
	}
	close(c.send)
	monitoring.LiveConnections.Dec()
}

// Subscribers 当前实例上某个主题的连接数
func (h *LiveHub) Subscribers(topic string) int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// ServeWs 升级连接并订阅 topic；升级失败时 upgrader 已写出响应
func (h *LiveHub) ServeWs(w http.ResponseWriter, r *http.Request, topic, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &LiveClient{hub: h, conn: conn, send: make(chan []byte, liveSendBuffer), topic: topic, userID: userID}
	h.add(c)
	logger.Log.Debug("Live subscriber connected", zap.String("topic", topic), zap.String("userId", userID))

	go c.writePump()
	go c.readPump()
	return nil
}

// Publish 推送失败只记日志，不影响调用方的写操作
func (h *LiveHub) Publish(ctx context.Context, topic, eventType string, data any) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(LiveEvent{Type: eventType, Topic: topic, Data: data})
	if err != nil {
		logger.Log.Error("Failed to encode live event", zap.String("type", eventType), zap.Error(err))
		return
	}
	monitoring.LiveMessages.WithLabelValues(eventType).Inc()

	if h.Redis != nil && h.relay.Load() {
		err := h.Redis.Publish(ctx, liveChannel, payload).Err()
		if err == nil {
			return
		}
		logger.Log.Warn("Live relay publish failed, delivering locally", zap.Error(err))
	}
	h.deliver(topic, payload)
}

// deliver 发送缓冲已满的慢连接直接断开
func (h *LiveHub) deliver(topic string, payload []byte) {
	var slow []*LiveClient
	h.mu.RLock()
	for c := range h.topics[topic] {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger.Log.Warn("Dropping slow live subscriber", zap.String("topic", topic), zap.String("userId", c.userID))
		h.remove(c)
	}
}

// Run 订阅 Redis 频道，把其他实例发布的事件分发给本实例的连接；ctx 结束时返回
func (h *LiveHub) Run(ctx context.Context) {
	if h == nil || h.Redis == nil {
		return
	}
	pubsub := h.Redis.Subscribe(ctx, liveChannel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		logger.Log.Warn("Live relay unavailable, using local delivery", zap.Error(err))
		return
	}
	h.relay.Store(true)
	defer h.relay.Store(false)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev struct {
				Topic string `json:"topic"`
			}
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Log.Error("Live relay message decode failed", zap.Error(err))
				continue
			}
			h.deliver(ev.Topic, []byte(msg.Payload))
		}
	}
}

// Stop 关闭所有连接
func (h *LiveHub) Stop() {
	if h == nil {
		return
	}
	h.mu.Lock()
	closed := 0
	for topic, set := range h.topics {
		for c := range set {
			close(c.send)
			closed++
		}
		delete(h.topics, topic)
	}
	h.mu.Unlock()

	monitoring.LiveConnections.Set(0)
	logger.Log.Info("Live hub stopped", zap.Int("closedConnections", closed))
}
