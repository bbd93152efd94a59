package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subscribe 不经过 WebSocket 直接挂一个订阅者
func subscribe(h *LiveHub, topic string, buffer int) *LiveClient {
	c := &LiveClient{hub: h, send: make(chan []byte, buffer), topic: topic, userID: "test"}
	h.add(c)
	return c
}

func nextEvent(t *testing.T, c *LiveClient) LiveEvent {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "subscriber was closed")
		var ev LiveEvent
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no live event received")
	}
	return LiveEvent{}
}

func TestLiveHubWebSocketDelivery(t *testing.T) {
	hub := NewLiveHub(nil)
	topic := ThreadTopic("t1")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, hub.ServeWs(w, r, topic, "student-1"))
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers(topic) == 1 }, time.Second, 10*time.Millisecond)

	ctx := context.Background()
	hub.Publish(ctx, ThreadTopic("other"), EventPostCreated, map[string]string{"id": "p0"})
	hub.Publish(ctx, topic, EventPostCreated, map[string]string{"id": "p1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev LiveEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventPostCreated, ev.Type)
	assert.Equal(t, topic, ev.Topic)
	assert.Equal(t, map[string]any{"id": "p1"}, ev.Data)

	hub.Stop()
	assert.Zero(t, hub.Subscribers(topic))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestLiveHubDropsClosedConnections(t *testing.T) {
	hub := NewLiveHub(nil)
	topic := ScenarioTopic("s1")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, hub.ServeWs(w, r, topic, "student-1"))
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Subscribers(topic) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers(topic) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestLiveHubDropsSlowSubscriber(t *testing.T) {
	hub := NewLiveHub(nil)
	topic := ThreadTopic("busy")
	c := subscribe(hub, topic, 1)
	ctx := context.Background()

	hub.Publish(ctx, topic, EventPostCreated, 1)
	hub.Publish(ctx, topic, EventPostCreated, 2)
	assert.Zero(t, hub.Subscribers(topic))

	ev := nextEvent(t, c)
	assert.EqualValues(t, 1, ev.Data)
	_, ok := <-c.send
	assert.False(t, ok)

	// 已移除的订阅者再次移除不会重复关闭
	hub.remove(c)
}

func TestNilLiveHubIsNoop(t *testing.T) {
	var hub *LiveHub
	hub.Publish(context.Background(), ThreadTopic("t1"), EventPostCreated, nil)
	hub.Run(context.Background())
	hub.Stop()
	assert.Zero(t, hub.Subscribers(ThreadTopic("t1")))
}

func TestLiveHubFallsBackToLocalDeliveryWithoutRelay(t *testing.T) {
	hub := NewLiveHub(deadRedis(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub.Run(ctx)
	require.NoError(t, ctx.Err(), "Run should return as soon as the subscription fails")

	c := subscribe(hub, ThreadTopic("t1"), 4)
	hub.Publish(ctx, ThreadTopic("t1"), EventThreadStatus, map[string]string{"status": "closed"})
	assert.Equal(t, EventThreadStatus, nextEvent(t, c).Type)
}

func TestForumPublishesRepliesAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	thread, err := f.forum.CreateThread(ctx, student, NewThread{Title: "Zone transfer refused", Content: "AXFR returns REFUSED"})
	require.NoError(t, err)
	topic, err := f.forum.LiveTopic(ctx, thread.ID)
	require.NoError(t, err)
	c := subscribe(f.live, topic, 4)

	reply, err := f.forum.Reply(ctx, student2, thread.ID, NewPost{Content: "Check allow-transfer"})
	require.NoError(t, err)
	ev := nextEvent(t, c)
	assert.Equal(t, EventPostCreated, ev.Type)
	assert.Equal(t, reply.ID, ev.Data.(map[string]any)["id"])

	_, err = f.forum.SetThreadStatus(ctx, thread.ID, model.ThreadClosed)
	require.NoError(t, err)
	ev = nextEvent(t, c)
	assert.Equal(t, EventThreadStatus, ev.Type)
	assert.Equal(t, string(model.ThreadClosed), ev.Data.(map[string]any)["status"])

	_, err = f.forum.LiveTopic(ctx, "missing")
	assert.Error(t, err)
}

func TestScenarioRevealPublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sc, err := f.scenarios.Create(ctx, newScenario(model.StatusPublished))
	require.NoError(t, err)

	topic, err := f.scenarios.LiveTopic(ctx, student, sc.ID)
	require.NoError(t, err)
	c := subscribe(f.live, topic, 4)

	_, err = f.scenarios.RevealEvent(ctx, sc.ID, sc.Timeline[0].ID)
	require.NoError(t, err)
	ev := nextEvent(t, c)
	assert.Equal(t, EventScenarioEvent, ev.Type)
	assert.Equal(t, sc.Timeline[0].Title, ev.Data.(map[string]any)["title"])

	draft, err := f.scenarios.Create(ctx, newScenario(model.StatusDraft))
	require.NoError(t, err)
	_, err = f.scenarios.LiveTopic(ctx, student, draft.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	draftSub := subscribe(f.live, ScenarioTopic(draft.ID), 4)
	_, err = f.scenarios.RevealEvent(ctx, draft.ID, draft.Timeline[0].ID)
	require.NoError(t, err)
	assert.Empty(t, draftSub.send, "draft scenarios are not broadcast")
}
