package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
)

type postedMessage struct {
	Channel  string
	Text     string
	ThreadTS string
}

// fakeSlackAPI answers chat.postMessage with the given body and records requests.
func fakeSlackAPI(t *testing.T, response map[string]interface{}) (*httptest.Server, func() []postedMessage) {
	t.Helper()
	var (
		mu     sync.Mutex
		posted []postedMessage
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postMessage" {
			http.NotFound(w, r)
			return
		}
		require.NoError(t, r.ParseForm())
		mu.Lock()
		posted = append(posted, postedMessage{
			Channel:  r.FormValue("channel"),
			Text:     r.FormValue("text"),
			ThreadTS: r.FormValue("thread_ts"),
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	return server, func() []postedMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]postedMessage(nil), posted...)
	}
}

func TestBotNotifier_Post(t *testing.T) {
	server, posted := fakeSlackAPI(t, map[string]interface{}{
		"ok":      true,
		"channel": "C0123456",
		"ts":      "1710403200.000100",
	})
	n := NewBotNotifier("xoxb-test", server.URL+"/", zaptest.NewLogger(t))

	delivery := n.Post(context.Background(), entity.Message{Channel: "C0123456", Text: "*report*"})
	assert.Equal(t, entity.DeliverySent, delivery.Status)
	assert.Equal(t, "1710403200.000100", delivery.Timestamp)
	assert.True(t, delivery.Threadable())

	delivery = n.Post(context.Background(), entity.Message{Channel: "C0123456", Text: "breakdown", ThreadTS: "1710403200.000100"})
	assert.Equal(t, entity.DeliverySent, delivery.Status)

	msgs := posted()
	require.Len(t, msgs, 2)
	assert.Equal(t, postedMessage{Channel: "C0123456", Text: "*report*"}, msgs[0])
	assert.Equal(t, "1710403200.000100", msgs[1].ThreadTS)
}

func TestBotNotifier_NotOK(t *testing.T) {
	server, posted := fakeSlackAPI(t, map[string]interface{}{
		"ok":    false,
		"error": "channel_not_found",
	})
	n := NewBotNotifier("xoxb-test", server.URL+"/", zaptest.NewLogger(t))

	delivery := n.Post(context.Background(), entity.Message{Channel: "C404", Text: "report"})
	assert.Equal(t, entity.DeliveryFailed, delivery.Status)
	assert.Contains(t, delivery.Reason, "channel_not_found")
	assert.False(t, delivery.Threadable())
	assert.Len(t, posted(), 1)
}

func TestBotNotifier_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL + "/"
	server.Close()

	delivery := NewBotNotifier("xoxb-test", url, nil).Post(context.Background(), entity.Message{Channel: "C1", Text: "x"})
	assert.Equal(t, entity.DeliveryFailed, delivery.Status)
	assert.NotEmpty(t, delivery.Reason)
}

func TestWebhookNotifier_Post(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, server.Client(), zaptest.NewLogger(t))
	delivery := n.Post(context.Background(), entity.Message{Channel: "ignored", Text: "🚨 no data"})

	assert.Equal(t, entity.DeliverySent, delivery.Status)
	assert.Empty(t, delivery.Timestamp)
	assert.False(t, delivery.Threadable())
	assert.Equal(t, "🚨 no data", body["text"])
}

func TestWebhookNotifier_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_token", http.StatusForbidden)
	}))
	defer server.Close()

	delivery := NewWebhookNotifier(server.URL, server.Client(), nil).Post(context.Background(), entity.Message{Text: "x"})
	assert.Equal(t, entity.DeliveryFailed, delivery.Status)
}

func TestDisabledNotifier(t *testing.T) {
	delivery := DisabledNotifier{}.Post(context.Background(), entity.Message{Text: "x"})
	assert.Equal(t, entity.DeliveryFailed, delivery.Status)
}
