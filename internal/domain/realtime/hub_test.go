package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handyhub/internal/domain"
	"handyhub/internal/domain/booking"
	"handyhub/internal/pkg/jwt"
)

func attach(h *Hub, a domain.Actor, buffer int) *client {
	c := &client{actor: a, send: make(chan []byte, buffer)}
	h.register(c)
	return c
}

func drain(c *client) []Event {
	var out []Event
	for {
		select {
		case msg := <-c.send:
			var ev Event
			_ = json.Unmarshal(msg, &ev)
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestBookingChangedRecipients(t *testing.T) {
	h := NewHub(nil)
	customer := attach(h, domain.Actor{ID: 10, Role: domain.RoleCustomer}, 4)
	stranger := attach(h, domain.Actor{ID: 11, Role: domain.RoleCustomer}, 4)
	assigned := attach(h, domain.Actor{ID: 20, Role: domain.RoleHandyman}, 4)
	otherHM := attach(h, domain.Actor{ID: 21, Role: domain.RoleHandyman}, 4)
	admin := attach(h, domain.Actor{ID: 1, Role: domain.RoleAdmin}, 4)
	adminTab := attach(h, domain.Actor{ID: 1, Role: domain.RoleAdmin}, 4)

	hid := int64(20)
	h.BookingChanged(booking.Booking{ID: 5, CustomerID: 10, HandymanID: &hid, Status: booking.StatusAccepted}, 3)

	for _, c := range []*client{customer, assigned, admin, adminTab} {
		evs := drain(c)
		require.Len(t, evs, 1, "user %d", c.actor.ID)
		assert.Equal(t, EventBookingChanged, evs[0].Type)
		assert.Equal(t, int64(5), evs[0].Booking.ID)
		assert.Equal(t, int64(3), evs[0].PendingBookings)
	}
	assert.Empty(t, drain(stranger))
	assert.Empty(t, drain(otherHM))
}

func TestSlowClientDropsEvents(t *testing.T) {
	h := NewHub(nil)
	slow := attach(h, domain.Actor{ID: 1, Role: domain.RoleAdmin}, 1)

	done := make(chan struct{})
	go func() {
		for i := range 5 {
			h.BookingChanged(booking.Booking{ID: int64(i + 1)}, 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BookingChanged blocked on a full client")
	}
	assert.Len(t, drain(slow), 1)
}

func TestUnregisterIsIdempotent(t *testing.T) {
	h := NewHub(nil)
	a := domain.Actor{ID: 3, Role: domain.RoleCustomer}
	first := attach(h, a, 1)
	second := attach(h, a, 1)
	assert.Equal(t, 2, h.Connected(3))

	h.unregister(first)
	h.unregister(first)
	assert.Equal(t, 1, h.Connected(3))

	_, open := <-first.send
	assert.False(t, open)

	h.unregister(second)
	assert.Equal(t, 0, h.Connected(3))
}

func setupServer(t *testing.T) (*httptest.Server, *Hub, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil)
	tokens := jwt.New("test-secret", time.Hour)
	r := gin.New()
	NewHandler(hub, tokens, []string{"http://localhost:3000"}).RegisterRoutes(r.Group("/api/v1"))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, tokens
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws?token=" + token
}

func TestConnectRejectsBadTokens(t *testing.T) {
	srv, _, _ := setupServer(t)

	for _, token := range []string{"", "garbage"} {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestConnectRejectsForeignOrigin(t *testing.T) {
	srv, _, tokens := setupServer(t)
	token, err := tokens.GenerateToken(10, "customer")
	require.NoError(t, err)

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, token), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestConnectReceivesBookingEvents(t *testing.T) {
	srv, hub, tokens := setupServer(t)
	token, err := tokens.GenerateToken(10, "customer")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Connected(10) == 1 }, time.Second, 10*time.Millisecond)

	hub.BookingChanged(booking.Booking{ID: 42, CustomerID: 10, Status: booking.StatusPending}, 1)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventBookingChanged, ev.Type)
	assert.Equal(t, int64(42), ev.Booking.ID)
	assert.Equal(t, int64(1), ev.PendingBookings)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Connected(10) == 0 }, time.Second, 10*time.Millisecond)
}
