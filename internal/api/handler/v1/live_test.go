package v1

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/internal/domain"
)

func TestMatchHub_BroadcastsToClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewMatchHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/live", hub.HandleLive)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	match := domain.Match{ID: uuid.New(), OpponentTeam: "FC Rival", Status: domain.MatchUpcoming}
	hub.Broadcast(match)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event LiveEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "match", event.Type)
	assert.Equal(t, match.ID, event.Match.ID)
	assert.Equal(t, "FC Rival", event.Match.OpponentTeam)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMatchHub_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewMatchHub([]string{"https://club.example.org"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/live", hub.HandleLive)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	header := map[string][]string{"Origin": {"https://evil.example.com"}}
	_, _, err := websocket.DefaultDialer.Dial(url, header)
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients())
}
