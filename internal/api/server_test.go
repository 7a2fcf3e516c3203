package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asclub/club-api/internal/api/handler/v1/response"
	"github.com/asclub/club-api/internal/api/middleware"
	"github.com/asclub/club-api/internal/cache"
	"github.com/asclub/club-api/internal/config"
	"github.com/asclub/club-api/internal/db"
	"github.com/asclub/club-api/internal/domain"
	"github.com/asclub/club-api/internal/repository/dao"
	"github.com/asclub/club-api/internal/storage"
)

const (
	adminEmail    = "admin@club.test"
	adminPassword = "Secret-pass-42"
)

type testServer struct {
	t      *testing.T
	server *Server
}

func newTestServer(t *testing.T, opts ...func(*config.AppConfig)) *testServer {
	t.Helper()

	conf := &config.AppConfig{
		API: &config.APIConfig{
			Environment:   "test",
			BaseURL:       "localhost:8080",
			JWTSigningKey: "test-signing-key",
			JWTTTL:        time.Hour,
			VoterTokenTTL: time.Hour,
		},
		Gin: &config.GinConfig{Mode: gin.TestMode},
		Storage: &config.StorageConfig{
			Dir:                t.TempDir(),
			PublicURL:          "http://localhost:8080/api/v1/uploads",
			MaxUploadBytes:     1 << 20,
			ThumbnailWidth:     32,
			MaxThumbnailPixels: 1 << 20,
		},
		Donations: &config.DonationsConfig{
			Goal:     1000,
			Currency: "EUR",
			PageURL:  "http://localhost:3000/dons",
		},
	}

	for _, opt := range opts {
		opt(conf)
	}

	database, err := db.OpenSQLite(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(database))

	bucket, err := storage.NewLocalBucket(conf.Storage.Dir, conf.Storage.PublicURL)
	require.NoError(t, err)

	s := NewServer(conf, database, Deps{
		Revoker: cache.NewMemoryRevocations(),
		Bucket:  bucket,
	})

	_, err = s.Auth.Bootstrap(context.Background(), adminEmail, adminPassword, "Admin")
	require.NoError(t, err)

	return &testServer{t: t, server: s}
}

func (ts *testServer) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(w, req)

	return w
}

func (ts *testServer) login() string {
	ts.t.Helper()

	w := ts.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    adminEmail,
		"password": adminPassword,
	}, nil)
	require.Equal(ts.t, http.StatusOK, w.Code, w.Body.String())

	var res response.LoginResponse
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(ts.t, res.Token)

	return res.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (ts *testServer) createPlayer(token string, name string, number int, active bool) domain.Player {
	ts.t.Helper()

	w := ts.do(http.MethodPost, "/admin/players", map[string]any{
		"name":          name,
		"jersey_number": number,
		"position":      "attaquant",
		"active":        active,
	}, bearer(token))
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())

	return decode[domain.Player](ts.t, w)
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[response.MessageResponse](t, w).Message)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/admin/players", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, decode[response.Err](t, w).HTTPStatusCode)

	w = ts.do(http.MethodGet, "/admin/players", nil, bearer("not-a-jwt"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    adminEmail,
		"password": "wrong-password-1!",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/auth/login", map[string]string{"email": "nope"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := ts.login()

	w = ts.do(http.MethodGet, "/admin/auth/session", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminEmail, decode[domain.User](t, w).Email)
	assert.NotContains(t, w.Body.String(), "$2a$")

	w = ts.do(http.MethodPost, "/admin/auth/logout", nil, bearer(token))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, "/admin/auth/session", nil, bearer(token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login()

	w := ts.do(http.MethodPut, "/admin/auth/password", map[string]string{
		"current_password": "not-the-password-1!",
		"new_password":     "Another-pass-77",
		"confirm_password": "Another-pass-77",
	}, bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPut, "/admin/auth/password", map[string]string{
		"current_password": adminPassword,
		"new_password":     "short",
		"confirm_password": "short",
	}, bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPut, "/admin/auth/password", map[string]string{
		"current_password": adminPassword,
		"new_password":     "Another-pass-77",
		"confirm_password": "Another-pass-77",
	}, bearer(token))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = ts.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    adminEmail,
		"password": "Another-pass-77",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPlayers(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login()

	striker := ts.createPlayer(token, "Papin", 9, true)
	ts.createPlayer(token, "Retired", 14, false)

	w := ts.do(http.MethodGet, "/players", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decode[[]domain.Player](t, w)
	require.Len(t, public, 1)
	assert.Equal(t, striker.ID, public[0].ID)

	w = ts.do(http.MethodGet, "/admin/players", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Player](t, w), 2)

	w = ts.do(http.MethodGet, "/players/"+striker.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Papin", decode[domain.Player](t, w).Name)

	w = ts.do(http.MethodGet, "/players/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/players/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPost, "/admin/players", map[string]any{
		"name":          "Nobody",
		"jersey_number": 5,
		"position":      "libero",
	}, bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/admin/players/"+striker.ID.String(), nil, bearer(token))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, "/players/"+striker.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReactions(t *testing.T) {
	ts := newTestServer(t)
	entityID := uuid.NewString()

	voter := func() map[string]string {
		w := ts.do(http.MethodPost, "/voter-token", nil, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		return map[string]string{middleware.HeaderVoterToken: decode[response.VoterTokenResponse](t, w).Token}
	}
	first, second := voter(), voter()

	like := map[string]string{"reaction_type": "like"}

	w := ts.do(http.MethodPost, "/reactions/player/"+entityID, like, first)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[response.ReactionsResponse](t, w)
	assert.Equal(t, int64(1), res.Counts.Likes)
	assert.False(t, res.CanReact)

	w = ts.do(http.MethodPost, "/reactions/player/"+entityID, map[string]string{"reaction_type": "dislike"}, first)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Positive(t, decode[response.Err](t, w).RetryAfter)

	w = ts.do(http.MethodPost, "/reactions/player/"+entityID, map[string]string{"reaction_type": "dislike"}, second)
	require.Equal(t, http.StatusCreated, w.Code)
	res = decode[response.ReactionsResponse](t, w)
	assert.Equal(t, int64(1), res.Counts.Likes)
	assert.Equal(t, int64(1), res.Counts.Dislikes)

	w = ts.do(http.MethodGet, "/reactions/player/"+entityID, nil, first)
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[response.ReactionsResponse](t, w)
	require.NotNil(t, res.MyReaction)
	assert.Equal(t, domain.ReactionLike, res.MyReaction.ReactionType)
	assert.False(t, res.CanReact)

	w = ts.do(http.MethodGet, "/reactions/player/"+entityID, nil, voter())
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[response.ReactionsResponse](t, w)
	assert.Nil(t, res.MyReaction)
	assert.True(t, res.CanReact)

	w = ts.do(http.MethodGet, "/reactions/player", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.ReactionCounts](t, w), 1)

	w = ts.do(http.MethodPost, "/reactions/stadium/"+entityID, like, first)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/reactions/player/"+entityID, map[string]string{"reaction_type": "love"}, voter())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReactionsIgnoreSpoofedForwardedFor(t *testing.T) {
	ts := newTestServer(t)
	entityID := uuid.NewString()
	like := map[string]string{"reaction_type": "like"}

	w := ts.do(http.MethodPost, "/reactions/article/"+entityID, like, map[string]string{"X-Forwarded-For": "198.51.100.1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// same socket address, so the same voter whatever the header says
	w = ts.do(http.MethodPost, "/reactions/article/"+entityID, like, map[string]string{"X-Forwarded-For": "198.51.100.2"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = ts.do(http.MethodGet, "/reactions/article/"+entityID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[response.ReactionsResponse](t, w).Counts.Likes)
}

func TestReactionsTrustConfiguredProxy(t *testing.T) {
	// httptest requests come from 192.0.2.1
	ts := newTestServer(t, func(conf *config.AppConfig) {
		conf.API.TrustedProxies = []string{"192.0.2.0/24"}
	})
	entityID := uuid.NewString()
	like := map[string]string{"reaction_type": "like"}

	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		w := ts.do(http.MethodPost, "/reactions/article/"+entityID, like, map[string]string{"X-Forwarded-For": client})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := ts.do(http.MethodPost, "/reactions/article/"+entityID, like, map[string]string{"X-Forwarded-For": "198.51.100.1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCompositions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login()

	player := ts.createPlayer(token, "Papin", 9, true)

	w := ts.do(http.MethodPost, "/admin/compositions", map[string]string{"title": "Derby", "formation": "4-3-3"}, bearer(token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	composition := decode[domain.Composition](t, w)
	path := "/admin/compositions/" + composition.ID.String()

	w = ts.do(http.MethodPut, path+"/positions/"+player.ID.String(), map[string]float64{"x": 150, "y": -3}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved := decode[response.MovePlayerResponse](t, w)
	assert.Equal(t, 90.0, moved.Position.X)
	assert.Equal(t, 10.0, moved.Position.Y)

	w = ts.do(http.MethodPut, path+"/positions/"+player.ID.String(), map[string]float64{
		"pointer_x": 200, "pointer_y": 100, "pitch_width": 400, "pitch_height": 400,
	}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved = decode[response.MovePlayerResponse](t, w)
	assert.Equal(t, 50.0, moved.Position.X)
	assert.Equal(t, 25.0, moved.Position.Y)

	w = ts.do(http.MethodPut, path+"/positions/"+player.ID.String(), map[string]float64{"x": 10}, bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missing := uuid.NewString()
	w = ts.do(http.MethodPut, path+"/positions/"+missing, map[string]float64{"x": 10, "y": 10}, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "player with id "+missing+" not found", decode[response.Err](t, w).ErrorMsg)

	w = ts.do(http.MethodPut, "/admin/compositions/"+missing+"/positions/"+player.ID.String(), map[string]float64{"x": 10, "y": 10}, bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[response.Err](t, w).ErrorMsg, "composition with id")

	w = ts.do(http.MethodGet, "/compositions/"+composition.ID.String()+"/board", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[response.CompositionBoardResponse](t, w)
	require.Len(t, board.Board.Placed, 1)
	assert.True(t, board.Board.Placed[0].Custom)

	w = ts.do(http.MethodDelete, path+"/positions", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[domain.Composition](t, w).Positions.Positions)

	w = ts.do(http.MethodPost, "/admin/compositions", map[string]string{"title": "Bad", "formation": "2-2-6"}, bearer(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/formations", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[response.FormationsResponse](t, w).Formations)
}

func TestDonations(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login()

	w := ts.do(http.MethodPost, "/donations", map[string]any{
		"amount":         50,
		"donor_name":     "Supporter",
		"payment_method": "transfer",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	donation := decode[domain.Donation](t, w)
	assert.Equal(t, domain.DonationPending, donation.Status)

	w = ts.do(http.MethodPost, "/donations", map[string]any{"amount": 50, "payment_method": "transfer"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPut, "/admin/donations/"+donation.ID.String(), map[string]any{
		"amount":         250,
		"donor_name":     "Supporter",
		"payment_method": "transfer",
		"status":         "completed",
	}, bearer(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/donations/progress", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[domain.DonationProgress](t, w)
	assert.Equal(t, 250.0, progress.Total)
	assert.Equal(t, int64(1), progress.Count)
	assert.Equal(t, 25.0, progress.Percent)

	w = ts.do(http.MethodGet, "/donations/qrcode?size=128", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = ts.do(http.MethodGet, "/donations/qrcode?size=5000", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login()

	w := ts.do(http.MethodPost, "/subscriptions", map[string]string{"email": "Fan@Example.org"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[domain.Subscription](t, w)
	assert.Equal(t, "fan@example.org", first.Email)

	w = ts.do(http.MethodPost, "/subscriptions", map[string]string{"email": "fan@example.org"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, first.ID, decode[domain.Subscription](t, w).ID)

	w = ts.do(http.MethodPost, "/admin/subscriptions/"+first.ID.String()+"/unsubscribe", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[domain.Subscription](t, w).Active)

	w = ts.do(http.MethodGet, "/admin/subscriptions?active=true", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.Subscription](t, w))
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login()

	upload := func(kind string, filename string, content []byte) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		if kind != "" {
			require.NoError(t, mw.WriteField("kind", kind))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		ts.server.Router.ServeHTTP(w, req)
		return w
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var pngData bytes.Buffer
	require.NoError(t, png.Encode(&pngData, img))

	w := upload("", "crest.png", pngData.Bytes())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	stored := decode[domain.Upload](t, w)
	assert.True(t, strings.HasPrefix(stored.URL, "http://localhost:8080/api/v1/uploads/images/"))
	assert.Equal(t, "image/png", stored.ContentType)
	assert.Empty(t, stored.ThumbnailURL)

	w = upload("photo", "match.png", pngData.Bytes())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, decode[domain.Upload](t, w).ThumbnailURL, "/photos/thumbs/")

	w = upload("", "notes.txt", []byte("just some text, not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = upload("video", "crest.png", pngData.Bytes())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload("", "huge.png", append(pngData.Bytes(), make([]byte, 1<<20)...))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	rel := strings.TrimPrefix(stored.URL, "http://localhost:8080")
	req := httptest.NewRequest(http.MethodGet, rel, nil)
	rec := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
