package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"salonadmin/internal/config"
	"salonadmin/internal/models"
	"salonadmin/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, store session.Store) *Client {
	t.Helper()
	nop := zerolog.Nop()
	cfg := config.APIConfig{BaseURL: baseURL, RequestTimeout: 5 * time.Second}
	return NewClient(cfg, store, &nop)
}

func storeWith(t *testing.T, access, refresh string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	sess := &session.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &models.User{ID: 1, Name: "Admin", Role: models.RoleAdmin},
	}
	require.NoError(t, store.Save(context.Background(), sess))
	return store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func authResponse(access, refresh string) models.AuthResponse {
	return models.AuthResponse{
		Tokens: models.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: 900},
		User:   models.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin},
	}
}

func tokenExpiringIn(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestBearerAndRequestIDAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		writeJSON(w, http.StatusOK, map[string]any{"bookings": []models.Booking{}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, "tok-1", "ref-1"))

	_, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoSessionSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []models.Service{})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, session.NewMemoryStore())

	_, err := client.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRefreshAndReplaySucceeds(t *testing.T) {
	var refreshCalls, bookingCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			var req models.RefreshRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ref-old", req.RefreshToken)
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, authResponse("tok-new", "ref-new"))
		case "/api/v1/bookings":
			bookingCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer tok-new" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"bookings": []models.Booking{{ID: 42, Status: models.StatusPending}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := storeWith(t, "tok-old", "ref-old")
	client := newTestClient(t, srv.URL, store)

	bookings, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(42), bookings[0].ID)

	// one refresh, one replay
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), bookingCalls.Load())

	// new token pair persisted
	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "tok-new", sess.AccessToken)
	assert.Equal(t, "ref-new", sess.RefreshToken)
}

func TestNearExpiryTokenRefreshedBeforeRequest(t *testing.T) {
	var refreshCalls, bookingCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			writeJSON(w, http.StatusOK, authResponse("tok-new", "ref-new"))
		case "/api/v1/bookings":
			bookingCalls.Add(1)
			assert.Equal(t, "Bearer tok-new", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"bookings": []models.Booking{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := storeWith(t, tokenExpiringIn(t, 5*time.Second), "ref-old")
	client := newTestClient(t, srv.URL, store)

	_, err := client.ListBookings(context.Background())
	require.NoError(t, err)

	// renewed before the request, so no 401 round trip happened
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(1), bookingCalls.Load())

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "tok-new", sess.AccessToken)
}

func TestFreshTokenIsNotRefreshedEarly(t *testing.T) {
	var refreshCalls atomic.Int32
	access := tokenExpiringIn(t, time.Hour)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			refreshCalls.Add(1)
			writeJSON(w, http.StatusOK, authResponse("tok-new", "ref-new"))
			return
		}
		assert.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"bookings": []models.Booking{}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, access, "ref-old"))

	_, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestPersistent401TerminatesLoggedOut(t *testing.T) {
	var refreshCalls, bookingCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			refreshCalls.Add(1)
			writeJSON(w, http.StatusOK, authResponse("tok-new", "ref-new"))
			return
		}
		bookingCalls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "nope"})
	}))
	defer srv.Close()

	store := storeWith(t, "tok-old", "ref-old")
	client := newTestClient(t, srv.URL, store)

	expired := false
	client.OnSessionExpired(func() { expired = true })

	_, err := client.ListBookings(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	// exactly one refresh and one replay, then give up
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), bookingCalls.Load())
	assert.True(t, expired)

	sess, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Nil(t, sess)
}

func TestNoRefreshTokenSkipsRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			refreshCalls.Add(1)
			writeJSON(w, http.StatusOK, authResponse("tok-new", "ref-new"))
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	client := newTestClient(t, srv.URL, store)

	expired := false
	client.OnSessionExpired(func() { expired = true })

	_, err := client.ListBookings(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(0), refreshCalls.Load())
	assert.True(t, expired)
}

func TestRefreshFailureForcesLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "refresh token revoked"})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
	}))
	defer srv.Close()

	store := storeWith(t, "tok-old", "ref-old")
	client := newTestClient(t, srv.URL, store)

	_, err := client.ListBookings(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	sess, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Nil(t, sess)
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			refreshCalls.Add(1)
			time.Sleep(100 * time.Millisecond)
			writeJSON(w, http.StatusOK, authResponse("tok-new", "ref-new"))
		default:
			if r.Header.Get("Authorization") == "Bearer tok-new" {
				writeJSON(w, http.StatusOK, map[string]any{"bookings": []models.Booking{}})
				return
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
		}
	}))
	defer srv.Close()

	store := storeWith(t, "tok-old", "ref-old")
	client := newTestClient(t, srv.URL, store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ListBookings(context.Background())
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestValidationErrorSurfacesServerReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "start_time overlaps an existing booking"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, "tok", "ref"))

	_, err := client.CreateBooking(context.Background(), models.CreateBookingRequest{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, http.StatusUnprocessableEntity, vErr.Status)
	assert.Equal(t, "start_time overlaps an existing booking", vErr.Message)
}

func TestServerErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db down"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, "tok", "ref"))

	_, err := client.DashboardStats(context.Background())
	var sErr *ServerError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusInternalServerError, sErr.Status)
	assert.Equal(t, "db down", sErr.Message)
}

func TestNetworkErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(t, srv.URL, session.NewMemoryStore())

	_, err := client.ListServices(context.Background())
	var nErr *NetworkError
	assert.ErrorAs(t, err, &nErr)
}

func TestNon401ErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream down"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, "tok", "ref"))

	_, err := client.ListBookings(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpdateBookingStatusRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/admin/bookings/9/status", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.StatusConfirmed, body["status"])

		writeJSON(w, http.StatusOK, models.Booking{ID: 9, Status: models.StatusConfirmed})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, "tok", "ref"))

	booking, err := client.UpdateBookingStatus(context.Background(), 9, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
}

func TestLoginDoesNotStoreTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		writeJSON(w, http.StatusOK, authResponse("tok-login", "ref-login"))
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	client := newTestClient(t, srv.URL, store)

	auth, err := client.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", auth.Tokens.AccessToken)

	// session ownership stays with the auth manager
	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestListUsersQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "100", r.URL.Query().Get("offset"))
		writeJSON(w, http.StatusOK, models.UserPage{Total: 1, Limit: 50, Offset: 100, Users: []models.User{{ID: 2}}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, storeWith(t, "tok", "ref"))

	page, err := client.ListUsers(context.Background(), 50, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Users, 1)
}
