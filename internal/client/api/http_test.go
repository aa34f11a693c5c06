package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource returning a settable token.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(Options{
		BaseURL:        srv.URL,
		Tokens:         tokens,
		RequestTimeout: 2 * time.Second,
		CacheTTL:       time.Minute,
	})
}

func TestHTTPClient_AuthorizationHeader(t *testing.T) {
	ctx := context.Background()
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"token":"T1"}`))
	})

	tokens := &staticTokens{token: "T1"}
	c := newTestClient(t, handler, tokens)

	_, err := c.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "Bearer T1", gotAuth)

	// the token source is consulted per call, so a cleared token means the
	// next request goes out unauthenticated
	tokens.token = ""
	_, err = c.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth)
}

func TestHTTPClient_RequestIDHeader(t *testing.T) {
	ctx := context.Background()
	seen := map[string]bool{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("X-Request-Id")] = true
		_, _ = w.Write([]byte(`{}`))
	})
	c := newTestClient(t, handler, nil)

	require.NoError(t, c.Logout(ctx))
	require.NoError(t, c.Logout(ctx))

	delete(seen, "")
	assert.Len(t, seen, 2, "every request carries a fresh id")
}

func TestHTTPClient_CreateShop_ValidationNoNetworkCall(t *testing.T) {
	ctx := context.Background()
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{}`))
	})
	c := newTestClient(t, handler, nil)

	tests := []struct {
		name string
		req  CreateShopRequest
	}{
		{name: "empty name", req: CreateShopRequest{Name: "", Description: "x", UserID: "1", UserRole: "seller"}},
		{name: "empty description", req: CreateShopRequest{Name: "x", Description: "", UserID: "1", UserRole: "seller"}},
		{name: "missing user id", req: CreateShopRequest{Name: "x", Description: "y", UserRole: "seller"}},
		{name: "missing user role", req: CreateShopRequest{Name: "x", Description: "y", UserID: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateShop(ctx, tt.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Equal(t, 0, calls)
}

func TestHTTPClient_CreateShop_PlaceholderImages(t *testing.T) {
	ctx := context.Background()
	var body CreateShopRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"shop":{"id":"9","name":"My Shop"}}`))
	})
	c := newTestClient(t, handler, nil)

	shop, err := c.CreateShop(ctx, CreateShopRequest{
		Name: "My Shop", Description: "d", UserID: "7", UserRole: "seller",
	})
	require.NoError(t, err)
	assert.Equal(t, "9", shop.ID)
	assert.Contains(t, body.ImageURL, "placehold")
	assert.Contains(t, body.BannerURL, "placehold")
	assert.Equal(t, "7", body.UserID)
}

func TestHTTPClient_Forbidden(t *testing.T) {
	ctx := context.Background()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.CreateShop(ctx, CreateShopRequest{Name: "x", Description: "y", UserID: "1", UserRole: "seller"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Authorization error")
	assert.Contains(t, err.Error(), "token expired")
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	ctx := context.Background()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad credentials"}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.Login(ctx, "a@b.com", "x")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "bad credentials")
}

func TestHTTPClient_ServerError(t *testing.T) {
	ctx := context.Background()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"db down"}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.GetProducts(ctx)
	require.Error(t, err)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.Contains(t, serverErr.Message, "db down")
}

func TestHTTPClient_FetchShops_Shapes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		body string
	}{
		{name: "bare array", body: `[{"id":"1","name":"A"},{"id":"2","name":"B"}]`},
		{name: "shops envelope", body: `{"shops":[{"id":"1","name":"A"},{"id":"2","name":"B"}]}`},
		{name: "data envelope", body: `{"data":[{"id":"1","name":"A"},{"id":"2","name":"B"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/shops", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			})
			c := newTestClient(t, handler, nil)

			shops, err := c.FetchShops(ctx)
			require.NoError(t, err)
			require.Len(t, shops, 2)
			assert.Equal(t, "A", shops[0].Name)
		})
	}
}

func TestHTTPClient_GetPublicShops_Cached(t *testing.T) {
	ctx := context.Background()
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"shops":[{"id":"1","name":"A"}]}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.GetPublicShops(ctx)
	require.NoError(t, err)
	_, err = c.GetPublicShops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestHTTPClient_CreateShop_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	listCalls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/public-shop-info" {
			listCalls++
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`{"shop":{"id":"9"}}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.GetPublicShops(ctx)
	require.NoError(t, err)
	_, err = c.CreateShop(ctx, CreateShopRequest{Name: "x", Description: "y", UserID: "1", UserRole: "seller"})
	require.NoError(t, err)
	_, err = c.GetPublicShops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls)
}

func TestHTTPClient_GetShopInfo_QueryParam(t *testing.T) {
	ctx := context.Background()
	var query string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":{"id":"1","name":"A"}}`))
	})
	c := newTestClient(t, handler, nil)

	_, err := c.GetShopInfo(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "shop_id=12", query)

	_, err = c.GetShopInfo(ctx, "7c9e6679-7425-40de-944b-e07fc1f90ae7")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "uuid="))
}

func TestHTTPClient_ApprovalStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("top-level flag", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/7/approval-status", r.URL.Path)
			_, _ = w.Write([]byte(`{"approved":true}`))
		})
		c := newTestClient(t, handler, nil)

		approved, err := c.ApprovalStatus(ctx, "7")
		require.NoError(t, err)
		assert.True(t, approved)
	})

	t.Run("nested under data", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"approved":false}}`))
		})
		c := newTestClient(t, handler, nil)

		approved, err := c.ApprovalStatus(ctx, "7")
		require.NoError(t, err)
		assert.False(t, approved)
	})
}

func TestHTTPClient_UpdateProfile_Multipart(t *testing.T) {
	ctx := context.Background()
	var gotName, gotPhone, gotAvatar string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/profile", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("name")
		gotPhone = r.FormValue("phone")
		if _, header, err := r.FormFile("avatar"); err == nil {
			gotAvatar = header.Filename
		}
		_, _ = w.Write([]byte(`{"user":{"name":"Ada","phone":"+371 555"}}`))
	})
	c := newTestClient(t, handler, nil)

	payload, err := c.UpdateProfile(ctx, ProfileUpdate{
		Name:           "Ada",
		Phone:          "+371 555",
		Avatar:         strings.NewReader("png-bytes"),
		AvatarFilename: "me.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", gotName)
	assert.Equal(t, "+371 555", gotPhone)
	assert.Equal(t, "me.png", gotAvatar)
	assert.Contains(t, payload, "user")
}

func TestHTTPClient_Orders(t *testing.T) {
	ctx := context.Background()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/42":
			_, _ = w.Write([]byte(`{"order":{"id":"42","status":"shipped","total":19.99}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/orders/42/cancel":
			_, _ = w.Write([]byte(`{"order":{"id":"42","status":"cancelled"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/42/tracking":
			_, _ = w.Write([]byte(`{"tracking":{"order_id":"42","steps":[{"status":"pending"},{"status":"shipped"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	c := newTestClient(t, handler, nil)

	order, err := c.GetOrder(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "shipped", string(order.Status))
	assert.InDelta(t, 19.99, order.Total, 0.001)

	cancelled, err := c.CancelOrder(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", string(cancelled.Status))

	tracking, err := c.GetOrderTracking(ctx, "42")
	require.NoError(t, err)
	require.Len(t, tracking.Steps, 2)
	assert.Equal(t, "shipped", string(tracking.Steps[1].Status))
}

func TestHTTPClient_NetworkFailure(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewHTTPClient(Options{BaseURL: srv.URL, RequestTimeout: time.Second})

	shops, err := c.FetchShops(ctx)
	require.Error(t, err)
	assert.Nil(t, shops)
}
