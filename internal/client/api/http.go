package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/models"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/logging"
)

const (
	placeholderShopImage   = "https://placehold.co/600x400?text=Shop"
	placeholderShopBanner  = "https://placehold.co/1200x300?text=Shop+Banner"
	cacheKeyPublicShops    = "public-shops"
	cacheKeyShopInfoPrefix = "shop-info:"
)

// HTTPClient is the Client implementation over net/http.
type HTTPClient struct {
	baseURL           string
	http              *http.Client
	tokens            TokenSource
	cache             *gocache.Cache
	log               logging.Logger
	requestTimeout    time.Duration
	createShopTimeout time.Duration
}

// Options configures NewHTTPClient. Zero timeouts fall back to defaults.
type Options struct {
	BaseURL           string
	Tokens            TokenSource
	Logger            logging.Logger
	RequestTimeout    time.Duration
	CreateShopTimeout time.Duration
	CacheTTL          time.Duration
}

// NewHTTPClient builds a client for the backend at opts.BaseURL.
func NewHTTPClient(opts Options) *HTTPClient {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.CreateShopTimeout <= 0 {
		opts.CreateShopTimeout = 5 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		http:              &http.Client{},
		tokens:            opts.Tokens,
		cache:             gocache.New(opts.CacheTTL, 2*opts.CacheTTL),
		log:               opts.Logger,
		requestTimeout:    opts.RequestTimeout,
		createShopTimeout: opts.CreateShopTimeout,
	}
}

// send executes the request and returns the raw response body for 2xx
// statuses. The bearer token is re-read from the TokenSource on every call.
func (c *HTTPClient) send(req *http.Request) ([]byte, error) {
	if c.tokens != nil {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.Debug(req.Context(), "api call", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, c.statusError(resp.StatusCode, body)
	}
	return body, nil
}

// statusError maps a non-2xx response to the client error taxonomy.
func (c *HTTPClient) statusError(status int, body []byte) error {
	msg := serverMessage(body)
	switch {
	case status == http.StatusForbidden:
		if msg == "" {
			msg = "forbidden"
		}
		return fmt.Errorf("Authorization error: %s (please log in again): %w", msg, ErrUnauthorized)
	case status == http.StatusUnauthorized:
		if msg == "" {
			msg = "authentication required"
		}
		return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
	case status == http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	default:
		return &ServerError{StatusCode: status, Message: msg}
	}
}

// serverMessage pulls a human-readable message out of an error body, which
// the backend sends as {"message": …} or {"error": …}.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in any, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

// decodeList unmarshals either a bare JSON array or an envelope carrying the
// array under one of the given keys. The backend is inconsistent about this.
func decodeList[T any](data []byte, keys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list envelope: %w", err)
	}
	for _, key := range keys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	}
	return nil, fmt.Errorf("unexpected response shape: no %v list found", keys)
}

// decodeObject unmarshals either a bare object or an envelope carrying it
// under one of the given keys.
func decodeObject[T any](data []byte, keys ...string) (*T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	for _, key := range keys {
		if raw, ok := envelope[key]; ok {
			var out T
			if err := json.Unmarshal(raw, &out); err == nil {
				return &out, nil
			}
		}
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode object: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (map[string]any, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password}, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return payload, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (map[string]any, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode register response: %w", err)
	}
	return payload, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil, c.requestTimeout)
	return err
}

func (c *HTTPClient) ApprovalStatus(ctx context.Context, userID string) (bool, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/approval-status", nil, nil, c.requestTimeout)
	if err != nil {
		return false, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, fmt.Errorf("failed to decode approval status: %w", err)
	}
	if v, ok := payload["approved"].(bool); ok {
		return v, nil
	}
	if data, ok := payload["data"].(map[string]any); ok {
		if v, ok := data["approved"].(bool); ok {
			return v, nil
		}
	}
	return false, fmt.Errorf("approval status missing from response")
}

func (c *HTTPClient) FetchShops(ctx context.Context) ([]models.Shop, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/shops", nil, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Shop](body, "shops", "data")
}

func (c *HTTPClient) GetPublicShops(ctx context.Context) ([]models.Shop, error) {
	if cached, ok := c.cache.Get(cacheKeyPublicShops); ok {
		return cached.([]models.Shop), nil
	}

	body, err := c.doJSON(ctx, http.MethodGet, "/public-shop-info", nil, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	shops, err := decodeList[models.Shop](body, "shops", "data")
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyPublicShops, shops)
	return shops, nil
}

func (c *HTTPClient) GetShopInfo(ctx context.Context, idOrUUID string) (*models.Shop, error) {
	if idOrUUID == "" {
		return nil, fmt.Errorf("%w: shop id is required", ErrValidation)
	}
	if cached, ok := c.cache.Get(cacheKeyShopInfoPrefix + idOrUUID); ok {
		shop := cached.(models.Shop)
		return &shop, nil
	}

	query := url.Values{}
	if _, err := uuid.Parse(idOrUUID); err == nil {
		query.Set("uuid", idOrUUID)
	} else {
		query.Set("shop_id", idOrUUID)
	}

	body, err := c.doJSON(ctx, http.MethodGet, "/shop-info", query, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	shop, err := decodeObject[models.Shop](body, "shop", "data")
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyShopInfoPrefix+idOrUUID, *shop)
	return shop, nil
}

// CreateShop validates the request before any network I/O and uses the
// dedicated (shorter) shop-creation timeout. A successful create invalidates
// cached shop reads.
func (c *HTTPClient) CreateShop(ctx context.Context, req CreateShopRequest) (*models.Shop, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: shop name is required", ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: shop description is required", ErrValidation)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required, log in before creating a shop", ErrValidation)
	}
	if req.UserRole == "" {
		return nil, fmt.Errorf("%w: user role is required", ErrValidation)
	}
	if req.ImageURL == "" {
		req.ImageURL = placeholderShopImage
	}
	if req.BannerURL == "" {
		req.BannerURL = placeholderShopBanner
	}

	body, err := c.doJSON(ctx, http.MethodPost, "/create-shop", nil, req, c.createShopTimeout)
	if err != nil {
		return nil, err
	}
	shop, err := decodeObject[models.Shop](body, "shop", "data")
	if err != nil {
		return nil, err
	}
	c.cache.Flush()
	return shop, nil
}

func (c *HTTPClient) GetProducts(ctx context.Context) ([]models.Product, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/get-products", nil, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product](body, "products", "data")
}

// UpdateProfile sends the changed fields as multipart form data; empty
// fields are omitted so the server treats the update as partial.
func (c *HTTPClient) UpdateProfile(ctx context.Context, req ProfileUpdate) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{"name": req.Name, "email": req.Email, "phone": req.Phone}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to build profile form: %w", err)
		}
	}
	if req.Avatar != nil {
		filename := req.AvatarFilename
		if filename == "" {
			filename = "avatar"
		}
		part, err := w.CreateFormFile("avatar", filename)
		if err != nil {
			return nil, fmt.Errorf("failed to build profile form: %w", err)
		}
		if _, err := io.Copy(part, req.Avatar); err != nil {
			return nil, fmt.Errorf("failed to read avatar: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build profile form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/users/profile", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.send(httpReq)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return payload, nil
}

func (c *HTTPClient) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Order](body, "order", "data")
}

func (c *HTTPClient) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	body, err := c.doJSON(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/cancel", nil, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Order](body, "order", "data")
}

func (c *HTTPClient) GetOrderTracking(ctx context.Context, id string) (*models.Tracking, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id)+"/tracking", nil, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Tracking](body, "tracking", "data")
}
