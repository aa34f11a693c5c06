// Package api implements the REST client for the shopping backend. Every
// method issues one HTTP call with a per-request deadline and attaches the
// persisted bearer token when one is present.
package api

import (
	"context"
	"io"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/models"
)

// TokenSource yields the current bearer token. It is consulted on every
// request, never cached, so logging out takes effect immediately for calls
// already holding a client. An empty token means the request goes out
// unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateShopRequest is the body of POST /create-shop. UserID and UserRole
// must be supplied by the caller from the authenticated session.
type CreateShopRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	BannerURL   string `json:"banner_url"`
	UserID      string `json:"user_id"`
	UserRole    string `json:"user_role"`
}

// ProfileUpdate is sent as multipart form data to PUT /api/users/profile.
// Avatar is optional; when set, AvatarFilename names the uploaded part.
type ProfileUpdate struct {
	Name           string
	Email          string
	Phone          string
	Avatar         io.Reader
	AvatarFilename string
}

// Client is the surface of the shopping backend consumed by the session
// store and the screens. Auth endpoints return the raw response payload;
// reconciling its shape is the session package's job.
type Client interface {
	Login(ctx context.Context, email, password string) (map[string]any, error)
	Register(ctx context.Context, req RegisterRequest) (map[string]any, error)
	Logout(ctx context.Context) error
	ApprovalStatus(ctx context.Context, userID string) (bool, error)

	FetchShops(ctx context.Context) ([]models.Shop, error)
	GetPublicShops(ctx context.Context) ([]models.Shop, error)
	GetShopInfo(ctx context.Context, idOrUUID string) (*models.Shop, error)
	CreateShop(ctx context.Context, req CreateShopRequest) (*models.Shop, error)
	GetProducts(ctx context.Context) ([]models.Product, error)

	UpdateProfile(ctx context.Context, req ProfileUpdate) (map[string]any, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CancelOrder(ctx context.Context, id string) (*models.Order, error)
	GetOrderTracking(ctx context.Context, id string) (*models.Tracking, error)
}
