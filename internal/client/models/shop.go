// Package models contains the data types exchanged with the shopping
// backend. Field sets mirror the JSON the server emits; the client never
// derives state from them beyond rendering.
package models

// Shop is a storefront owned by a seller account.
type Shop struct {
	ID          string `json:"id"`
	UUID        string `json:"uuid,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	BannerURL   string `json:"banner_url,omitempty"`
	OwnerID     string `json:"user_id,omitempty"`
	OwnerRole   string `json:"user_role,omitempty"`
}
