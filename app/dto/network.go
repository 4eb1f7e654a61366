package dto

import "time"

type CreateNetworkRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Template    string `json:"template,omitempty"`
}

type NetworkSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	OwnerID     string    `json:"ownerId"`
	OwnerName   string    `json:"ownerName,omitempty"`
	AccessLevel string    `json:"accessLevel,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AccessSettingsRequest is the write shape for sharing: public opens the
// network to everyone, shared targets the listed users, private reverts to
// owner-only.
type AccessSettingsRequest struct {
	AccessType string   `json:"accessType"`
	UserIDs    []string `json:"userIds,omitempty"`
}

type AccessGrantView struct {
	ID         string  `json:"id"`
	NetworkID  string  `json:"networkId"`
	AccessType string  `json:"accessType"`
	UserID     *string `json:"userId"`
	Username   *string `json:"username"`
}
