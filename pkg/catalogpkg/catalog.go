// Package catalogpkg provides common catalog related constants for the storefront.
package catalogpkg

// Constants for all marketplace item types.
const (
	ItemTypeGame  = "game"
	ItemTypeFrame = "frame"
)

// SupportedItemTypes holds all the supported marketplace item types.
var SupportedItemTypes = []string{
	ItemTypeGame,
	ItemTypeFrame,
}

// IsSupportedItemType returns true if the item type is supported.
func IsSupportedItemType(itemType string) bool {
	for _, t := range SupportedItemTypes {
		if t == itemType {
			return true
		}
	}

	return false
}

// Constants for all game moderation statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// GameStatuses holds all the game moderation statuses.
var GameStatuses = []string{
	StatusPending,
	StatusApproved,
	StatusRejected,
}

// IsGameStatus returns true if the status is a valid game moderation status.
func IsGameStatus(status string) bool {
	for _, s := range GameStatuses {
		if s == status {
			return true
		}
	}

	return false
}

// Constants for all listing statuses.
const (
	ListingActive = "active"
	ListingSold   = "sold"
)

// Constants for all user roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
