package models

// Seeded accounts
const (
	// ProtectedUsername identifies the administrator account that can never be deleted
	ProtectedUsername = "SuperAdmin"
	// DefaultUsername is the trainer account seeded next to the administrator
	DefaultUsername = "formateur1"

	// DefaultAdminPassword and DefaultUserPassword are the well-known seed
	// credentials. They are public; the server warns when they are in effect.
	DefaultAdminPassword = "AdminSuper"
	DefaultUserPassword  = "01012000"
)

// Broadcast defaults
const (
	DefaultBroadcastTitle   = "Alerte Système"
	DefaultBroadcastCreator = "Admin"
)

// Store caps
const (
	// MaxListedUsers bounds the user listing
	MaxListedUsers = 1000
	// MaxListedLogs bounds the audit log listing
	MaxListedLogs = 100
)

// PlaceholderIP is recorded when the caller address is unknown
const PlaceholderIP = "127.0.0.1"
