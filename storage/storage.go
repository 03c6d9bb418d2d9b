// Package storage is the client's durable key-value store, the stand-in for
// the browser profile storage the web front end uses. Readers must tolerate
// absent or malformed content; a storage failure degrades persistence but
// never crashes a flow.
package storage

// Keys for the values the storefront persists between runs.
const (
	// AuthTokenKey holds the access token, scheme-prefixed ("Bearer <jwt>").
	AuthTokenKey = "auth_token"
	// RefreshTokenKey holds the opaque refresh token.
	RefreshTokenKey = "refresh_token"
	// AuthUserKey holds the serialized current-user record.
	AuthUserKey = "auth_user"
	// ShoppingCartKey holds the serialized cart line items.
	ShoppingCartKey = "shopping_cart"

	// Scratch keys, live only for the duration of their flow.

	// PendingUserIDKey holds the user id awaiting verification (register and
	// OAuth callback handoff). Removed once read by the verify screen.
	PendingUserIDKey = "oauth_user_id"
	// ResetEmailKey holds the email of an in-progress password reset.
	ResetEmailKey = "reset_email"
	// ResetTokenKey holds the code/token of an in-progress password reset.
	ResetTokenKey = "reset_token"
)

// Store is a shared mutable key-value resource. Get reports presence rather
// than returning an error: a missing key is a normal condition.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
