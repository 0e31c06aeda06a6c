package constants

// Auth
const (
	// AuthCookieName is the HTTP-only cookie carrying the identity token.
	AuthCookieName = "auth-token"

	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// AuthSourceCookie and AuthSourceHeader select where the identity token
	// is read from. Exactly one source is active per deployment.
	AuthSourceCookie = "cookie"
	AuthSourceHeader = "header"

	MinPasswordLength = 8
)

// Validation limits, shared with the web client
const (
	MaxNameLength               = 255
	MaxProjectNameLength        = 255
	MaxProjectDescriptionLength = 1000
	MaxTaskTitleLength          = 255
	MaxTaskDescriptionLength    = 10000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
