package common

// Role names carried in access tokens.
const (
	RoleAdmin          = "Admin"
	RolePrivilegedUser = "PrivilegedUser"
)

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
