package constants

const (
	HeaderUserIDKey       = "X-User-ID"
	HeaderRequestIDKey    = "X-Request-ID"
	HeaderLoginTokenKey   = "X-Contest-JWT-Token"
	HeaderRefreshTokenKey = "X-Contest-Refresh-Token"
)

const GatewayServiceName = "ContestRelay-Controller"

const (
	ContextUserClaimsKey = "X-Contest-User-Claims"
)
