package middlewares

// gin context keys. gin stores values by string key, so these stay strings.
const (
	CtxRequestID = "request_id"
)
