package middlewares

// gin context keys
const (
	CtxRequestID = "request_id"
	CtxDeviceID  = "device.id"
)
