package actorctx

import "context"

type ctxKey string

const keyDeviceID ctxKey = "device_id"

func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, keyDeviceID, deviceID)
}

func DeviceIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyDeviceID).(string)

	return v, ok && v != ""
}
