package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/opay/internal/config"
	"github.com/geocoder89/opay/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type StorageClearer interface {
	Clear(ctx context.Context, device string) error
}

type StorageHandler struct {
	store StorageClearer
}

func NewStorageHandler(store StorageClearer) *StorageHandler {
	return &StorageHandler{store: store}
}

// Clear wipes everything stored for the calling device, the same as a user
// clearing site data in their browser.
func (h *StorageHandler) Clear(ctx *gin.Context) {
	device, ok := middlewares.DeviceIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing device identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if err := h.store.Clear(cctx, device); err != nil {
		RespondInternal(ctx, "Could not clear device storage")
		return
	}

	ctx.Status(http.StatusNoContent)
}
