package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/opay/internal/dom"
	"github.com/geocoder89/opay/internal/http/middlewares"
	"github.com/geocoder89/opay/internal/pages"
	"github.com/geocoder89/opay/internal/view"
	"github.com/gin-gonic/gin"
)

type ViewRegistry interface {
	Open(ctx context.Context, device string, page pages.Page, opts view.OpenOptions) (view.Result, error)
	Get(device, id string) (*view.View, error)
	Close(device, id string) error
}

type ViewsHandler struct {
	views ViewRegistry
}

func NewViewsHandler(views ViewRegistry) *ViewsHandler {
	return &ViewsHandler{views: views}
}

type OpenViewRequest struct {
	Page string `json:"page" binding:"required,oneof=signup login dashboard"`
	// TimeZone is the IANA zone of the device, e.g. "Africa/Lagos".
	TimeZone string `json:"timeZone" binding:"omitempty,timezone"`
}

type EventRequest struct {
	Type   string            `json:"type" binding:"required,oneof=click submit"`
	Target string            `json:"target" binding:"required,max=64"`
	Values map[string]string `json:"values" binding:"omitempty,max=32"`
}

func (h *ViewsHandler) Open(ctx *gin.Context) {
	device, ok := middlewares.DeviceIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing device identity")
		return
	}

	var req OpenViewRequest

	if !BindJSON(ctx, &req) {
		return
	}

	var opts view.OpenOptions
	if req.TimeZone != "" {
		loc, err := time.LoadLocation(req.TimeZone)
		if err != nil {
			RespondBadRequest(ctx, "Unknown time zone", gin.H{"timeZone": req.TimeZone})
			return
		}
		opts.Location = loc
	}

	res, err := h.views.Open(ctx.Request.Context(), device, pages.Page(req.Page), opts)
	if err != nil {
		respondViewError(ctx, err)
		return
	}

	ctx.Header("Location", "/views/"+res.Snapshot.ID)
	ctx.JSON(http.StatusCreated, res)
}

func (h *ViewsHandler) Get(ctx *gin.Context) {
	v, ok := h.lookup(ctx)
	if !ok {
		return
	}

	snap := v.Snapshot()
	respondTagged(ctx, versionETag(snap.ID, snap.Version), http.StatusOK, snap)
}

func (h *ViewsHandler) Dispatch(ctx *gin.Context) {
	v, ok := h.lookup(ctx)
	if !ok {
		return
	}

	var req EventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	res, err := v.Dispatch(ctx.Request.Context(), dom.Event{
		Type:   req.Type,
		Target: req.Target,
		Values: req.Values,
	})
	if err != nil {
		respondViewError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// Stream pushes a snapshot after every change of the view until the client
// goes away or the view is torn down.
func (h *ViewsHandler) Stream(ctx *gin.Context) {
	v, ok := h.lookup(ctx)
	if !ok {
		return
	}

	updates, unsubscribe := v.Subscribe()
	defer unsubscribe()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.SSEvent("snapshot", v.Snapshot())
	ctx.Writer.Flush()

	done := ctx.Request.Context().Done()

	ctx.Stream(func(io.Writer) bool {
		select {
		case <-done:
			return false
		case snap, open := <-updates:
			if !open {
				ctx.SSEvent("closed", gin.H{"id": v.ID()})
				return false
			}
			ctx.SSEvent("snapshot", snap)
			return true
		}
	})
}

func (h *ViewsHandler) Close(ctx *gin.Context) {
	device, ok := middlewares.DeviceIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing device identity")
		return
	}

	if err := h.views.Close(device, ctx.Param("id")); err != nil {
		respondViewError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *ViewsHandler) lookup(ctx *gin.Context) (*view.View, bool) {
	device, ok := middlewares.DeviceIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing device identity")
		return nil, false
	}

	v, err := h.views.Get(device, ctx.Param("id"))
	if err != nil {
		respondViewError(ctx, err)
		return nil, false
	}

	return v, true
}

func respondViewError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, view.ErrNotFound):
		RespondNotFound(ctx, "View not found")
	case errors.Is(err, dom.ErrElementNotFound):
		RespondError(ctx, http.StatusNotFound, "element_not_found", err.Error(), nil)
	case errors.Is(err, pages.ErrUnknownPage):
		RespondBadRequest(ctx, "Unknown page", nil)
	default:
		slog.Default().ErrorContext(ctx.Request.Context(), "view operation failed", "err", err)
		RespondInternal(ctx, "Could not process view")
	}
}
