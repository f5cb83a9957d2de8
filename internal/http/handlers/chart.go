package handlers

import (
	"net/http"

	"github.com/geocoder89/opay/internal/pages"
	"github.com/gin-gonic/gin"
)

func DashboardChart(ctx *gin.Context) {
	RespondJSONWithETag(ctx, http.StatusOK, pages.StocksFlowChart())
}
