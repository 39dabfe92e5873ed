package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	dashboard, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "retrieve analytics data", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
