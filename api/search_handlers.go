package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/model"
	"github.com/sajidahmed21/LearnR/services"
)

// SearchParams are the query parameters of GET /search, named as the
// autocomplete widget sends them.
type SearchParams struct {
	Query string `form:"q"`
	Type  string `form:"type"`
	Limit string `form:"limit"` // kept raw: anything non-numeric means unlimited
}

// ParseLimit turns the raw limit parameter into an optional limit.
// Absent or non-numeric values mean unlimited.
func ParseLimit(raw string) *int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &limit
}

// SearchHandler handles autocomplete requests.
// Query: q (search string), type (by-display-name, by-handle, combined or a
// legacy alias), limit (optional).
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	var params SearchParams
	if result := ValidateQueryBinding(c, &params); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateSearchParams(params); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result, err := api.searcher.Search(c.Request.Context(), services.SearchRequest{
		Query: params.Query,
		Type:  params.Type,
		Limit: ParseLimit(params.Limit),
	})

	event := model.SearchEvent{
		Query:        params.Query,
		SearchType:   params.Type,
		ResponseTime: time.Since(startTime),
		Failed:       err != nil,
	}
	if result != nil {
		event.QueryID = result.QueryID
		event.SearchType = string(result.Type)
		event.ResultCount = len(result.Suggestions)
	}
	api.trackSearch(event)

	if err != nil {
		SendSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// trackSearch records the event asynchronously to avoid slowing down the
// response
func (api *API) trackSearch(event model.SearchEvent) {
	if api.analytics == nil {
		return
	}
	go func() {
		if err := api.analytics.TrackSearchEvent(event); err != nil {
			api.log.Warn(context.Background(), "failed to track search event", logger.Error(err))
		}
	}()
}
