package api

import (
	"alcyxob/gym-buddy/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves finished sessions, most recent first.
type HistoryHandler struct {
	historyService service.HistoryService
}

func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListHistory godoc
// @Summary List workout logs
// @Description Most recent first, each with per-exercise set count and best weight.
// @Tags History
// @Produce json
// @Param limit query int false "Maximum number of entries (0 = all)"
// @Success 200 {array} LogResponse
// @Failure 400 {object} gin.H "Invalid limit"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	items, err := h.historyService.ListHistory(c.Request.Context(), q.Limit)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve history.")
		return
	}
	resp := make([]LogResponse, len(items))
	for i, item := range items {
		resp[i] = mapHistoryItem(item)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HistoryHandler) GetHistoryEntry(c *gin.Context) {
	item, err := h.historyService.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workout log.")
		return
	}
	c.JSON(http.StatusOK, mapHistoryItem(*item))
}
