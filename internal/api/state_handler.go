package api

import (
	"alcyxob/gym-buddy/internal/controller"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StateHandler exposes the view controller state.
type StateHandler struct {
	ctl *controller.Controller
}

func NewStateHandler(ctl *controller.Controller) *StateHandler {
	return &StateHandler{ctl: ctl}
}

// GetState godoc
// @Summary Current UI state
// @Description Returns the current view, draft routine, finish form, active session and notice.
// @Tags State
// @Produce json
// @Success 200 {object} controller.Snapshot
// @Router /state [get]
func (h *StateHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

// ChangeView godoc
// @Summary Navigate between home, create and history
// @Tags State
// @Produce json
// @Param view path string true "Target view"
// @Success 200 {object} controller.Snapshot
// @Failure 400 {object} gin.H "Unknown view"
// @Failure 409 {object} gin.H "Not allowed from the current view"
// @Router /views/{view} [post]
func (h *StateHandler) ChangeView(c *gin.Context) {
	view, ok := controller.ParseView(c.Param("view"))
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Unknown view: "+c.Param("view"))
		return
	}
	if err := h.ctl.Navigate(view); err != nil {
		abortWithServiceError(c, err, "Failed to change view.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}
