package api

import (
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/service"
	"alcyxob/gym-buddy/internal/workout"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the active and finish views.
type SessionHandler struct {
	ctl *controller.Controller
}

func NewSessionHandler(ctl *controller.Controller) *SessionHandler {
	return &SessionHandler{ctl: ctl}
}

// GetSession returns the active session, 404 when there is none.
func (h *SessionHandler) GetSession(c *gin.Context) {
	snap := h.ctl.Snapshot()
	if snap.Session == nil {
		abortWithError(c, http.StatusNotFound, service.ErrNoActiveSession.Error())
		return
	}
	c.JSON(http.StatusOK, snap.Session)
}

// UpdateSet godoc
// @Summary Edit the weight or reps of one set
// @Tags Session
// @Accept json
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Param index path int true "Zero-based set index"
// @Param set body UpdateSetRequest true "Field and value"
// @Success 200 {object} controller.Snapshot
// @Failure 400 {object} gin.H "Invalid field or index"
// @Failure 404 {object} gin.H "Exercise not in session"
// @Failure 409 {object} gin.H "No active session"
// @Router /session/exercises/{exerciseId}/sets/{index} [put]
func (h *SessionHandler) UpdateSet(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid set index format.")
		return
	}
	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := h.ctl.UpdateSet(c.Param("exerciseId"), index, domain.SetField(req.Field), req.Value); err != nil {
		abortWithServiceError(c, err, "Failed to update set.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

func (h *SessionHandler) AddSet(c *gin.Context) {
	if err := h.ctl.AddSet(c.Param("exerciseId")); err != nil {
		abortWithServiceError(c, err, "Failed to add set.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

func (h *SessionHandler) RequestFinish(c *gin.Context) {
	h.respond(c, h.ctl.RequestFinish(), "Failed to finish workout.")
}

func (h *SessionHandler) Resume(c *gin.Context) {
	h.respond(c, h.ctl.ResumeWorkout(), "Failed to resume workout.")
}

// UpdateFinishForm sets the rating (clamped to 0..5) and/or the comment.
func (h *SessionHandler) UpdateFinishForm(c *gin.Context) {
	var req FinishFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if req.Rating == nil && req.Comment == nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: rating or comment is required")
		return
	}
	if req.Rating != nil {
		if err := h.ctl.SetRating(*req.Rating); err != nil {
			abortWithServiceError(c, err, "Failed to set rating.")
			return
		}
	}
	if req.Comment != nil {
		if err := h.ctl.SetComment(*req.Comment); err != nil {
			abortWithServiceError(c, err, "Failed to set comment.")
			return
		}
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

// SaveLog godoc
// @Summary Save the finished workout to the history
// @Tags Session
// @Produce json
// @Success 201 {object} LogSavedResponse
// @Failure 409 {object} gin.H "Not in the finish view"
// @Failure 500 {object} gin.H "Storage failure, session kept"
// @Router /session/save [post]
func (h *SessionHandler) SaveLog(c *gin.Context) {
	entry, err := h.ctl.SaveLog(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to save workout. Your session was kept.")
		return
	}
	c.JSON(http.StatusCreated, LogSavedResponse{
		Log:   MapLogToResponse(*entry, workout.Summarize(*entry)),
		State: h.ctl.Snapshot(),
	})
}

// Cancel requires ?confirm=true.
func (h *SessionHandler) Cancel(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	h.respond(c, h.ctl.CancelWorkout(confirmed), "Failed to cancel workout.")
}

func (h *SessionHandler) respond(c *gin.Context, err error, failMessage string) {
	if err != nil {
		abortWithServiceError(c, err, failMessage)
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}
