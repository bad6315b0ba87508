package api

import (
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RoutineHandler serves the routine list and the create view.
type RoutineHandler struct {
	routineService service.RoutineService
	ctl            *controller.Controller
}

func NewRoutineHandler(routineService service.RoutineService, ctl *controller.Controller) *RoutineHandler {
	return &RoutineHandler{routineService: routineService, ctl: ctl}
}

// ListRoutines godoc
// @Summary List saved routines
// @Tags Routines
// @Produce json
// @Success 200 {array} RoutineResponse
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /routines [get]
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	routines, err := h.routineService.ListRoutines(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve routines.")
		return
	}
	c.JSON(http.StatusOK, MapRoutinesToResponse(routines))
}

// SaveDraft godoc
// @Summary Save the draft routine
// @Description Persists the routine composed in the create view and returns to home.
// @Tags Routines
// @Produce json
// @Success 201 {object} RoutineCreatedResponse
// @Failure 400 {object} gin.H "Name or exercises missing"
// @Failure 409 {object} gin.H "Not in the create view"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /routines [post]
func (h *RoutineHandler) SaveDraft(c *gin.Context) {
	routine, err := h.ctl.SaveRoutine(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err, "Failed to save routine.")
		return
	}
	c.JSON(http.StatusCreated, RoutineCreatedResponse{
		Routine: MapRoutineToResponse(routine),
		State:   h.ctl.Snapshot(),
	})
}

// DeleteRoutine requires ?confirm=true.
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.ctl.DeleteRoutine(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		abortWithServiceError(c, err, "Failed to delete routine.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoutineHandler) UpdateDraft(c *gin.Context) {
	var req DraftDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := h.ctl.SetDraftDetails(req.Name, req.Description); err != nil {
		abortWithServiceError(c, err, "Failed to update draft.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

func (h *RoutineHandler) AddDraftExercise(c *gin.Context) {
	var req DraftExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	err := h.ctl.AddDraftExercise(service.ExerciseInput{Name: req.Name, Sets: req.Sets, Reps: req.Reps})
	if err != nil {
		abortWithServiceError(c, err, "Failed to add exercise.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

func (h *RoutineHandler) RemoveDraftExercise(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise index format.")
		return
	}
	if err := h.ctl.RemoveDraftExercise(index); err != nil {
		abortWithServiceError(c, err, "Failed to remove exercise.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}

// StartRoutine godoc
// @Summary Start a workout session from a routine
// @Tags Routines
// @Produce json
// @Param id path string true "Routine ID"
// @Success 200 {object} controller.Snapshot
// @Failure 404 {object} gin.H "Routine not found"
// @Failure 409 {object} gin.H "Empty routine, session already running, or not on home"
// @Router /routines/{id}/start [post]
func (h *RoutineHandler) StartRoutine(c *gin.Context) {
	if err := h.ctl.StartRoutine(c.Request.Context(), c.Param("id")); err != nil {
		abortWithServiceError(c, err, "Failed to start workout.")
		return
	}
	c.JSON(http.StatusOK, h.ctl.Snapshot())
}
