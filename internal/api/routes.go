package api

import (
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the JSON API under /api/v1. Anything else is handed
// to fallback (the offline asset cache) when one is given.
func SetupRoutes(
	router *gin.Engine,
	ctl *controller.Controller,
	routineService service.RoutineService,
	historyService service.HistoryService,
	fallback gin.HandlerFunc,
) {
	stateHandler := NewStateHandler(ctl)
	routineHandler := NewRoutineHandler(routineService, ctl)
	sessionHandler := NewSessionHandler(ctl)
	historyHandler := NewHistoryHandler(historyService)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(RequestIDMiddleware())
	{
		apiV1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		apiV1.GET("/state", stateHandler.GetState)
		apiV1.POST("/views/:view", stateHandler.ChangeView)

		// --- Routine Routes ---
		routineGroup := apiV1.Group("/routines")
		{
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.POST("", routineHandler.SaveDraft)
			// DELETE /api/v1/routines/{id}?confirm=true
			routineGroup.DELETE("/:id", routineHandler.DeleteRoutine)
			routineGroup.POST("/:id/start", routineHandler.StartRoutine)

			// Draft of the routine being created
			routineGroup.PUT("/draft", routineHandler.UpdateDraft)
			routineGroup.POST("/draft/exercises", routineHandler.AddDraftExercise)
			routineGroup.DELETE("/draft/exercises/:index", routineHandler.RemoveDraftExercise)
		}

		// --- Session Routes ---
		sessionGroup := apiV1.Group("/session")
		{
			sessionGroup.GET("", sessionHandler.GetSession)
			sessionGroup.PUT("/exercises/:exerciseId/sets/:index", sessionHandler.UpdateSet)
			sessionGroup.POST("/exercises/:exerciseId/sets", sessionHandler.AddSet)
			sessionGroup.POST("/finish", sessionHandler.RequestFinish)
			sessionGroup.POST("/resume", sessionHandler.Resume)
			sessionGroup.PUT("/rating", sessionHandler.UpdateFinishForm)
			sessionGroup.POST("/save", sessionHandler.SaveLog)
			// POST /api/v1/session/cancel?confirm=true
			sessionGroup.POST("/cancel", sessionHandler.Cancel)
		}

		// --- History Routes ---
		historyGroup := apiV1.Group("/history")
		{
			historyGroup.GET("", historyHandler.ListHistory)
			historyGroup.GET("/:id", historyHandler.GetHistoryEntry)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || fallback == nil {
			abortWithError(c, http.StatusNotFound, "Route not found")
			return
		}
		fallback(c)
	})
}
