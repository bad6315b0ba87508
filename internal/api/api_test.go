package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-buddy/internal/api"
	"alcyxob/gym-buddy/internal/controller"
	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/repository/kv"
	"alcyxob/gym-buddy/internal/repository/memory"
	"alcyxob/gym-buddy/internal/service"
)

type flakyKV struct {
	repository.KVStore
	mu   sync.Mutex
	fail bool
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.KVStore.Set(ctx, key, value)
}

type testServer struct {
	router *gin.Engine
	kv     *flakyKV
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := &flakyKV{KVStore: memory.NewKVStore()}
	routineRepo, err := kv.NewRoutineStore(ctx, store)
	require.NoError(t, err)
	logRepo, err := kv.NewLogStore(ctx, store)
	require.NoError(t, err)

	routines := service.NewRoutineService(routineRepo)
	workouts := service.NewWorkoutService(routineRepo, logRepo)
	ctl := controller.New(routines, workouts)

	router := gin.New()
	api.SetupRoutes(router, ctl, routines, service.NewHistoryService(logRepo), func(c *gin.Context) {
		c.String(http.StatusOK, "asset "+c.Request.URL.Path)
	})
	return &testServer{router: router, kv: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

// createLegDay walks the create view over HTTP and returns the saved routine.
func (s *testServer) createLegDay(t *testing.T) api.RoutineResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/views/create", nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/v1/routines/draft", api.DraftDetailsRequest{Name: "Leg Day"}).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/routines/draft/exercises", api.DraftExerciseRequest{Name: "Squat", Sets: "3", Reps: "5"}).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/routines", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[api.RoutineCreatedResponse](t, rec)
	assert.Equal(t, controller.ViewHome, created.State.View)
	return created.Routine
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/api/v1/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(api.RequestIDHeader))
}

func TestWorkoutFlow(t *testing.T) {
	s := newTestServer(t)
	routine := s.createLegDay(t)
	require.Len(t, routine.Exercises, 1)
	squat := routine.Exercises[0].ID

	list := decode[[]api.RoutineResponse](t, s.do(t, http.MethodGet, "/api/v1/routines", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Leg Day", list[0].Name)

	rec := s.do(t, http.MethodPost, "/api/v1/routines/"+routine.ID+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, controller.ViewActive, decode[controller.Snapshot](t, rec).View)

	for i, w := range []string{"100", "110", "105"} {
		rec = s.do(t, http.MethodPut, "/api/v1/session/exercises/"+squat+"/sets/"+strconv.Itoa(i), api.UpdateSetRequest{Field: "weight", Value: w})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/session/exercises/"+squat+"/sets", nil).Code)

	rec = s.do(t, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"weight":"110"`)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/session/finish", nil).Code)
	rating, comment := 4, "solid"
	rec = s.do(t, http.MethodPut, "/api/v1/session/rating", api.FinishFormRequest{Rating: &rating, Comment: &comment})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, controller.FinishForm{Rating: 4, Comment: "solid"}, decode[controller.Snapshot](t, rec).Finish)

	rec = s.do(t, http.MethodPost, "/api/v1/session/save", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	saved := decode[api.LogSavedResponse](t, rec)
	assert.Equal(t, controller.ViewHistory, saved.State.View)
	assert.Equal(t, "Leg Day", saved.Log.RoutineName)
	require.Len(t, saved.Log.Summary, 1)
	assert.Equal(t, 4, saved.Log.Summary[0].SetCount)
	assert.Equal(t, "110", saved.Log.Summary[0].BestWeight)

	history := decode[[]api.LogResponse](t, s.do(t, http.MethodGet, "/api/v1/history", nil))
	require.Len(t, history, 1)
	assert.Equal(t, saved.Log.ID, history[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/history/"+saved.Log.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/history/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	routine := s.createLegDay(t)

	t.Run("invalid transition is 409", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/session/finish", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.NotEmpty(t, errorMessage(t, rec))
	})

	t.Run("unknown view is 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/views/details", nil).Code)
	})

	t.Run("delete without confirmation is 428", func(t *testing.T) {
		assert.Equal(t, http.StatusPreconditionRequired, s.do(t, http.MethodDelete, "/api/v1/routines/"+routine.ID, nil).Code)
	})

	t.Run("unknown routine is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/v1/routines/nope/start", nil).Code)
	})

	t.Run("no session is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/session", nil).Code)
	})

	t.Run("bad history limit is 400", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/history?limit=-1", nil).Code)
	})

	t.Run("session errors", func(t *testing.T) {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/routines/"+routine.ID+"/start", nil).Code)
		squat := routine.Exercises[0].ID

		rec := s.do(t, http.MethodPut, "/api/v1/session/exercises/"+squat+"/sets/9", api.UpdateSetRequest{Field: "reps", Value: "5"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = s.do(t, http.MethodPut, "/api/v1/session/exercises/"+squat+"/sets/0", api.UpdateSetRequest{Field: "tempo", Value: "5"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = s.do(t, http.MethodPut, "/api/v1/session/exercises/bench/sets/0", api.UpdateSetRequest{Field: "reps", Value: "5"})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		assert.Equal(t, http.StatusPreconditionRequired, s.do(t, http.MethodPost, "/api/v1/session/cancel", nil).Code)
		rec = s.do(t, http.MethodPost, "/api/v1/session/cancel?confirm=true", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, controller.ViewHome, decode[controller.Snapshot](t, rec).View)
	})

	t.Run("confirmed delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/v1/routines/"+routine.ID+"?confirm=true", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/v1/routines/"+routine.ID+"?confirm=true", nil).Code)
	})
}

func TestStorageFailureIs500WithNotice(t *testing.T) {
	s := newTestServer(t)
	routine := s.createLegDay(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/routines/"+routine.ID+"/start", nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/session/finish", nil).Code)

	s.kv.mu.Lock()
	s.kv.fail = true
	s.kv.mu.Unlock()

	rec := s.do(t, http.MethodPost, "/api/v1/session/save", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, errorMessage(t, rec), "disk full")

	snap := decode[controller.Snapshot](t, s.do(t, http.MethodGet, "/api/v1/state", nil))
	assert.Equal(t, controller.ViewFinish, snap.View)
	assert.NotEmpty(t, snap.Notice)
	assert.NotNil(t, snap.Session)
}

func TestDraftEndpoints(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/views/create", nil).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/routines/draft/exercises", api.DraftExerciseRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/routines/draft/exercises", api.DraftExerciseRequest{Name: "Squat"}).Code)
	rec = s.do(t, http.MethodDelete, "/api/v1/routines/draft/exercises/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[controller.Snapshot](t, rec).Draft.Exercises)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodDelete, "/api/v1/routines/draft/exercises/x", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodDelete, "/api/v1/routines/draft/exercises/3", nil).Code)

	rec = s.do(t, http.MethodPost, "/api/v1/routines", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty draft cannot be saved")
}

func TestSaveRoutineRejectsHugeSetCount(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/views/create", nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/v1/routines/draft", api.DraftDetailsRequest{Name: "Volume"}).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/routines/draft/exercises", api.DraftExerciseRequest{Name: "Curl", Sets: "999999999"}).Code)

	rec := s.do(t, http.MethodPost, "/api/v1/routines", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "setcount")
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/index.html", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asset /index.html", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
