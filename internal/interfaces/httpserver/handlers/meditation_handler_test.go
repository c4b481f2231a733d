package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/mirror-server/internal/domain/council"
	"github.com/janhq/mirror-server/internal/domain/meditation"
)

const meditationID = "66666666-6666-6666-6666-666666666666"

func TestMeditationHandler_Stages(t *testing.T) {
	catalog, err := meditation.LoadCatalog()
	require.NoError(t, err)
	deps := newTestDeps()
	deps.flows.CatalogValue = catalog
	router := setupTestRouter(t, deps)

	w := doRequest(router, http.MethodGet, "/v1/meditation/stages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Stages        []meditation.StageInfo `json:"stages"`
		TotalDuration int                    `json:"total_duration"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Stages, 5)
	assert.Equal(t, 360, got.TotalDuration)
	assert.NotContains(t, w.Body.String(), "fallback")
}

func TestMeditationHandler_StartStatus(t *testing.T) {
	deps := newTestDeps()
	resumed := false
	deps.flows.StartMeditationFunc = func(ctx context.Context, owner string, duration int) (*meditation.Session, bool, error) {
		return &meditation.Session{ID: meditationID, DurationSeconds: 600}, resumed, nil
	}
	router := setupTestRouter(t, deps)

	w := doRequest(router, http.MethodPost, "/v1/meditation/sessions", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	resumed = true
	w = doRequest(router, http.MethodPost, "/v1/meditation/sessions", map[string]any{"duration_seconds": 300})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resumed":true`)
}

func TestMeditationHandler_AdvanceStage(t *testing.T) {
	deps := newTestDeps()
	var got meditation.Stage
	deps.meditation.AdvanceStageFunc = func(ctx context.Context, owner, id string, stage meditation.Stage) (*meditation.Session, error) {
		got = stage
		return &meditation.Session{ID: id, StageReached: stage}, nil
	}
	router := setupTestRouter(t, deps)

	w := doRequest(router, http.MethodPost, "/v1/meditation/sessions/"+meditationID+"/stage", map[string]any{"stage": "bodyscan"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, meditation.StageBodyScan, got)

	w = doRequest(router, http.MethodPost, "/v1/meditation/sessions/"+meditationID+"/stage", map[string]any{"stage": "levitation"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeditationHandler_Reflect(t *testing.T) {
	deps := newTestDeps()
	var got council.ReflectInput
	deps.flows.ReflectFunc = func(ctx context.Context, owner, id string, in council.ReflectInput) (*council.ReflectReply, error) {
		got = in
		return &council.ReflectReply{
			Session:    &meditation.Session{ID: id, Completed: true},
			Reflection: &meditation.Reflection{SessionID: id, Content: in.Content, Insight: "Stay with this calm."},
		}, nil
	}
	router := setupTestRouter(t, deps)

	w := doRequest(router, http.MethodPost, "/v1/meditation/sessions/"+meditationID+"/reflections", map[string]any{
		"content":           "I felt lighter",
		"emotional_state":   "calm",
		"mirror_to_journal": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, got.MirrorToJournal)
	require.NotNil(t, got.EmotionalState)
	assert.Equal(t, "calm", *got.EmotionalState)
	assert.Contains(t, w.Body.String(), "Stay with this calm.")
}

func TestMeditationHandler_Reflections(t *testing.T) {
	deps := newTestDeps()
	deps.meditation.ListReflectionsFunc = func(ctx context.Context, owner, id string) ([]meditation.Reflection, error) {
		return []meditation.Reflection{{SessionID: id, Content: "ok"}}, nil
	}
	router := setupTestRouter(t, deps)

	w := doRequest(router, http.MethodGet, "/v1/meditation/sessions/"+meditationID+"/reflections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}
