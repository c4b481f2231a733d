package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/meditation"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/requests"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/responses"
)

// MeditationHandler exposes guided meditation sessions.
type MeditationHandler struct {
	flows      MeditationFlows
	meditation meditation.Service
	log        zerolog.Logger
}

func NewMeditationHandler(flows MeditationFlows, meditationService meditation.Service, log zerolog.Logger) *MeditationHandler {
	return &MeditationHandler{
		flows:      flows,
		meditation: meditationService,
		log:        log.With().Str("handler", "meditation").Logger(),
	}
}

// Stages handles GET /v1/meditation/stages
// @Summary List meditation stages
// @Tags Meditation
// @Produce json
// @Success 200 {object} responses.StagesResponse
// @Router /v1/meditation/stages [get]
func (h *MeditationHandler) Stages(c *gin.Context) {
	catalog := h.flows.Catalog()
	c.JSON(http.StatusOK, responses.StagesResponse{
		Stages:        catalog.Stages,
		TotalDuration: catalog.TotalDuration(),
	})
}

// StageContent handles GET /v1/meditation/stages/:stage_id/content
// @Summary Guided text for a stage
// @Tags Meditation
// @Produce json
// @Param stage_id path string true "Stage" Enums(welcome, breathing, bodyscan, visualization, closing)
// @Success 200 {object} council.StageContent
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/meditation/stages/{stage_id}/content [get]
func (h *MeditationHandler) StageContent(c *gin.Context) {
	content, err := h.flows.StageContent(c.Request.Context(), owner(c), c.Param("stage_id"))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

// Start handles POST /v1/meditation/sessions
// @Summary Start or resume a session
// @Description Returns the incomplete session when one exists
// @Tags Meditation
// @Accept json
// @Produce json
// @Param request body requests.StartMeditationRequest false "Duration"
// @Success 200 {object} responses.MeditationStartResponse "resumed"
// @Success 201 {object} responses.MeditationStartResponse "started"
// @Router /v1/meditation/sessions [post]
func (h *MeditationHandler) Start(c *gin.Context) {
	var req requests.StartMeditationRequest
	if !bindJSON(c, &req, true) {
		return
	}

	sess, resumed, err := h.flows.StartMeditation(c.Request.Context(), owner(c), req.DurationSeconds)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	c.JSON(status, responses.MeditationStartResponse{Session: sess, Resumed: resumed})
}

// AdvanceStage handles POST /v1/meditation/sessions/:session_id/stage
// @Summary Record stage progress
// @Description Stages never move backwards; an earlier stage leaves the session unchanged
// @Tags Meditation
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body requests.AdvanceStageRequest true "Stage"
// @Success 200 {object} meditation.Session
// @Failure 409 {object} platformerrors.HTTPErrorResponse
// @Router /v1/meditation/sessions/{session_id}/stage [post]
func (h *MeditationHandler) AdvanceStage(c *gin.Context) {
	sessionID, ok := pathUUID(c, "session_id")
	if !ok {
		return
	}
	var req requests.AdvanceStageRequest
	if !bindJSON(c, &req, false) {
		return
	}

	sess, err := h.meditation.AdvanceStage(c.Request.Context(), owner(c), sessionID, meditation.Stage(req.Stage))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Complete handles POST /v1/meditation/sessions/:session_id/complete
// @Summary Complete a session
// @Tags Meditation
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} meditation.Session
// @Router /v1/meditation/sessions/{session_id}/complete [post]
func (h *MeditationHandler) Complete(c *gin.Context) {
	sessionID, ok := pathUUID(c, "session_id")
	if !ok {
		return
	}

	sess, err := h.meditation.Complete(c.Request.Context(), owner(c), sessionID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Reflect handles POST /v1/meditation/sessions/:session_id/reflections
// @Summary Share a reflection
// @Description Completes the session, stores the reflection with an insight and optionally mirrors it to the journal
// @Tags Meditation
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body requests.ReflectionRequest true "Reflection"
// @Success 201 {object} council.ReflectReply
// @Router /v1/meditation/sessions/{session_id}/reflections [post]
func (h *MeditationHandler) Reflect(c *gin.Context) {
	sessionID, ok := pathUUID(c, "session_id")
	if !ok {
		return
	}
	var req requests.ReflectionRequest
	if !bindJSON(c, &req, false) {
		return
	}

	reply, err := h.flows.Reflect(c.Request.Context(), owner(c), sessionID, req.ToInput())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// Reflections handles GET /v1/meditation/sessions/:session_id/reflections
// @Summary List reflections
// @Tags Meditation
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.ListResponse[meditation.Reflection]
// @Router /v1/meditation/sessions/{session_id}/reflections [get]
func (h *MeditationHandler) Reflections(c *gin.Context) {
	sessionID, ok := pathUUID(c, "session_id")
	if !ok {
		return
	}

	reflections, err := h.meditation.ListReflections(c.Request.Context(), owner(c), sessionID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewList(reflections))
}
