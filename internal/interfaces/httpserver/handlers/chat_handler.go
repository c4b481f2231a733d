package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/convstate"
	"github.com/janhq/mirror-server/internal/domain/session"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/requests"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/responses"
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	flows    ChatFlows
	sessions session.Service
	schema   *jsonschema.Schema
	log      zerolog.Logger
}

func NewChatHandler(flows ChatFlows, sessions session.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		flows:    flows,
		sessions: sessions,
		schema:   new(jsonschema.Reflector).Reflect(&convstate.AgentState{}),
		log:      log.With().Str("handler", "chat").Logger(),
	}
}

// Send handles POST /v1/chat/messages
// @Summary Send a chat message
// @Description Routes the message to the mindfulness agent or a wise mentor and returns the reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body requests.ChatMessageRequest true "Chat turn"
// @Success 200 {object} council.ChatReply
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 409 {object} platformerrors.HTTPErrorResponse
// @Router /v1/chat/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req requests.ChatMessageRequest
	if !bindJSON(c, &req, false) {
		return
	}

	reply, err := h.flows.Chat(c.Request.Context(), owner(c), req.ToInput())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// OpenSession handles GET /v1/chat/session
// @Summary Get the open chat session
// @Tags Chat
// @Produce json
// @Success 200 {object} responses.SessionResponse
// @Router /v1/chat/session [get]
func (h *ChatHandler) OpenSession(c *gin.Context) {
	sess, open, err := h.sessions.FindOpenSession(c.Request.Context(), owner(c))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.SessionResponse{Session: sess, Open: open})
}

// Messages handles GET /v1/chat/sessions/:session_id/messages
// @Summary List session messages
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} responses.ListResponse[session.Message]
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/chat/sessions/{session_id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	sessionID, ok := pathUUID(c, "session_id")
	if !ok {
		return
	}

	history, err := h.sessions.ListHistory(c.Request.Context(), owner(c), sessionID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewList(history))
}

// EndSession handles POST /v1/chat/sessions/:session_id/end
// @Summary End a chat session
// @Description Idempotent; ending an ended session returns it unchanged
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} session.Session
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/chat/sessions/{session_id}/end [post]
func (h *ChatHandler) EndSession(c *gin.Context) {
	sessionID, ok := pathUUID(c, "session_id")
	if !ok {
		return
	}

	sess, err := h.sessions.EndSession(c.Request.Context(), owner(c), sessionID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Reset handles POST /v1/chat/reset
// @Summary Reset the conversation
// @Description Clears the conversation state and ends the open session
// @Tags Chat
// @Accept json
// @Param request body requests.ResetChatRequest false "State key"
// @Success 204
// @Router /v1/chat/reset [post]
func (h *ChatHandler) Reset(c *gin.Context) {
	var req requests.ResetChatRequest
	if !bindJSON(c, &req, true) {
		return
	}

	if err := h.flows.Reset(c.Request.Context(), owner(c), req.SessionKey); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// State handles GET /v1/chat/state
// @Summary Get conversation state
// @Tags Chat
// @Produce json
// @Param session_key query string false "State key" default(default)
// @Success 200 {object} responses.StateResponse
// @Router /v1/chat/state [get]
func (h *ChatHandler) State(c *gin.Context) {
	key := convstate.NormalizeKey(c.Query("session_key"))

	state, found, err := h.flows.State(c.Request.Context(), owner(c), key)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.StateResponse{SessionKey: key, Found: found, State: state})
}

// StateSchema handles GET /v1/chat/state/schema
// @Summary JSON schema of the conversation state
// @Tags Chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /v1/chat/state/schema [get]
func (h *ChatHandler) StateSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.schema)
}
