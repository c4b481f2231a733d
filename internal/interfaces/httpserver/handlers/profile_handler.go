package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/profile"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/requests"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/responses"
)

// ProfileHandler exposes the caller's profile.
type ProfileHandler struct {
	service profile.Service
	log     zerolog.Logger
}

func NewProfileHandler(service profile.Service, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log.With().Str("handler", "profile").Logger(),
	}
}

// Get handles GET /v1/profile
// @Summary Get profile
// @Description Returns the caller's profile, creating the default one on first access
// @Tags Profile
// @Produce json
// @Success 200 {object} profile.Profile
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /v1/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.service.GetOrCreate(c.Request.Context(), owner(c))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update handles PATCH /v1/profile
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body requests.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} profile.Profile
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req requests.UpdateProfileRequest
	if !bindJSON(c, &req, false) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), owner(c), req.ToParams())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	h.log.Debug().Str("owner", p.ID).Msg("profile updated")
	c.JSON(http.StatusOK, p)
}
