package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// LinkErrorResponse reports a synthesized entry that was stored but not linked to its
// followup. Clients retry with POST /v1/journal/follow-ups/:followup_id/link.
type LinkErrorResponse struct {
	Error      *platformerrors.HTTPErrorDetail `json:"error"`
	Entry      *journal.Entry                  `json:"entry"`
	FollowupID string                          `json:"followup_id"`
	Data       any                             `json:"data,omitempty"`
}

// HandleError writes err in the platform error shape. A *journal.LinkError keeps the
// stored entry in the body so it is not created twice.
func HandleError(c *gin.Context, err error) {
	var linkErr *journal.LinkError
	if errors.As(err, &linkErr) {
		HandleLinkError(c, linkErr, nil)
		return
	}
	platformerrors.WriteError(c, err)
}

// HandleLinkError writes a link failure together with whatever the flow already produced.
func HandleLinkError(c *gin.Context, linkErr *journal.LinkError, data any) {
	zerolog.Ctx(c.Request.Context()).Error().Err(linkErr).Str("followup_id", linkErr.FollowupID).Msg("followup link failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, LinkErrorResponse{
		Error: &platformerrors.HTTPErrorDetail{
			Message:   "entry stored but followup link failed",
			Type:      "followup_link_error",
			RequestID: platformerrors.RequestIDFromContext(c.Request.Context()),
		},
		Entry:      linkErr.Entry,
		FollowupID: linkErr.FollowupID,
		Data:       data,
	})
}

// ListResponse wraps collections.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Count: len(items)}
}
