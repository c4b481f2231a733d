package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/infrastructure/auth"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

const (
	// OwnerKey is the gin context key holding the resolved owner id.
	OwnerKey = "owner_id"

	ownerHeader = "X-User-ID"
)

// Owner resolves the acting user: the verified token subject, then the X-User-ID header,
// then defaultOwner. The result must parse as a uuid.
func Owner(defaultOwner string) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := auth.Subject(c)
		if !ok {
			owner = strings.TrimSpace(c.GetHeader(ownerHeader))
		}
		if owner == "" {
			owner = defaultOwner
		}
		if owner == "" {
			platformerrors.WriteUnauthorized(c, "no user identity on request")
			return
		}

		parsed, err := uuid.Parse(owner)
		if err != nil {
			platformerrors.WriteValidationError(c, "user id must be a uuid")
			return
		}
		owner = parsed.String()

		c.Set(OwnerKey, owner)
		reqLog := zerolog.Ctx(c.Request.Context()).With().Str("owner", owner).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))
		c.Next()
	}
}

// OwnerFromContext returns the owner resolved by Owner.
func OwnerFromContext(c *gin.Context) string {
	return c.GetString(OwnerKey)
}
