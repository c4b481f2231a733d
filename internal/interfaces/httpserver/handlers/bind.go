package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/janhq/mirror-server/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

// bindJSON decodes the body into req and writes a 400 on failure. An empty body is
// accepted when allowEmpty is set.
func bindJSON(c *gin.Context, req any, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	platformerrors.WriteValidationError(c, validationMessage(err))
	return false
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func owner(c *gin.Context) string {
	return middlewares.OwnerFromContext(c)
}

// pathUUID reads a uuid path parameter and writes a 400 when it does not parse.
func pathUUID(c *gin.Context, name string) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		platformerrors.WriteValidationError(c, name+" must be a uuid")
		return "", false
	}
	return id.String(), true
}
