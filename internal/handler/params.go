package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
)

// pathID parses the named path parameter as a positive integer identifier.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}
