// Package request holds small helpers shared by the HTTP handlers.
package request

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/pkg/apperror"
	"github.com/atulpawar07/sp-cricket-hub/pkg/dto"
)

// ParamID parses the :name path parameter as a uuid.
func ParamID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s format: %w", name, apperror.ErrBadRequest)
	}
	return id, nil
}

// FormImage opens the named multipart file if the request carries one.
// A missing part is not an error and returns nil.
func FormImage(c *gin.Context, field string) (*dto.UploadFile, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, nil
	}
	return dto.OpenUpload(fh, dto.MaxImageSize)
}
