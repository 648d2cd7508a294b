package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/dto"
	photo "github.com/atulpawar07/sp-cricket-hub/internal/modules/photo/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	commonDto "github.com/atulpawar07/sp-cricket-hub/pkg/dto"
	"github.com/atulpawar07/sp-cricket-hub/pkg/request"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
	"github.com/atulpawar07/sp-cricket-hub/pkg/validator"
)

type PhotoHandler struct {
	photoService photo.PhotoService
}

func NewPhotoHandler(photoService photo.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	var filter dto.PhotoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	photos, err := h.photoService.ListPhotos(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Data(c, http.StatusOK, photos)
}

func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.photoService.GetPhoto(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// CreatePhoto accepts either a multipart form with an "image" file or a JSON
// body carrying image_url.
func (h *PhotoHandler) CreatePhoto(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreatePhotoRequest
	var file *commonDto.UploadFile
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
			return
		}
		file, err = request.FormImage(c, "image")
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		defer file.Close()
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.photoService.CreatePhoto(c.Request.Context(), sess, req, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PhotoHandler) UpdatePhoto(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.photoService.UpdatePhoto(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo deleted successfully"})
}
