package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/dto"
	playerstat "github.com/atulpawar07/sp-cricket-hub/internal/modules/playerstat/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	commonDto "github.com/atulpawar07/sp-cricket-hub/pkg/dto"
	"github.com/atulpawar07/sp-cricket-hub/pkg/request"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
	"github.com/atulpawar07/sp-cricket-hub/pkg/validator"
)

type PlayerStatHandler struct {
	statService playerstat.PlayerStatService
}

func NewPlayerStatHandler(statService playerstat.PlayerStatService) *PlayerStatHandler {
	return &PlayerStatHandler{statService: statService}
}

func (h *PlayerStatHandler) CreateStat(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreatePlayerStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.statService.CreateStat(c.Request.Context(), sess, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PlayerStatHandler) UpdateStat(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdatePlayerStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.statService.UpdateStat(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PlayerStatHandler) DeleteStat(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.statService.DeleteStat(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "player stat deleted successfully"})
}

// ImportCSV takes the sheet as the "file" part of a multipart form.
func (h *PlayerStatHandler) ImportCSV(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv file is required"})
		return
	}
	file, err := commonDto.OpenUpload(fh, dto.MaxImportSize)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	res, err := h.statService.ImportCSV(c.Request.Context(), sess, file.Reader)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
