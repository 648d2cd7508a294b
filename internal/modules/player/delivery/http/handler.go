package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/player/dto"
	player "github.com/atulpawar07/sp-cricket-hub/internal/modules/player/service"
	"github.com/atulpawar07/sp-cricket-hub/pkg/request"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
	"github.com/atulpawar07/sp-cricket-hub/pkg/validator"
)

type PlayerHandler struct {
	playerService player.PlayerService
}

func NewPlayerHandler(playerService player.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.playerService.ListPlayers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Data(c, http.StatusOK, players)
}

func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.playerService.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PlayerHandler) GetPlayerStats(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.playerService.GetPlayerStats(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.playerService.CreatePlayer(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.playerService.UpdatePlayer(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.playerService.DeletePlayer(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "player deleted successfully"})
}
