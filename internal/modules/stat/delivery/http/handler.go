package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statService "github.com/atulpawar07/sp-cricket-hub/internal/modules/stat/service"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetSummary(c *gin.Context) {
	summary, err := h.statService.GetSummary(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
