package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulpawar07/sp-cricket-hub/internal/modules/admin/dto"
	adminService "github.com/atulpawar07/sp-cricket-hub/internal/modules/admin/service"
	"github.com/atulpawar07/sp-cricket-hub/internal/session"
	"github.com/atulpawar07/sp-cricket-hub/pkg/request"
	"github.com/atulpawar07/sp-cricket-hub/pkg/response"
	"github.com/atulpawar07/sp-cricket-hub/pkg/validator"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) ListMembers(c *gin.Context) {
	res, err := h.adminService.ListMembers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Data(c, http.StatusOK, res)
}

func (h *AdminHandler) UpdateMemberRole(c *gin.Context) {
	sess, err := session.Require(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := request.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.adminService.SetMemberRole(c.Request.Context(), sess, id, input.Role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
