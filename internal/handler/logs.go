package handler

import (
	"net/http"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct{ svc service.LogService }

func NewLogsHandler(svc service.LogService) *LogsHandler {
	return &LogsHandler{svc: svc}
}

func (h *LogsHandler) Listar(c *gin.Context) {
	page, limit := pagination(c)
	resp, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar logs"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
