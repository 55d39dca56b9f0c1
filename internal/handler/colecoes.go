package handler

import (
	"net/http"
	"strconv"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ColecoesHandler struct{ svc service.ColecaoService }

func NewColecoesHandler(svc service.ColecaoService) *ColecoesHandler {
	return &ColecoesHandler{svc: svc}
}

func (h *ColecoesHandler) Criar(c *gin.Context) {
	var req dto.CriarColecaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ColecoesHandler) Listar(c *gin.Context) {
	incluirDesabilitadas, _ := strconv.ParseBool(c.DefaultQuery("incluir_desabilitadas", "false"))
	resp, err := h.svc.Listar(c.Request.Context(), incluirDesabilitadas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar coleções"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ColecoesHandler) Buscar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ColecoesHandler) Atualizar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AtualizarColecaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), usuarioID(c), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ColecoesHandler) Desabilitar(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Desabilitar(c.Request.Context(), usuarioID(c), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ColecoesHandler) Excluir(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), usuarioID(c), id); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
