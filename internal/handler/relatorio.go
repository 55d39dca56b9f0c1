package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/analytics"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/dto"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/worker"

	"github.com/gin-gonic/gin"
)

type RelatorioHandler struct {
	svc        service.RelatorioService
	dispatcher *worker.Dispatcher
	cronSecret string
}

func NewRelatorioHandler(svc service.RelatorioService, dispatcher *worker.Dispatcher, cronSecret string) *RelatorioHandler {
	return &RelatorioHandler{svc: svc, dispatcher: dispatcher, cronSecret: cronSecret}
}

// Montar returns the current report snapshot as JSON, without sending it.
func (h *RelatorioHandler) Montar(c *gin.Context) {
	rel, err := h.svc.Montar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar relatório"))
		return
	}
	c.JSON(http.StatusOK, rel)
}

// Disparar enqueues a manual daily-report dispatch. The endpoint is meant
// for external schedulers, so it authenticates with a shared secret
// instead of a user token.
func (h *RelatorioHandler) Disparar(c *gin.Context) {
	if !h.autorizado(c) {
		c.JSON(http.StatusUnauthorized, apierror.New("Token de cron inválido"))
		return
	}

	if !analytics.DiaUtil(time.Now()) {
		c.JSON(http.StatusOK, dto.EnvioRelatorioResponse{Ignorado: true, Motivo: "fim de semana"})
		return
	}

	payload := worker.RelatorioJobPayload{Origem: "manual"}
	if err := h.dispatcher.EnqueueRelatorio(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao enfileirar relatório"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"enfileirado": true})
}

func (h *RelatorioHandler) autorizado(c *gin.Context) bool {
	if h.cronSecret == "" {
		return false
	}
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) == 1
}
