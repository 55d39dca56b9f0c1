package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/apierror"
	"github.com/ValdirGR/pcpflorlinda2026-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// tvPushInterval is how often a connected TV receives a fresh snapshot.
// The service caches snapshots in Redis, so frequent pushes stay cheap.
const tvPushInterval = 15 * time.Second

var tvUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TVs ficam na rede da fábrica, sem origem fixa.
		return true
	},
}

type TVHandler struct{ svc service.DashboardService }

func NewTVHandler(svc service.DashboardService) *TVHandler {
	return &TVHandler{svc: svc}
}

// Painel serves the snapshot once, for displays that poll over plain HTTP.
func (h *TVHandler) Painel(c *gin.Context) {
	resp, err := h.svc.PainelTV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar painel da TV"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stream upgrades to a websocket and pushes a snapshot immediately and
// then on every tick until the client goes away.
func (h *TVHandler) Stream(c *gin.Context) {
	conn, err := tvUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("falha no upgrade do websocket da TV")
		return
	}
	defer conn.Close()

	// Reader goroutine only to detect the client closing the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	if err := h.enviarSnapshot(conn, ctx); err != nil {
		return
	}

	ticker := time.NewTicker(tvPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.enviarSnapshot(conn, ctx); err != nil {
				return
			}
		}
	}
}

func (h *TVHandler) enviarSnapshot(conn *websocket.Conn, ctx context.Context) error {
	snapshot, err := h.svc.PainelTV(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("falha ao montar snapshot da TV")
		return nil
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(snapshot)
}
