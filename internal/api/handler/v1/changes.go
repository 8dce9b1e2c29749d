package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventdesk/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ChangeFeed fans out data directory changes. *reconcile.Watcher satisfies it.
type ChangeFeed interface {
	Subscribe() (<-chan domain.Change, func())
}

type ChangesHandler struct {
	feed     ChangeFeed
	upgrader websocket.Upgrader
}

func NewChangesHandler(feed ChangeFeed, allowedOrigins []string) *ChangesHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &ChangesHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

type feedClient struct {
	conn    *websocket.Conn
	changes <-chan domain.Change
	done    chan struct{}
}

// HandleChanges godoc
// @Summary      Stream data directory changes
// @Description  Upgrades to a websocket and sends one JSON message per changed .dat file. Pass the token as ?token= when headers cannot be set.
// @Tags         changes
// @Produce      json
// @Param        token   query     string  false "bearer token"
// @Success      101      {object}   domain.Change
// @Failure      401      {object}   facade.Result
// @Router       /changes [get]
// @Security     BearerAuth
func (h *ChangesHandler) HandleChanges(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	changes, unsubscribe := h.feed.Subscribe()
	client := &feedClient{
		conn:    conn,
		changes: changes,
		done:    make(chan struct{}),
	}

	go client.readPump()
	client.writePump(unsubscribe)
}

// readPump only watches for the peer going away; clients never send data.
func (c *feedClient) readPump() {
	defer close(c.done)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("change feed closed", zap.Error(err))
			}
			return
		}
	}
}

func (c *feedClient) writePump(unsubscribe func()) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		unsubscribe()
		c.conn.Close()
	}()

	for {
		select {
		case change, ok := <-c.changes:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(change); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
