package relay

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/autocarepro/autocare-api/internal/core/domain"
	"github.com/autocarepro/autocare-api/internal/core/ports"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin checks belong to the fronting proxy; the token is the
	// actual credential here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebsocketHandler upgrades relay connections. A session authenticates with
// its JWT, joins exactly one channel (admin, or its private user channel)
// and receives events until disconnect. There is no resume token: a
// reconnecting session simply re-joins its channel.
type WebsocketHandler struct {
	hub  *Hub
	auth ports.AuthService
	log  zerolog.Logger
}

func NewWebsocketHandler(hub *Hub, auth ports.AuthService, log zerolog.Logger) *WebsocketHandler {
	return &WebsocketHandler{hub: hub, auth: auth, log: log}
}

// Connect handles GET /ws. The token is taken from the query string (the
// browser websocket API cannot set headers) with the Authorization header as
// fallback.
func (h *WebsocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		header := c.Request().Header.Get("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	actor, err := h.auth.VerifyToken(token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	channel := ports.UserChannel(actor.UserID)
	if actor.Role == domain.RoleAdmin {
		channel = ports.ChannelAdmin
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	session := h.hub.Subscribe(channel)
	h.log.Info().Str("channel", channel).Str("user_id", actor.UserID).Msg("relay session connected")

	go h.writePump(conn, session)
	go h.readPump(conn, session, actor.UserID)

	return nil
}

// writePump forwards hub events to the socket and keeps the connection
// alive with pings.
func (h *WebsocketHandler) writePump(conn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-session.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pong handlers run, and tears the session
// down on any read error (disconnect or transport failure).
func (h *WebsocketHandler) readPump(conn *websocket.Conn, session *Session, userID string) {
	defer func() {
		h.hub.Unsubscribe(session)
		conn.Close()
		h.log.Info().Str("channel", session.Channel).Str("user_id", userID).Msg("relay session disconnected")
	}()

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
