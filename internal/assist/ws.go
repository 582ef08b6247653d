package assist

import (
	"net/http"
	"strings"
	"time"

	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/convo"
	"github.com/eleven-am/sight-backend/internal/dto"
	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait      = 10 * time.Second
	wsMaxMessageSize = 16 * 1024
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatWS serves follow-up turns over a websocket: each inbound text
// message carries one turn with the same semantics as POST /chat. The
// socket closes when the session expires or is ended.
//
// @Summary      Follow-up chat over websocket
// @Tags         assist
// @Param        session_id  query  string  true  "session id"
// @Success      101  {string}  string  "switching protocols"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /chat/ws [get]
func (h *Handler) ChatWS(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return shared.BadRequest("missing_session_id", "missing session_id")
	}

	ctx := c.Request().Context()
	if _, err := h.sessions.Get(ctx, sessionID); err != nil {
		return shared.BadRequest("session_invalid", "session expired or invalid")
	}

	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.SetReadLimit(wsMaxMessageSize)
	log := h.logger.With("session_id", sessionID)
	log.Info("chat socket opened")

	for {
		var msg dto.WSChatMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("chat socket read failed", "error", err)
			}
			return nil
		}

		reply := h.chatTurn(c, sessionID, msg.Text)

		ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := ws.WriteJSON(reply); err != nil {
			log.Debug("chat socket write failed", "error", err)
			return nil
		}

		// session loss is terminal for the socket
		if reply.Error == "session_invalid" {
			ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
			return nil
		}
	}
}

// chatTurn applies one follow-up turn and shapes the socket reply.
// Errors stay in-band; the transport error path is reserved for the
// socket itself.
func (h *Handler) chatTurn(c echo.Context, sessionID, text string) dto.WSChatReply {
	text = strings.TrimSpace(text)
	if text == "" {
		return dto.WSChatReply{Error: "missing_text"}
	}

	ctx := c.Request().Context()
	sess, err := h.sessions.Get(ctx, sessionID)
	if err != nil {
		return dto.WSChatReply{Error: "session_invalid"}
	}
	if !sess.HasFocus() {
		return dto.WSChatReply{Error: "no_focus_object"}
	}

	h.sessions.AppendHistory(ctx, sessionID, convo.RoleUser, text)

	reply, err := h.generator.Answer(ctx, answer.Request{
		Question: text,
		Temporal: sess.Kind == shared.SceneKindVideo,
		Object:   sess.FocusObject,
		Objects:  sess.Objects,
		Entity:   sess.FocusEntity,
		Entities: sess.Entities,
	})
	if err != nil {
		h.logger.Error("answer generation failed", "error", err, "session_id", sessionID)
		return dto.WSChatReply{Error: "answer_failed"}
	}

	h.sessions.AppendHistory(ctx, sessionID, convo.RoleAssistant, reply)
	return dto.WSChatReply{OK: true, Answer: reply}
}
