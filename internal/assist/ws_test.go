package assist

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/eleven-am/sight-backend/internal/convo"
	"github.com/eleven-am/sight-backend/internal/dto"
	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func newWSTestServer(t *testing.T, gen *staticGenerator) (*httptest.Server, convo.Store) {
	t.Helper()

	sessions := convo.NewMemoryStore(0)
	h := NewHandler(&fakeLabeler{}, &fakeSampler{}, gen, sessions, nil, temporal.NewAggregator(), 0, testLogger())

	e := echo.New()
	e.GET("/chat/ws", h.ChatWS)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, sessions
}

func newFocusedSession(t *testing.T, sessions convo.Store) *convo.Session {
	t.Helper()

	obj := vision.DetectedObject{ID: 1, Name: "cup", Count: 1, Color: "red"}
	sess := &convo.Session{
		Kind:     shared.SceneKindImage,
		Question: "what color is the cup",
		Objects:  []vision.DetectedObject{obj},
	}
	if err := sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := sessions.SetFocusObject(context.Background(), sess.ID, obj); err != nil {
		t.Fatalf("set focus: %v", err)
	}
	return sess
}

func TestChatWS_TurnLoop(t *testing.T) {
	gen := &staticGenerator{answer: "It is red."}
	server, sessions := newWSTestServer(t, gen)
	sess := newFocusedSession(t, sessions)

	wsURL := "ws" + server.URL[4:] + "/chat/ws?session_id=" + sess.ID
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	if err := ws.WriteJSON(dto.WSChatMessage{Text: "what color is it"}); err != nil {
		t.Fatalf("write error: %v", err)
	}

	var reply dto.WSChatReply
	if err := ws.ReadJSON(&reply); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !reply.OK {
		t.Fatalf("expected ok reply, got %+v", reply)
	}
	if reply.Answer != "It is red." {
		t.Errorf("unexpected answer %q", reply.Answer)
	}

	// a second turn on the same socket
	if err := ws.WriteJSON(dto.WSChatMessage{Text: "and its position"}); err != nil {
		t.Fatalf("write error: %v", err)
	}
	if err := ws.ReadJSON(&reply); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !reply.OK {
		t.Fatalf("expected ok reply on second turn, got %+v", reply)
	}

	stored, err := sessions.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(stored.History) != 4 {
		t.Errorf("expected 4 history turns after two exchanges, got %d", len(stored.History))
	}
}

func TestChatWS_InBandErrors(t *testing.T) {
	server, sessions := newWSTestServer(t, &staticGenerator{answer: "ok"})
	sess := newFocusedSession(t, sessions)

	wsURL := "ws" + server.URL[4:] + "/chat/ws?session_id=" + sess.ID
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	if err := ws.WriteJSON(dto.WSChatMessage{Text: "   "}); err != nil {
		t.Fatalf("write error: %v", err)
	}
	var reply dto.WSChatReply
	if err := ws.ReadJSON(&reply); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if reply.OK || reply.Error != "missing_text" {
		t.Errorf("expected missing_text error, got %+v", reply)
	}
}

func TestChatWS_SessionEndClosesSocket(t *testing.T) {
	server, sessions := newWSTestServer(t, &staticGenerator{answer: "ok"})
	sess := newFocusedSession(t, sessions)

	wsURL := "ws" + server.URL[4:] + "/chat/ws?session_id=" + sess.ID
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	if err := sessions.End(context.Background(), sess.ID); err != nil {
		t.Fatalf("end session: %v", err)
	}

	if err := ws.WriteJSON(dto.WSChatMessage{Text: "anyone there"}); err != nil {
		t.Fatalf("write error: %v", err)
	}
	var reply dto.WSChatReply
	if err := ws.ReadJSON(&reply); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if reply.Error != "session_invalid" {
		t.Errorf("expected session_invalid reply, got %+v", reply)
	}

	// the server sends a close frame after reporting the loss
	if err := ws.ReadJSON(&reply); err == nil {
		t.Error("expected the socket to close after session loss")
	}
}

func TestChatWS_RejectsMissingSession(t *testing.T) {
	server, _ := newWSTestServer(t, &staticGenerator{})

	wsURL := "ws" + server.URL[4:] + "/chat/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected handshake to fail without session_id")
	}
	if resp != nil && resp.StatusCode != 400 {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}
