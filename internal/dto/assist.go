package dto

import (
	"github.com/eleven-am/sight-backend/internal/ambiguity"
	"github.com/eleven-am/sight-backend/internal/record"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
)

type ClarificationPrompt struct {
	Question string   `json:"question" example:"I see multiple cups. Which one do you mean?"`
	Options  []string `json:"options" example:"cup #1 (red, left),cup #2 (blue, right)"`
}

type AnalyzeResponse struct {
	OK   bool   `json:"ok" example:"true"`
	Mode string `json:"mode" example:"clarify"`
	Kind string `json:"kind" example:"image"`

	Answer        string               `json:"answer,omitempty" example:"The cup on the left is red."`
	SessionID     string               `json:"session_id,omitempty" example:"conv_9f6d1c2ab34e478f8c1d2e3f4a5b6c7d"`
	Clarification *ClarificationPrompt `json:"clarification,omitempty"`

	Ambiguity       *ambiguity.Result       `json:"ambiguity,omitempty"`
	Objects         []vision.DetectedObject `json:"objects,omitempty"`
	TemporalObjects []temporal.Entity       `json:"temporal_objects,omitempty"`
}

type ClarifyRequest struct {
	SessionID string `json:"session_id" example:"conv_9f6d1c2ab34e478f8c1d2e3f4a5b6c7d"`
	Selection string `json:"selection" example:"cup #2"`
}

type ClarifyResponse struct {
	OK         bool   `json:"ok" example:"true"`
	Answer     string `json:"answer" example:"That cup is blue and sits on the right."`
	Focus      string `json:"focus,omitempty" example:"cup #2"`
	FocusReady bool   `json:"focus_ready" example:"true"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" example:"conv_9f6d1c2ab34e478f8c1d2e3f4a5b6c7d"`
	Text      string `json:"text" example:"What color is it?"`
}

type ChatResponse struct {
	OK     bool   `json:"ok" example:"true"`
	Answer string `json:"answer" example:"It is blue."`
}

type EndSessionRequest struct {
	SessionID string `json:"session_id" example:"conv_9f6d1c2ab34e478f8c1d2e3f4a5b6c7d"`
}

type EndSessionResponse struct {
	OK    bool `json:"ok" example:"true"`
	Ended bool `json:"ended" example:"true"`
}

type RecordsResponse struct {
	Total   int               `json:"total" example:"2"`
	Records []record.Analysis `json:"records"`
}

type ErrorResponse struct {
	Code    string `json:"code" example:"invalid_request"`
	Message string `json:"message" example:"Invalid request body"`
	Details any    `json:"details,omitempty" swaggertype:"object"`
}

// WSChatMessage is one inbound follow-up turn on the chat socket.
type WSChatMessage struct {
	Text string `json:"text" example:"What color is it?"`
}

// WSChatReply is the socket response for one turn.
type WSChatReply struct {
	OK     bool   `json:"ok" example:"true"`
	Answer string `json:"answer,omitempty" example:"It is blue."`
	Error  string `json:"error,omitempty" example:"no_focus_object"`
}
