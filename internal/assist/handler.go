package assist

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/convo"
	"github.com/eleven-am/sight-backend/internal/dto"
	"github.com/eleven-am/sight-backend/internal/frames"
	"github.com/eleven-am/sight-backend/internal/record"
	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/labstack/echo/v4"
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
	".mp4": true, ".mov": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true,
}

var extToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

type Handler struct {
	labeler    vision.Labeler
	sampler    frames.Sampler
	generator  answer.Generator
	sessions   convo.Store
	records    *record.Store
	aggregator *temporal.Aggregator
	maxFrames  int
	logger     *slog.Logger
}

func NewHandler(
	labeler vision.Labeler,
	sampler frames.Sampler,
	generator answer.Generator,
	sessions convo.Store,
	records *record.Store,
	aggregator *temporal.Aggregator,
	maxFrames int,
	logger *slog.Logger,
) *Handler {
	if maxFrames <= 0 {
		maxFrames = frames.DefaultMaxFrames
	}
	return &Handler{
		labeler:    labeler,
		sampler:    sampler,
		generator:  generator,
		sessions:   sessions,
		records:    records,
		aggregator: aggregator,
		maxFrames:  maxFrames,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
	g.POST("/clarify", h.Clarify)
	g.POST("/chat", h.Chat)
	g.GET("/chat/ws", h.ChatWS)
	g.POST("/session/end", h.EndSession)
	g.GET("/records", h.Records)
}

// Analyze runs the first round: upload plus question in, either a
// direct answer or a clarification prompt out.
//
// @Summary      Analyze an image or short video
// @Tags         assist
// @Accept       multipart/form-data
// @Produce      json
// @Param        image     formData  file    true   "image or video file"
// @Param        question  formData  string  true   "user question"
// @Param        mode      formData  string  false  "onepass (default) or clarify"
// @Success      200  {object}  dto.AnalyzeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /analyze [post]
func (h *Handler) Analyze(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return shared.BadRequest("missing_image", "missing image upload")
	}

	question := strings.TrimSpace(c.FormValue("question"))
	if question == "" {
		return shared.BadRequest("missing_question", "missing question")
	}

	mode := shared.AnalysisMode(strings.TrimSpace(c.FormValue("mode")))
	if mode == "" {
		mode = shared.ModeOnePass
	}
	if !mode.Valid() {
		return shared.BadRequest("invalid_mode", "mode must be onepass or clarify")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return shared.BadRequest("unsupported_file_type", "unsupported file type "+ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.BadRequest("unreadable_upload", "could not read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return shared.BadRequest("unreadable_upload", "could not read upload")
	}

	if videoExtensions[ext] {
		return h.analyzeVideo(c, data, question, mode)
	}

	mimeType := extToMIME[ext]
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return h.analyzeImage(c, data, mimeType, question, mode)
}

// Clarify consumes the user's reply to a clarification prompt,
// commits the session to one referent and answers the original
// question about it.
//
// @Summary      Resolve a clarification selection
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        request  body  dto.ClarifyRequest  true  "selection"
// @Success      200  {object}  dto.ClarifyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /clarify [post]
func (h *Handler) Clarify(c echo.Context) error {
	var req dto.ClarifyRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.SessionID == "" {
		return shared.BadRequest("missing_session_id", "missing session_id")
	}

	ctx := c.Request().Context()
	sess, err := h.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return shared.BadRequest("session_invalid", "session expired or invalid")
	}

	sel, ok := convo.Resolve(sess, req.Selection)
	if !ok {
		return shared.BadRequest("selection_unmatched", "could not match selection")
	}

	if sel.Object != nil {
		err = h.sessions.SetFocusObject(ctx, sess.ID, *sel.Object)
	} else {
		err = h.sessions.SetFocusEntity(ctx, sess.ID, *sel.Entity)
	}
	if err != nil {
		return shared.BadRequest("session_invalid", "session expired or invalid")
	}

	text, err := h.generator.Answer(ctx, answer.Request{
		Question: sess.Question,
		Temporal: sess.Kind == shared.SceneKindVideo,
		Object:   sel.Object,
		Objects:  sess.Objects,
		Entity:   sel.Entity,
		Entities: sess.Entities,
	})
	if err != nil {
		h.logger.Error("answer generation failed", "error", err, "session_id", sess.ID)
		return shared.BadGateway("answer_failed", "answer generation failed")
	}

	h.sessions.AppendHistory(ctx, sess.ID, convo.RoleAssistant, text)

	return c.JSON(http.StatusOK, dto.ClarifyResponse{
		OK:         true,
		Answer:     text,
		Focus:      sel.Label(),
		FocusReady: true,
	})
}

// Chat handles follow-up turns once a focus object is committed.
//
// @Summary      Follow-up question about the focused object
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        request  body  dto.ChatRequest  true  "follow-up text"
// @Success      200  {object}  dto.ChatResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /chat [post]
func (h *Handler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return shared.BadRequest("missing_text", "missing text")
	}

	ctx := c.Request().Context()
	sess, err := h.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return shared.BadRequest("session_invalid", "session expired or invalid")
	}
	if !sess.HasFocus() {
		return shared.BadRequest("no_focus_object", "no focus object selected")
	}

	h.sessions.AppendHistory(ctx, sess.ID, convo.RoleUser, req.Text)

	text, err := h.generator.Answer(ctx, answer.Request{
		Question: req.Text,
		Temporal: sess.Kind == shared.SceneKindVideo,
		Object:   sess.FocusObject,
		Objects:  sess.Objects,
		Entity:   sess.FocusEntity,
		Entities: sess.Entities,
	})
	if err != nil {
		h.logger.Error("answer generation failed", "error", err, "session_id", sess.ID)
		return shared.BadGateway("answer_failed", "answer generation failed")
	}

	h.sessions.AppendHistory(ctx, sess.ID, convo.RoleAssistant, text)

	return c.JSON(http.StatusOK, dto.ChatResponse{OK: true, Answer: text})
}

// EndSession closes a session. Safe to call twice or with an id that
// never existed.
//
// @Summary      End a conversation session
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        request  body  dto.EndSessionRequest  true  "session id"
// @Success      200  {object}  dto.EndSessionResponse
// @Router       /session/end [post]
func (h *Handler) EndSession(c echo.Context) error {
	var req dto.EndSessionRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	err := h.sessions.End(c.Request().Context(), req.SessionID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("end session failed", "error", err, "session_id", req.SessionID)
		return shared.InternalError("end_failed", "could not end session")
	}

	return c.JSON(http.StatusOK, dto.EndSessionResponse{OK: true, Ended: err == nil})
}

// Records lists recent analyses, newest first.
//
// @Summary      List recent analyses
// @Tags         assist
// @Produce      json
// @Param        limit  query  int  false  "max records, default 50"
// @Success      200  {object}  dto.RecordsResponse
// @Router       /records [get]
func (h *Handler) Records(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	records, err := h.records.Recent(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("list records failed", "error", err)
		return shared.InternalError("records_failed", "could not list records")
	}

	return c.JSON(http.StatusOK, dto.RecordsResponse{
		Total:   len(records),
		Records: records,
	})
}
