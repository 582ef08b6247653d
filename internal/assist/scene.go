package assist

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/eleven-am/sight-backend/internal/ambiguity"
	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/convo"
	"github.com/eleven-am/sight-backend/internal/dto"
	"github.com/eleven-am/sight-backend/internal/record"
	"github.com/eleven-am/sight-backend/internal/shared"
	"github.com/eleven-am/sight-backend/internal/temporal"
	"github.com/labstack/echo/v4"
)

func (h *Handler) analyzeImage(c echo.Context, data []byte, mimeType, question string, mode shared.AnalysisMode) error {
	ctx := c.Request().Context()

	objects, err := h.labeler.AnalyzeImage(ctx, data, mimeType, question)
	if err != nil {
		h.logger.Error("vision labeling failed", "error", err)
		return shared.BadGateway("labeler_failed", "vision labeling failed")
	}

	result := ambiguity.Detect(question, objects)

	resp := dto.AnalyzeResponse{
		OK:        true,
		Mode:      string(mode),
		Kind:      shared.SceneKindImage.String(),
		Ambiguity: &result,
		Objects:   objects,
	}

	if mode == shared.ModeOnePass {
		resp.Answer = answer.OnePass(objects)
		h.logAnalysis(c, shared.SceneKindImage, mode, question, len(objects), result.IsAmbiguous, "")
		return c.JSON(http.StatusOK, resp)
	}

	// clarify mode
	if result.IsAmbiguous {
		sess := &convo.Session{
			Kind:     shared.SceneKindImage,
			Question: question,
			Objects:  objects,
		}
		if err := h.sessions.Create(ctx, sess); err != nil {
			h.logger.Error("session create failed", "error", err)
			return shared.InternalError("session_failed", "could not create session")
		}
		h.sessions.AppendHistory(ctx, sess.ID, convo.RoleUser, question)
		h.sessions.AppendHistory(ctx, sess.ID, convo.RoleAssistant, result.ClarifyingQuestion)

		resp.SessionID = sess.ID
		resp.Clarification = &dto.ClarificationPrompt{
			Question: result.ClarifyingQuestion,
			Options:  result.Options,
		}
		h.logAnalysis(c, shared.SceneKindImage, mode, question, len(objects), true, sess.ID)
		return c.JSON(http.StatusOK, resp)
	}

	if len(objects) == 0 {
		// nothing detected is a valid terminal outcome
		resp.Answer = answer.NoObjectsMessage
		h.logAnalysis(c, shared.SceneKindImage, mode, question, 0, false, "")
		return c.JSON(http.StatusOK, resp)
	}

	text, err := h.generator.Answer(ctx, answer.Request{
		Question: question,
		Object:   &objects[0],
		Objects:  objects,
	})
	if err != nil {
		h.logger.Error("answer generation failed", "error", err)
		return shared.BadGateway("answer_failed", "answer generation failed")
	}

	resp.Answer = text
	h.logAnalysis(c, shared.SceneKindImage, mode, question, len(objects), false, "")
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) analyzeVideo(c echo.Context, data []byte, question string, mode shared.AnalysisMode) error {
	ctx := c.Request().Context()

	sampled, err := h.sampler.Extract(ctx, data, h.maxFrames)
	if err != nil {
		h.logger.Error("frame extraction failed", "error", err)
		return shared.BadGateway("sampler_failed", "frame extraction failed")
	}
	if len(sampled) == 0 {
		return shared.BadGateway("no_frames", "no frames could be extracted")
	}

	frameResults := make([]temporal.FrameObjects, 0, len(sampled))
	for _, frame := range sampled {
		objects, err := h.labeler.AnalyzeImage(ctx, frame.Data, "image/jpeg", question)
		if err != nil {
			h.logger.Error("vision labeling failed", "error", err, "timestamp", frame.Timestamp)
			return shared.BadGateway("labeler_failed", "vision labeling failed")
		}
		frameResults = append(frameResults, temporal.FrameObjects{
			Timestamp: frame.Timestamp,
			Objects:   objects,
		})
	}

	entities := h.aggregator.Aggregate(frameResults)
	result := temporal.Detect(question, entities)

	resp := dto.AnalyzeResponse{
		OK:              true,
		Mode:            string(mode),
		Kind:            shared.SceneKindVideo.String(),
		Ambiguity:       &result,
		TemporalObjects: entities,
	}

	if mode == shared.ModeOnePass {
		resp.Answer = temporalSummary(entities)
		h.logAnalysis(c, shared.SceneKindVideo, mode, question, len(entities), result.IsAmbiguous, "")
		return c.JSON(http.StatusOK, resp)
	}

	// clarify mode
	if result.IsAmbiguous {
		sess := &convo.Session{
			Kind:     shared.SceneKindVideo,
			Question: question,
			Entities: entities,
		}
		if err := h.sessions.Create(ctx, sess); err != nil {
			h.logger.Error("session create failed", "error", err)
			return shared.InternalError("session_failed", "could not create session")
		}
		h.sessions.AppendHistory(ctx, sess.ID, convo.RoleUser, question)
		h.sessions.AppendHistory(ctx, sess.ID, convo.RoleAssistant, result.ClarifyingQuestion)

		resp.SessionID = sess.ID
		resp.Clarification = &dto.ClarificationPrompt{
			Question: result.ClarifyingQuestion,
			Options:  result.Options,
		}
		h.logAnalysis(c, shared.SceneKindVideo, mode, question, len(entities), true, sess.ID)
		return c.JSON(http.StatusOK, resp)
	}

	if len(entities) == 0 {
		resp.Answer = answer.NoObjectsMessage
		h.logAnalysis(c, shared.SceneKindVideo, mode, question, 0, false, "")
		return c.JSON(http.StatusOK, resp)
	}

	text, err := h.generator.Answer(ctx, answer.Request{
		Question: question,
		Temporal: true,
		Entity:   &entities[0],
		Entities: entities,
	})
	if err != nil {
		h.logger.Error("answer generation failed", "error", err)
		return shared.BadGateway("answer_failed", "answer generation failed")
	}

	resp.Answer = text
	h.logAnalysis(c, shared.SceneKindVideo, mode, question, len(entities), false, "")
	return c.JSON(http.StatusOK, resp)
}

// temporalSummary is the one-pass rendering for video: one line per
// entity with its sighting window.
func temporalSummary(entities []temporal.Entity) string {
	if len(entities) == 0 {
		return answer.NoObjectsMessage
	}

	lines := make([]string, len(entities))
	for i, e := range entities {
		lines[i] = fmt.Sprintf("%s appears from %s to %s.", e.Name, e.FirstSeen, e.LastSeen)
	}
	return strings.Join(lines, "\n")
}

// logAnalysis writes the analysis log entry. Best effort: a logging
// failure must not fail the request that produced it.
func (h *Handler) logAnalysis(c echo.Context, kind shared.SceneKind, mode shared.AnalysisMode, question string, objectCount int, ambiguous bool, sessionID string) {
	if h.records == nil {
		return
	}
	entry := &record.Analysis{
		Kind:        kind,
		Mode:        string(mode),
		Question:    question,
		ObjectCount: objectCount,
		Ambiguous:   ambiguous,
		SessionID:   sessionID,
	}
	if err := h.records.Create(c.Request().Context(), entry); err != nil {
		h.logger.Warn("analysis log write failed", "error", err)
	}
}
