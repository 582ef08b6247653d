package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eleven-am/sight-backend/internal/answer"
	"github.com/eleven-am/sight-backend/internal/frames"
	"github.com/eleven-am/sight-backend/internal/vision"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeCollaborator struct {
	available bool
}

func (f *fakeCollaborator) AnalyzeImage(_ context.Context, _ []byte, _ string, _ string) ([]vision.DetectedObject, error) {
	return nil, nil
}

func (f *fakeCollaborator) Extract(_ context.Context, _ []byte, _ int) ([]frames.Frame, error) {
	return nil, nil
}

func (f *fakeCollaborator) Answer(_ context.Context, _ answer.Request) (string, error) {
	return "", nil
}

func (f *fakeCollaborator) IsAvailable(_ context.Context) bool { return f.available }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestLiveness(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Liveness(c); err != nil {
		t.Fatalf("liveness failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	up := &fakeCollaborator{available: true}
	h := NewHandler(testDB(t), nil, up, up, up, "test")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy, got %q", resp.Status)
	}
	if _, ok := resp.Components["redis"]; ok {
		t.Error("redis check should be skipped when no client is wired")
	}
	for _, name := range []string{"database", "labeler", "sampler", "answerer"} {
		if _, ok := resp.Components[name]; !ok {
			t.Errorf("missing component %q", name)
		}
	}
}

func TestReadiness_CollaboratorDownDegrades(t *testing.T) {
	up := &fakeCollaborator{available: true}
	down := &fakeCollaborator{available: false}
	h := NewHandler(testDB(t), nil, down, up, up, "test")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("degraded service should still report 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %q", resp.Status)
	}
	if resp.Components["labeler"].Status != StatusDegraded {
		t.Errorf("expected degraded labeler, got %q", resp.Components["labeler"].Status)
	}
}

func TestReadiness_DatabaseDownIsUnhealthy(t *testing.T) {
	up := &fakeCollaborator{available: true}
	h := NewHandler(nil, nil, up, up, up, "test")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness failed: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
