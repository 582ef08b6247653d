package frames

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("max_frames") != "3" {
			t.Errorf("expected max_frames 3, got %s", r.FormValue("max_frames"))
		}
		file, _, err := r.FormFile("video")
		if err != nil {
			t.Fatalf("missing video part: %v", err)
		}
		file.Close()

		resp := map[string]any{
			"frames": []map[string]string{
				{"timestamp": "0.00s", "image_b64": base64.StdEncoding.EncodeToString([]byte("frame-0"))},
				{"timestamp": "1.17s", "image_b64": base64.StdEncoding.EncodeToString([]byte("frame-1"))},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	result, err := c.Extract(context.Background(), []byte("fake-mp4"), 3)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(result))
	}
	if result[0].Timestamp != "0.00s" || string(result[0].Data) != "frame-0" {
		t.Errorf("unexpected first frame: %+v", result[0])
	}
	if result[1].Timestamp != "1.17s" {
		t.Errorf("unexpected second frame timestamp: %s", result[1].Timestamp)
	}
}

func TestClient_Extract_EmptyVideo(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost"})
	if _, err := c.Extract(context.Background(), nil, 5); err == nil {
		t.Fatal("expected error for empty video data")
	}
}

func TestClient_Extract_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.Extract(context.Background(), []byte("x"), 5); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestClient_Extract_EmptyResultIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"frames": []any{}})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	result, err := c.Extract(context.Background(), []byte("x"), 5)
	if err != nil {
		t.Fatalf("a well-formed empty result is valid: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected no frames, got %d", len(result))
	}
}

func TestClient_IsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	if !c.IsAvailable(context.Background()) {
		t.Error("expected sampler to be available")
	}
}
