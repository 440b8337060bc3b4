package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/gogpu/brig/builder"
	"github.com/gogpu/brig/config"
	"github.com/gogpu/brig/container"
	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/store"
)

type verifyResponse struct {
	RunID       string `json:"run_id"`
	Digest      string `json:"digest"`
	Valid       bool   `json:"valid"`
	Cached      bool   `json:"cached"`
	Diagnostics []struct {
		Kind      string `json:"kind"`
		Section   string `json:"section"`
		Offset    uint32 `json:"offset"`
		Message   string `json:"message"`
		Condition string `json:"condition"`
	} `json:"diagnostics"`
}

func newTestRouter(t *testing.T, cache *store.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return newRouter(newService(config.Default(), zaptest.NewLogger(t), cache))
}

func post(t *testing.T, r http.Handler, m *format.Module) (*httptest.ResponseRecorder, verifyResponse) {
	t.Helper()
	body, err := container.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(body)))

	var resp verifyResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, resp
}

func invalidModule() *format.Module {
	b := builder.NewModuleBuilder()
	b.Version(format.Large, format.Full, format.Nosftz)
	b.AddRawString("twice")
	b.AddRawString("twice")
	return b.Build()
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestVerify(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name   string
		module *format.Module
		valid  bool
	}{
		{"valid", builder.Example(), true},
		{"invalid", invalidModule(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := post(t, r, tt.module)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}
			if resp.Valid != tt.valid {
				t.Errorf("valid = %v, want %v: %s", resp.Valid, tt.valid, w.Body.String())
			}
			if resp.RunID == "" || resp.Digest != store.Digest(tt.module) {
				t.Errorf("run_id %q digest %q", resp.RunID, resp.Digest)
			}
			if !tt.valid {
				if len(resp.Diagnostics) == 0 || resp.Diagnostics[0].Section != "strings" {
					t.Errorf("diagnostics = %+v", resp.Diagnostics)
				}
			}
		})
	}
}

func TestVerify_BadBody(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader([]byte("not a container"))))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVerify_Cache(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "verdicts.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	r := newTestRouter(t, cache)

	m := invalidModule()
	_, first := post(t, r, m)
	_, second := post(t, r, m)
	if first.Cached || !second.Cached {
		t.Errorf("cached = %v then %v, want false then true", first.Cached, second.Cached)
	}
	if first.RunID == second.RunID {
		t.Error("cached response reused the run id")
	}
	if len(second.Diagnostics) != len(first.Diagnostics) {
		t.Errorf("cached diagnostics = %d, want %d", len(second.Diagnostics), len(first.Diagnostics))
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestLogger(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d", w.Code)
	}
}
