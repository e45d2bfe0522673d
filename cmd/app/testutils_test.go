package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sushihentaime/newsportal/internal/common"
	"github.com/sushihentaime/newsportal/internal/metrics"
	"github.com/sushihentaime/newsportal/internal/newsservice"
	"github.com/sushihentaime/newsportal/internal/productservice"
	"github.com/sushihentaime/newsportal/internal/userservice"
)

// recordingProducer stands in for RabbitMQ and keeps every published body.
type recordingProducer struct {
	mu   sync.Mutex
	msgs map[common.BindingKey][][]byte
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.msgs == nil {
		p.msgs = make(map[common.BindingKey][][]byte)
	}
	p.msgs[key] = append(p.msgs[key], msg)
	return nil
}

func (p *recordingProducer) last(key common.BindingKey) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.msgs[key]
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatalf("could not decode %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, envelope
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *recordingProducer) {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	mb := &recordingProducer{}
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	cache := common.NewCache(time.Minute, time.Minute)

	app := &application{
		config:         &Config{Environment: "testing", Version: "test"},
		logger:         logger,
		metrics:        collector,
		registry:       registry,
		userService:    userservice.NewUserService(db, mb),
		newsService:    newsservice.NewNewsService(db, mb, cache, cache, logger, collector),
		productService: productservice.NewProductService(db, cache, cache, collector),
		db:             db,
	}

	return app, db, mb
}

// newBareApplication is enough for middleware that never touches storage.
func newBareApplication(cfg *Config) *application {
	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (ts *testServer) do(t *testing.T, method, path string, token *string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, data any, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, data)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) put(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

func strptr(s string) *string {
	return &s
}
