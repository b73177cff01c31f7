package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2riing/vibe-promptgen/pkg/draft"
	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/project"
	"github.com/2riing/vibe-promptgen/pkg/validator"
)

type fakeRecommender struct {
	techs    []string
	err      error
	progress []float64
	calls    atomic.Int32
	loaded   bool
}

func (f *fakeRecommender) Recommend(ctx context.Context, idea string, onProgress func(float64)) ([]string, error) {
	f.calls.Add(1)
	if onProgress != nil {
		for _, p := range f.progress {
			onProgress(p)
		}
	}
	return f.techs, f.err
}

func (f *fakeRecommender) Loaded() bool { return f.loaded }

type fakeDrafter struct {
	got draft.Request
}

func (f *fakeDrafter) Draft(ctx context.Context, req draft.Request) draft.Response {
	f.got = req
	if req.APIKey == "" {
		return draft.Response{Error: "API key가 필요합니다.", Status: http.StatusBadRequest}
	}
	return draft.Response{Content: "# draft", Model: req.Model, Status: http.StatusOK}
}

func newTestServer(t *testing.T, rec *fakeRecommender) (*httptest.Server, *fakeDrafter) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	d := &fakeDrafter{}
	s := New(":0", project.NewImporter(logger), rec, d, logger)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv, d
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGenerate(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{})

	resp := post(t, srv.URL+"/api/generate", model.Sample())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[model.GenerateResult](t, resp)
	assert.Empty(t, result.Errors)
	assert.Contains(t, result.PromptText, "| 환경 구성 | dev, staging, prod |")
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGenerate_ScalarListAndBadBody(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{})

	resp := post(t, srv.URL+"/api/generate", `{"tech":{"envs":"dev"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[model.GenerateResult](t, resp)
	for _, e := range result.Errors {
		assert.NotEqual(t, "tech.envs", e.Field)
	}

	resp = post(t, srv.URL+"/api/validate", `{"tech":{"tech_stack":["Go","Redis"]}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, e := range decode[validator.Report](t, resp).Errors {
		assert.NotEqual(t, "tech.tech_stack", e.Field)
	}

	resp = post(t, srv.URL+"/api/generate", `{"tech":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidate(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{})

	resp := post(t, srv.URL+"/api/validate", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decode[validator.Report](t, resp)
	assert.Len(t, report.Errors, 6)
}

func TestImport(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{})

	resp := post(t, srv.URL+"/api/import", map[string]any{
		"document": `{"tech":{"tech_stack":"Go, PostgreSQL"}}`,
		"format":   "json",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[model.ProjectInput](t, resp)
	assert.Equal(t, model.StackText("Go, PostgreSQL"), got.Tech.TechStack)
	assert.Equal(t, model.Defaults().Tech.GitStrategy, got.Tech.GitStrategy)

	resp = post(t, srv.URL+"/api/import", map[string]any{
		"base":     model.Sample(),
		"document": "tech:\n  envs: [dev]\n",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[model.ProjectInput](t, resp)
	assert.Equal(t, model.TextList{"dev"}, got.Tech.Envs)
	assert.Equal(t, model.Sample().Context, got.Context)

	resp = post(t, srv.URL+"/api/import", map[string]any{"document": "tech: [unclosed", "format": "yaml"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "failed to parse yaml document")
}

func TestDraft(t *testing.T) {
	srv, d := newTestServer(t, &fakeRecommender{})

	resp := post(t, srv.URL+"/api/draft", `{"prompt_text":"p","provider":"openai","model":"gpt-4o","api_key":"k","temperature":0.5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"content": "# draft", "model": "gpt-4o"}, decode[map[string]any](t, resp))
	require.NotNil(t, d.got.Temperature)
	assert.Equal(t, 0.5, *d.got.Temperature)
	assert.Nil(t, d.got.MaxTokens)

	resp = post(t, srv.URL+"/api/draft", `{"prompt_text":"p"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecommend(t *testing.T) {
	rec := &fakeRecommender{techs: []string{"React", "TypeScript"}}
	srv, _ := newTestServer(t, rec)

	resp := post(t, srv.URL+"/api/recommend", map[string]string{"idea": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, MsgIdeaRequired, decode[map[string]string](t, resp)["error"])
	assert.Zero(t, rec.calls.Load())

	resp = post(t, srv.URL+"/api/recommend", map[string]string{"idea": "웹 앱"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"React", "TypeScript"}, decode[recommendResponse](t, resp).Techs)
}

func TestRecommend_ModelFailure(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{err: errors.New("loading embedding model hash: offline")})

	resp := post(t, srv.URL+"/api/recommend", map[string]string{"idea": "웹 앱"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, decode[map[string]string](t, resp)["error"], "offline")
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{loaded: true})
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, map[string]any{"status": "ok", "model_loaded": true}, decode[map[string]any](t, resp))
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{})
	resp, err := http.Get(srv.URL + "/api/generate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/recommend/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRecommendWS(t *testing.T) {
	rec := &fakeRecommender{techs: []string{"Go", "Redis"}, progress: []float64{10, 100}}
	srv, _ := newTestServer(t, rec)
	conn := dialWS(t, srv)

	require.NoError(t, conn.WriteJSON(recommendRequest{Idea: "백엔드 서버"}))

	var frames []recommendWSOutbound
	for {
		var out recommendWSOutbound
		require.NoError(t, conn.ReadJSON(&out))
		frames = append(frames, out)
		if out.Type != "progress" {
			break
		}
	}
	assert.Equal(t, []recommendWSOutbound{
		{Type: "progress", Percent: 10},
		{Type: "progress", Percent: 100},
		{Type: "result", Techs: []string{"Go", "Redis"}},
	}, frames)

	require.NoError(t, conn.WriteJSON(recommendRequest{Idea: ""}))
	var out recommendWSOutbound
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, recommendWSOutbound{Type: "error", Message: MsgIdeaRequired}, out)
}

func TestRecommendWS_Error(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRecommender{err: errors.New("offline")})
	conn := dialWS(t, srv)

	require.NoError(t, conn.WriteJSON(recommendRequest{Idea: "게임"}))
	var out recommendWSOutbound
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, "offline", out.Message)
}
