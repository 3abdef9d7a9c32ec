package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
)

func TestToContentsMapsRoles(t *testing.T) {
	contents := toContents([]advice.Turn{
		{Role: advice.RoleModel, Text: "Namaste!"},
		{Role: advice.RoleUser, Text: "Help me"},
	})

	require.Len(t, contents, 2)
	assert.Equal(t, string(genai.RoleModel), contents[0].Role)
	assert.Equal(t, "Namaste!", contents[0].Parts[0].Text)
	assert.Equal(t, string(genai.RoleUser), contents[1].Role)
	assert.Equal(t, "Help me", contents[1].Parts[0].Text)
}

func TestToConfigAdvice(t *testing.T) {
	temperature := float32(0.7)
	cfg := toConfig(advice.Request{SystemInstruction: "You are Setu", Temperature: &temperature})

	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "You are Setu", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 0.0001)
	assert.Empty(t, cfg.ResponseMIMEType)
}

func TestToConfigStructured(t *testing.T) {
	cfg := toConfig(advice.Request{ResponseMIMEType: "application/json"})

	assert.Nil(t, cfg.SystemInstruction)
	assert.Nil(t, cfg.Temperature)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), "", "")
	require.Error(t, err)
}

// fakeGemini serves generateContent and keeps the last request body.
type fakeGemini struct {
	status int
	body   string

	mu       sync.Mutex
	path     string
	received map[string]any
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	_ = json.NewDecoder(r.Body).Decode(&payload)

	f.mu.Lock()
	f.path = r.URL.Path
	f.received = payload
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
}

func (f *fakeGemini) lastRequest() (string, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path, f.received
}

func newTestGenerator(t *testing.T, fake *fakeGemini) *Generator {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	gen, err := New(context.Background(), "test-key", "gemini-test", WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return gen
}

func TestGenerateSendsTurnsAndReturnsText(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"role":"model","parts":[{"text":"Great choice! Start with SQL."}]},"finishReason":"STOP"}]}`,
	}
	gen := newTestGenerator(t, fake)

	temperature := float32(0.7)
	text, err := gen.Generate(context.Background(), advice.Request{
		SystemInstruction: "You are Setu",
		Turns: []advice.Turn{
			{Role: advice.RoleModel, Text: "Namaste!"},
			{Role: advice.RoleUser, Text: "What should I learn?"},
		},
		Temperature: &temperature,
	})
	require.NoError(t, err)
	assert.Equal(t, "Great choice! Start with SQL.", text)

	path, body := fake.lastRequest()
	assert.True(t, strings.HasSuffix(path, "models/gemini-test:generateContent"), path)

	contents, ok := body["contents"].([]any)
	require.True(t, ok, "contents missing: %v", body)
	require.Len(t, contents, 2)
	assert.Equal(t, "model", contents[0].(map[string]any)["role"])
	assert.Equal(t, "user", contents[1].(map[string]any)["role"])

	generation, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", body)
	assert.InDelta(t, 0.7, generation["temperature"], 0.0001)
	assert.NotNil(t, body["systemInstruction"])
}

func TestGenerateRequestsJSON(t *testing.T) {
	fake := &fakeGemini{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"role":"model","parts":[{"text":"[]"}]}}]}`,
	}
	gen := newTestGenerator(t, fake)

	_, err := gen.Generate(context.Background(), advice.Request{
		Turns:            []advice.Turn{{Role: advice.RoleUser, Text: "Generate a path"}},
		ResponseMIMEType: "application/json",
	})
	require.NoError(t, err)

	_, body := fake.lastRequest()
	generation, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", generation["responseMimeType"])
	assert.Nil(t, generation["temperature"])
}

func TestGenerateEmptyCandidates(t *testing.T) {
	gen := newTestGenerator(t, &fakeGemini{status: http.StatusOK, body: `{"candidates":[]}`})

	text, err := gen.Generate(context.Background(), advice.Request{
		Turns: []advice.Turn{{Role: advice.RoleUser, Text: "hi"}},
	})
	require.NoError(t, err)
	assert.Empty(t, text)

	reply := advice.NewClient(gen, advice.WithLogger(quietLogger())).
		RequestAdvice(context.Background(), nil, "Skills: .", "hi")
	assert.Equal(t, advice.TroubleText, reply.Text)
	assert.ErrorIs(t, reply.Err, advice.ErrMalformedResponse)
}

func TestGenerateWrapsAPIError(t *testing.T) {
	gen := newTestGenerator(t, &fakeGemini{
		status: http.StatusBadRequest,
		body:   `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`,
	})

	_, err := gen.Generate(context.Background(), advice.Request{
		Turns: []advice.Turn{{Role: advice.RoleUser, Text: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini generate content")

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)

	reply := advice.NewClient(gen, advice.WithLogger(quietLogger())).
		RequestAdvice(context.Background(), nil, "", "hi")
	assert.Equal(t, advice.TroubleText, reply.Text)
	assert.ErrorIs(t, reply.Err, advice.ErrTransport)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
