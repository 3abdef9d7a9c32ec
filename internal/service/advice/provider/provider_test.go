package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/skillsetter/backend/internal/config"
	"github.com/zhouzirui/skillsetter/backend/internal/service/advice"
)

func TestNewGeneratorWithoutCredential(t *testing.T) {
	gen, err := NewGenerator(context.Background(), config.AIConfig{Provider: config.ProviderGemini})
	require.NoError(t, err)
	assert.Nil(t, gen)

	gen, err = NewGenerator(context.Background(), config.AIConfig{Provider: config.ProviderArk, ArkAPIKey: "k"})
	require.NoError(t, err)
	assert.Nil(t, gen)
}

func TestNewClientWithoutCredentialIsUnavailable(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client := NewClient(context.Background(), config.AIConfig{Provider: config.ProviderGemini, Temperature: 0.7}, logger)

	assert.False(t, client.Available())
	reply := client.RequestAdvice(context.Background(), nil, "", "hello")
	assert.Equal(t, advice.UnavailableText, reply.Text)
}

func TestNewClientGeminiRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Start with the NSQF level 4 course."}]}}]}`))
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client := NewClient(context.Background(), config.AIConfig{
		Provider:      config.ProviderGemini,
		Temperature:   0.7,
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-test",
		GeminiBaseURL: server.URL + "/",
	}, logger)
	require.True(t, client.Available())

	reply := client.RequestAdvice(context.Background(), nil, "Skills: Python.", "What next?")
	require.NoError(t, reply.Err)
	assert.Equal(t, "Start with the NSQF level 4 course.", reply.Text)
}
