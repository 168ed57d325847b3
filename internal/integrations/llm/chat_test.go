package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/corp-finance-service/internal/config"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newChatClient(url string) *ChatClient {
	return NewChatClient(&config.Config{
		NarratorURL:       url + "/v1/",
		NarratorAPIKey:    "secret",
		NarratorModel:     "test-model",
		NarratorMaxTokens: 512,
		NarratorTimeout:   time.Second,
	}, quietLogger())
}

func TestChatClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 512, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "be brief", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  분석 결과  "}}]}`))
	}))
	defer server.Close()

	text, err := newChatClient(server.URL).Generate(context.Background(), "be brief", "analyze")
	require.NoError(t, err)
	assert.Equal(t, "분석 결과", text)
}

func TestChatClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided: sk-***"}}`))
	}))
	defer server.Close()

	_, err := newChatClient(server.URL).Generate(context.Background(), "", "analyze")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.NotContains(t, err.Error(), "Incorrect API key")
}

func TestChatClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newChatClient(server.URL).Generate(context.Background(), "", "analyze")
	assert.EqualError(t, err, "response contained no choices")
}

func TestNew_DisabledWithoutCredential(t *testing.T) {
	gen, err := New(context.Background(), &config.Config{NarratorProvider: config.ProviderOpenAI}, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, gen)
}
