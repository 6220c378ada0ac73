package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiService_GenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Mama Put Stores\n"},{"text":"Thank you!"}]}}]}`))
	}))
	defer srv.Close()

	s := NewGeminiService("k123", "gemini-1.5-flash").WithBaseURL(srv.URL)
	text, err := s.GenerateText(context.Background(), "receipt please")
	require.NoError(t, err)
	assert.Equal(t, "Mama Put Stores\nThank you!", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "k123", gotKey)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "receipt please", gotReq.Contents[0].Parts[0].Text)
}

func TestGeminiService_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).GenerateText(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiService_SinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "m").GenerateText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeminiService_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).GenerateText(ctx, "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnthropicService_GenerateText(t *testing.T) {
	var gotReq anthropicRequest
	var gotVersion, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte("{\"content\":[{\"type\":\"text\",\"text\":\"```\\nTotal: ₦2,580.00\\n```\"}]}"))
	}))
	defer srv.Close()

	s := NewAnthropicService("sk", "claude-3-5-haiku-20241022").WithURL(srv.URL)
	text, err := s.GenerateText(context.Background(), "receipt")
	require.NoError(t, err)
	assert.Equal(t, "Total: ₦2,580.00", text)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, "sk", gotKey)
	assert.Equal(t, "claude-3-5-haiku-20241022", gotReq.Model)
	assert.Equal(t, systemPrompt, gotReq.System)
}

func TestAnthropicService_CentinelaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Error: missing line items"}]}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("sk", "m").WithURL(srv.URL).GenerateText(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing line items")
}

func TestToResult(t *testing.T) {
	_, err := toResult("x", "   ")
	assert.Error(t, err)
	text, err := toResult("x", "Receipt\nError: none")
	require.NoError(t, err)
	assert.Equal(t, "Receipt\nError: none", text)
}
