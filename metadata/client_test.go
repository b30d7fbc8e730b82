package metadata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"rnm/config"
)

func TestParseModelOutput(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Meta
		wantErr bool
	}{
		{
			name: "plain object",
			in:   `{"title":"标题","category":"科技","tags":["AI","工具"],"quote":"一句金句"}`,
			want: Meta{Title: "标题", Category: "科技", Tags: []string{"AI", "工具"}, Quote: "一句金句"},
		},
		{
			name: "json fence",
			in:   "```json\n{\"title\":\"标题\"}\n```",
			want: Meta{Title: "标题"},
		},
		{
			name: "bare fence",
			in:   "```\n{\"title\":\"标题\"}\n```",
			want: Meta{Title: "标题"},
		},
		{
			name: "chatter around the object",
			in:   "好的，以下是提取结果：\n{\"title\":\"标题\"}\n希望对你有帮助。",
			want: Meta{Title: "标题"},
		},
		{
			name: "tags normalized",
			in:   `{"tags":["#读书","#读书#","  成长  "]}`,
			want: Meta{Tags: []string{"读书", "成长"}},
		},
		{
			name:    "no object at all",
			in:      "抱歉，我无法处理这篇文章。",
			wantErr: true,
		},
		{
			name:    "broken json",
			in:      `{"title": "标题"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelOutput(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got.Title != tt.want.Title || got.Category != tt.want.Category || got.Quote != tt.want.Quote {
				t.Errorf("ParseModelOutput() = %+v, want %+v", got, tt.want)
			}
			if !slices.Equal(got.Tags, tt.want.Tags) {
				t.Errorf("ParseModelOutput() tags = %v, want %v", got.Tags, tt.want.Tags)
			}
		})
	}
}

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	return NewClient(&config.MetadataConfig{
		Enable:     true,
		Endpoint:   url,
		Model:      "test-model",
		APIKey:     config.SecretString("sk-test"),
		TimeoutSec: 5,
	}, logger)
}

func TestClientExtract(t *testing.T) {
	t.Run("Success with fenced output", func(t *testing.T) {
		var gotAuth, gotModel string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("Unable to decode request: %v", err)
			}
			gotModel = req.Model
			resp := map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "```json\n{\"title\":\"深度工作\",\"tags\":[\"效率\"]}\n```"}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer srv.Close()

		m, err := testClient(t, srv.URL).Extract(context.Background(), "正文内容")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if m.Title != "深度工作" {
			t.Errorf("Expected title from response, got %q", m.Title)
		}
		if gotAuth != "Bearer sk-test" {
			t.Errorf("Expected bearer auth header, got %q", gotAuth)
		}
		if gotModel != "test-model" {
			t.Errorf("Expected configured model in request, got %q", gotModel)
		}
	})

	t.Run("Service error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"over quota"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Extract(context.Background(), "正文内容")
		if err == nil {
			t.Fatal("Expected error for non-2xx status")
		}
		if !strings.Contains(err.Error(), "429") {
			t.Errorf("Expected status in error, got %v", err)
		}
	})

	t.Run("No choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := testClient(t, srv.URL).Extract(context.Background(), "正文内容")
		if err == nil {
			t.Fatal("Expected error for empty choices")
		}
	})

	t.Run("Missing API key", func(t *testing.T) {
		logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
		c := NewClient(&config.MetadataConfig{Enable: true, Endpoint: "http://127.0.0.1:1", Model: "m"}, logger)
		_, err := c.Extract(context.Background(), "正文内容")
		if err == nil {
			t.Fatal("Expected error when API key is not configured")
		}
	})

	t.Run("Long article is clipped", func(t *testing.T) {
		var gotLen int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req chatRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if len(req.Messages) == 2 {
				gotLen = len([]rune(req.Messages[1].Content))
			}
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"title\":\"t\"}"}}]}`))
		}))
		defer srv.Close()

		long := strings.Repeat("长", maxPromptRunes+500)
		if _, err := testClient(t, srv.URL).Extract(context.Background(), long); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if gotLen != maxPromptRunes {
			t.Errorf("Expected prompt clipped to %d runes, got %d", maxPromptRunes, gotLen)
		}
	})
}
