package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"rnm/config"
)

// Extractor produces article metadata from raw article text.
type Extractor interface {
	Extract(ctx context.Context, text string) (Meta, error)
}

const systemPrompt = `你是文章元数据提取助手。阅读用户提供的文章全文，输出一个 JSON 对象，字段如下：
"title"：标题，20字以内；
"subtitle"：副标题，可为空字符串；
"category"：分类，2到6个字；
"tags"：话题标签数组，3到6个，不带#号；
"quote"：最能代表文章核心观点的一句原文金句。
只输出 JSON 对象本身，不要任何解释或代码块标记。`

// maxPromptRunes bounds how much article text goes into the request. The
// opening part of an article carries enough signal for metadata and tokens
// cost money.
const maxPromptRunes = 6000

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	model    string
	apiKey   string
	log      *zap.Logger
}

func NewClient(cfg *config.MetadataConfig, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   string(cfg.APIKey),
		log:      log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *Client) Extract(ctx context.Context, text string) (Meta, error) {
	if len(c.apiKey) == 0 {
		return Meta{}, errors.New("metadata service API key is not configured")
	}

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: clipRunes(text, maxPromptRunes)},
		},
		Temperature: 0,
		MaxTokens:   512,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Meta{}, fmt.Errorf("unable to marshal metadata request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Meta{}, fmt.Errorf("unable to create metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Meta{}, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Meta{}, fmt.Errorf("metadata service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var r chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Meta{}, fmt.Errorf("unable to decode metadata response: %w", err)
	}
	if len(r.Choices) == 0 {
		return Meta{}, errors.New("metadata response has no choices")
	}

	meta, err := ParseModelOutput(r.Choices[0].Message.Content)
	if err != nil {
		return Meta{}, err
	}

	c.log.Debug("Metadata extracted",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("tokens-in", r.Usage.PromptTokens),
		zap.Int("tokens-out", r.Usage.CompletionTokens))

	return meta, nil
}

// ParseModelOutput decodes Meta from raw model output. Models routinely wrap
// JSON in markdown code fences and chatter no matter what the prompt says, so
// everything outside the outermost braces is dropped first.
func ParseModelOutput(out string) (Meta, error) {
	i := strings.IndexByte(out, '{')
	j := strings.LastIndexByte(out, '}')
	if i < 0 || j <= i {
		return Meta{}, fmt.Errorf("no JSON object in model output: %q", clipRunes(strings.TrimSpace(out), 64))
	}

	var m Meta
	if err := json.Unmarshal([]byte(out[i:j+1]), &m); err != nil {
		return Meta{}, fmt.Errorf("unable to parse metadata from model output: %w", err)
	}
	m.Normalize()
	return m, nil
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
