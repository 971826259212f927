// Package news fetches generated public-health headlines from a
// Gemini-style generateContent endpoint.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
)

var (
	ErrNotConfigured = errors.New("news: api key not configured")
	ErrNoJSON        = errors.New("news: reply contains no json array")
)

// StatusError is a non-200 reply from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("news: unexpected status %d: %s", e.StatusCode, e.Body)
}

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 512
)

// Prompt asks for five items in the exact JSON shape of domain.NewsItem.
const Prompt = `Gere 5 notícias sobre saúde pública no Brasil.

Retorne APENAS um JSON válido, SEM TEXTO EXTRA, no formato exato abaixo:

[
  {
    "title": "Título da notícia",
    "summary": "Resumo curto da notícia",
    "content": "Texto completo da notícia com mais detalhes",
    "date": "2026-01-13",
    "url": "https://exemplo.com/noticia"
  }
]

Regras:
- date no formato YYYY-MM-DD
- url pode ser fictícia, mas válida
- conteúdo em português do Brasil
`

// jsonArray grabs the first "[" through the last "]" of a reply, since
// models like to wrap JSON in prose or code fences.
var jsonArray = regexp.MustCompile(`(?s)\[.*\]`)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

// CacheKey identifies the model and prompt a result came from.
func (c *Client) CacheKey() string {
	return c.cfg.Model + "\x00" + Prompt
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Fetch asks the model for news and decodes the JSON array in its reply.
func (c *Client) Fetch(ctx context.Context) ([]domain.NewsItem, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: Prompt}}}}})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.Model), url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("news: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("news: decode response: %w", err)
	}

	var text string
	for _, cand := range gr.Candidates {
		for _, p := range cand.Content.Parts {
			text += p.Text
		}
		if text != "" {
			break
		}
	}

	return ParseItems(text)
}

// ParseItems extracts and decodes the JSON array embedded in a model reply.
func ParseItems(text string) ([]domain.NewsItem, error) {
	raw := jsonArray.FindString(text)
	if raw == "" {
		return nil, ErrNoJSON
	}

	var items []domain.NewsItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("news: decode items: %w", err)
	}
	return items, nil
}
