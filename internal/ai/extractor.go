package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"rachunki/internal/config"
	"rachunki/internal/domain"
)

const extractionPrompt = `Przeanalizuj poniższy tekst faktury za media (prąd, gaz lub woda) i wyodrębnij następujące pola.
Zwróć WYŁĄCZNIE obiekt JSON, bez żadnego innego tekstu:
{
  "amount_to_pay": <kwota do zapłaty w zł jako liczba, lub null>,
  "cost_gross_total": <łączny koszt brutto w zł jako liczba, lub null>,
  "consumption_kwh": <zużycie energii w kWh jako liczba, lub null>,
  "consumption_m3": <zużycie w m3 jako liczba, lub null>
}
Jeśli pole nie występuje w tekście, ustaw null. Używaj kropki jako separatora dziesiętnego.

Tekst faktury:
`

// Extractor performs independent field extraction through an
// OpenAI-compatible chat completions endpoint.
type Extractor struct {
	apiKey    string
	model     string
	endpoint  string
	maxChars  int
	maxTokens int
	client    *http.Client
}

// NewExtractor creates an extractor from configuration. A missing API key is
// reported so callers can fail before any document is touched.
func NewExtractor(cfg *config.AIConfig) (*Extractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai extractor: %w", domain.ErrMissingAICredential)
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxChars := cfg.TruncateChars
	if maxChars <= 0 {
		maxChars = 8000
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	endpoint := cfg.BaseURL
	if endpoint == "" {
		endpoint = "https://openrouter.ai/api/v1/chat/completions"
	}
	return &Extractor{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		endpoint:  endpoint,
		maxChars:  maxChars,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// NewExtractorWithEndpoint overrides the endpoint, used in tests against a
// local HTTP server.
func NewExtractorWithEndpoint(cfg *config.AIConfig, endpoint string) (*Extractor, error) {
	e, err := NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	e.endpoint = endpoint
	return e, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the document text to the model and parses its JSON answer.
func (e *Extractor) Extract(ctx context.Context, text string) (*domain.CrossExtraction, error) {
	if len(text) > e.maxChars {
		// Cut on a rune boundary; Polish text is full of multi-byte letters.
		n := e.maxChars
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		text = text[:n]
	}

	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "user", Content: extractionPrompt + text},
		},
		Temperature: 0,
		MaxTokens:   e.maxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))),
		}
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, &MalformedResponseError{Raw: string(body), Err: err}
	}
	if len(cr.Choices) == 0 {
		return nil, &MalformedResponseError{Raw: string(body), Err: fmt.Errorf("no choices in response")}
	}

	content := stripFences(cr.Choices[0].Message.Content)
	var out domain.CrossExtraction
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, &MalformedResponseError{Raw: content, Err: err}
	}
	return &out, nil
}

// stripFences removes a surrounding markdown code fence from model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
