package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// geminiPrimer is the model turn that acknowledges the system prompt. The
// system prompt is sent as the first user turn, followed by this reply.
const geminiPrimer = "Okay, I am ready to generate a travel itinerary. Please provide the user's preferences."

var geminiSafetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

type geminiProvider struct {
	cfg  LLMConfig
	http *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	ModelVersion string `json:"modelVersion"`
}

func (p *geminiProvider) name() Provider { return ProviderGemini }

func (p *geminiProvider) modelURL(suffix string) string {
	return strings.TrimRight(p.cfg.Endpoint, "/") + "/v1beta/models/" + url.PathEscape(p.cfg.Model) + suffix
}

func (p *geminiProvider) do(ctx context.Context, call resolvedCall) (*GenerateResponse, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	var contents []geminiContent
	if call.system != "" {
		contents = append(contents,
			geminiContent{Role: "user", Parts: []geminiPart{{Text: call.system}}},
			geminiContent{Role: "model", Parts: []geminiPart{{Text: geminiPrimer}}},
		)
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: call.prompt}}})

	body := geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     call.temperature,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: call.maxTokens,
		},
	}
	for _, c := range geminiSafetyCategories {
		body.SafetySettings = append(body.SafetySettings, geminiSafetySetting{Category: c, Threshold: "BLOCK_MEDIUM_AND_ABOVE"})
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.modelURL(":generateContent"), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.cfg.APIKey)

	httpResp, err := p.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == "SAFETY" {
		return nil, fmt.Errorf("%w: candidate blocked", ErrBlocked)
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		text.WriteString(part.Text)
	}
	return &GenerateResponse{Text: text.String(), Model: resp.ModelVersion}, nil
}

func (p *geminiProvider) available(ctx context.Context) bool {
	if p.cfg.APIKey == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.modelURL(""), nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", p.cfg.APIKey)
	resp, err := p.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
