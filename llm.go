package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"
const defaultOpenAIModel = "gpt-4o-mini"

const maxPromptSamples = 5
const maxPromptSampleChars = 80

// labelResponse is the JSON shape the model must answer with.
type labelResponse struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// newDisambiguator builds the external column-labeling capability from
// config, or returns nil when no API key is configured. A nil disambiguator
// is the deterministic offline mode.
func newDisambiguator(cfg Config) Disambiguator {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		model := cfg.LLMModel
		if model == "" {
			model = defaultOpenAIModel
		}
		return func(ctx context.Context, header string, samples []string) (string, string, error) {
			systemPrompt, userPrompt := buildLabelPrompts(header, samples)
			log.Printf("llm column-label provider=openai model=%s column=%q", model, header)
			text, err := callOpenAI(ctx, cfg.OpenAIAPIKey, model, systemPrompt, userPrompt)
			if err != nil {
				return "", "", err
			}
			return parseLabelResponse(text)
		}
	default:
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		model := cfg.LLMModel
		if model == "" {
			model = defaultAnthropicModel
		}
		return func(ctx context.Context, header string, samples []string) (string, string, error) {
			systemPrompt, userPrompt := buildLabelPrompts(header, samples)
			log.Printf("llm column-label provider=anthropic model=%s column=%q", model, header)
			text, err := callAnthropic(ctx, cfg.AnthropicAPIKey, model, systemPrompt, userPrompt)
			if err != nil {
				return "", "", err
			}
			return parseLabelResponse(text)
		}
	}
}

func buildLabelPrompts(header string, samples []string) (string, string) {
	var fieldLines strings.Builder
	for _, f := range CanonicalOrder {
		fieldLines.WriteString(fmt.Sprintf("- %s\n", f))
	}
	fieldLines.WriteString(fmt.Sprintf("- %s\n", FieldOther))

	systemPrompt := fmt.Sprintf(`You map a messy CSV column onto one canonical customer field.
Choose exactly one label from:
%s
If none fit, use "other".

Respond with JSON only (no markdown):
{"label": "...", "reason": "..."}`, fieldLines.String())

	var sampleLines strings.Builder
	for i, s := range samples {
		if i >= maxPromptSamples {
			break
		}
		s = strings.TrimSpace(s)
		if len(s) > maxPromptSampleChars {
			s = s[:maxPromptSampleChars] + "..."
		}
		sampleLines.WriteString(fmt.Sprintf("- %s\n", s))
	}
	sampleBlock := "none"
	if sampleLines.Len() > 0 {
		sampleBlock = sampleLines.String()
	}

	userPrompt := fmt.Sprintf("Column header: %q\nExample values:\n%s", header, sampleBlock)
	return systemPrompt, userPrompt
}

func parseLabelResponse(responseText string) (string, string, error) {
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var parsed labelResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		return "", "", fmt.Errorf("parsing LLM label response: %w (response: %s)", err, responseText)
	}
	return strings.TrimSpace(parsed.Label), strings.TrimSpace(parsed.Reason), nil
}

// --- Anthropic ---

func callAnthropic(ctx context.Context, apiKey, model, systemPrompt, userPrompt string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		log.Printf("llm anthropic error: %v", err)
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm anthropic response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}

// --- OpenAI ---

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const openAIHTTPTimeout = 30 * time.Second

// openAIHTTPClient bounds the raw OpenAI calls; the Anthropic SDK manages
// its own transport.
var openAIHTTPClient = &http.Client{
	Timeout: openAIHTTPTimeout,
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func callOpenAI(ctx context.Context, apiKey, model, systemPrompt, userPrompt string) (string, error) {
	reqBody := openAIRequest{
		Model: model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := openAIHTTPClient.Do(req)
	if err != nil {
		log.Printf("llm openai error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(respBody, &openAIResp); err != nil {
		return "", fmt.Errorf("parsing OpenAI response: %w", err)
	}

	if openAIResp.Error != nil {
		log.Printf("llm openai api error: %s", openAIResp.Error.Message)
		return "", fmt.Errorf("OpenAI API error: %s", openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}
	log.Printf("llm openai response size=%d", len(openAIResp.Choices[0].Message.Content))
	return openAIResp.Choices[0].Message.Content, nil
}
