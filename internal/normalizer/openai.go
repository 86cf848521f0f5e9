// Package normalizer resolves free-text patient replies against a question's
// fixed option set using a chat-completion model. The engine never sees free
// text: the classifier always returns a member of the allowed options, with
// a confidence the caller can use to re-prompt.
package normalizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You classify a patient's reply to a triage question.
You are given the question and a fixed list of allowed options.
Respond with EXACTLY ONE option from the list, copied verbatim.
If the reply does not clearly match any option, respond with the single word UNCLEAR.
Do not add any other text.`

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs an OpenAI-backed classifier. An empty model
// falls back to a modern small model; it can be overridden via config.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Normalize maps freeText to one of options. The returned option is always a
// member of options; a reply the model flags as unclear is returned as the
// first option with zero confidence so the caller re-prompts.
func (c *OpenAIClient) Normalize(ctx context.Context, freeText, question string, options []string) (string, float64, error) {
	if c.client == nil {
		return "", 0, errors.New("openai client not initialized")
	}
	if len(options) == 0 {
		return "", 0, errors.New("no options to classify against")
	}

	user := fmt.Sprintf("Question: %s\nAllowed options:\n- %s\nPatient reply: %s",
		question, strings.Join(options, "\n- "), freeText)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", 0, err
	}
	if len(resp.Choices) == 0 {
		return "", 0, errors.New("empty completion")
	}

	option, confidence := matchReply(resp.Choices[0].Message.Content, options)
	return option, confidence, nil
}

// matchReply maps the raw model reply onto the option set. Exact matches are
// fully trusted, containment matches less so, and anything else degrades to
// the first option with zero confidence.
func matchReply(reply string, options []string) (string, float64) {
	cleaned := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), `"'`))
	if strings.EqualFold(cleaned, "UNCLEAR") {
		return options[0], 0
	}
	for _, opt := range options {
		if strings.EqualFold(cleaned, opt) {
			return opt, 1
		}
	}
	lower := strings.ToLower(cleaned)
	for _, opt := range options {
		if strings.Contains(lower, strings.ToLower(opt)) {
			return opt, 0.8
		}
	}
	return options[0], 0
}
