package scorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/motivation-cli/internal/resilience"
	"github.com/sells-group/motivation-cli/pkg/anthropic"
)

const insightSystemPrompt = "You are an expert real estate negotiation analyst. " +
	"Analyze seller conversations and provide ONE key strategic insight in 15 words or less."

// insightMaxChars caps the returned insight; longer responses are truncated
// with an ellipsis.
const insightMaxChars = 150

// insightTranscriptLimit bounds how much transcript is sent upstream.
const insightTranscriptLimit = 1000

// ClaudeInsight generates the optional one-sentence strategic insight via
// the Anthropic API.
type ClaudeInsight struct {
	client anthropic.Client
	model  string
}

// NewClaudeInsight creates a ClaudeInsight using the given model.
func NewClaudeInsight(client anthropic.Client, model string) *ClaudeInsight {
	return &ClaudeInsight{client: client, model: model}
}

// Insight implements InsightClient.
func (c *ClaudeInsight) Insight(ctx context.Context, transcript string, score float64) (string, error) {
	excerpt := truncateRunes(transcript, insightTranscriptLimit)

	temp := 0.7
	req := anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   50,
		Temperature: &temp,
		System:      []anthropic.SystemBlock{{Text: insightSystemPrompt}},
		Messages: []anthropic.Message{{
			Role: "user",
			Content: fmt.Sprintf(
				"Motivation Score: %.1f/10\n\nConversation:\n%s\n\nProvide ONE strategic insight for the investor:",
				score, excerpt,
			),
		}},
	}

	var resp *anthropic.MessageResponse
	err := resilience.Do(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
		var callErr error
		resp, callErr = c.client.CreateMessage(ctx, req)
		return callErr
	})
	if err != nil {
		return "", eris.Wrap(err, "scorer: insight request")
	}
	resp.Usage.LogCost(c.model, "insight")

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = strings.TrimSpace(block.Text)
			break
		}
	}
	if runes := []rune(text); len(runes) >= insightMaxChars {
		text = string(runes[:insightMaxChars-3]) + "..."
	}
	return text, nil
}

// truncateRunes cuts s to at most n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
