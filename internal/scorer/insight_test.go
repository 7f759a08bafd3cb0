package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/motivation-cli/pkg/anthropic"
)

type fakeMessageClient struct {
	text    string
	errs    []error // returned in order before the success response
	calls   int
	lastReq anthropic.MessageRequest
}

func (f *fakeMessageClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	f.lastReq = req
	if f.calls <= len(f.errs) {
		return nil, f.errs[f.calls-1]
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.text}},
	}, nil
}

func TestClaudeInsightReturnsText(t *testing.T) {
	fake := &fakeMessageClient{text: "Push for a fast close while urgency is high."}
	c := NewClaudeInsight(fake, "claude-haiku-4-5-20251001")

	got, err := c.Insight(context.Background(), "Seller: we need out now.", 8.5)
	require.NoError(t, err)
	assert.Equal(t, "Push for a fast close while urgency is high.", got)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "claude-haiku-4-5-20251001", fake.lastReq.Model)
	assert.Equal(t, int64(50), fake.lastReq.MaxTokens)
}

func TestClaudeInsightRetriesTransientError(t *testing.T) {
	fake := &fakeMessageClient{
		text: "Lead with certainty of close.",
		errs: []error{errors.New("429 too many requests")},
	}
	c := NewClaudeInsight(fake, "claude-haiku-4-5-20251001")

	got, err := c.Insight(context.Background(), "Seller: hurry.", 7.0)
	require.NoError(t, err)
	assert.Equal(t, "Lead with certainty of close.", got)
	assert.Equal(t, 2, fake.calls)
}

func TestClaudeInsightPermanentError(t *testing.T) {
	fake := &fakeMessageClient{errs: []error{errors.New("invalid api key")}}
	c := NewClaudeInsight(fake, "claude-haiku-4-5-20251001")

	_, err := c.Insight(context.Background(), "Seller: hello.", 5.0)
	require.Error(t, err)
	assert.Equal(t, 1, fake.calls)
}

func TestClaudeInsightTruncatesLongResponse(t *testing.T) {
	fake := &fakeMessageClient{text: strings.Repeat("a", 200)}
	c := NewClaudeInsight(fake, "claude-haiku-4-5-20251001")

	got, err := c.Insight(context.Background(), "Seller: hello.", 5.0)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 147)+"...", got)
}

func TestClaudeInsightTruncatesOnRuneBoundary(t *testing.T) {
	fake := &fakeMessageClient{text: strings.Repeat("é", 200)}
	c := NewClaudeInsight(fake, "claude-haiku-4-5-20251001")

	got, err := c.Insight(context.Background(), "Seller: hello.", 5.0)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 147)+"...", got)
}

func TestClaudeInsightExcerptKeepsRunesIntact(t *testing.T) {
	fake := &fakeMessageClient{text: "ok"}
	c := NewClaudeInsight(fake, "claude-haiku-4-5-20251001")

	_, err := c.Insight(context.Background(), strings.Repeat("é", 1200), 5.0)
	require.NoError(t, err)

	require.Len(t, fake.lastReq.Messages, 1)
	content := fake.lastReq.Messages[0].Content
	assert.True(t, utf8.ValidString(content))
	assert.Equal(t, 1000, strings.Count(content, "é"))
}
