package openai

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("sk-test", 0).(*sdkClient)

	assert.Equal(t, sdk.AudioModelWhisper1, c.transcribeModel)
	assert.Nil(t, c.limiter)
}

func TestWithTranscribeModel(t *testing.T) {
	c := NewClient("sk-test", 0, WithTranscribeModel("gpt-4o-transcribe")).(*sdkClient)

	assert.Equal(t, sdk.AudioModel("gpt-4o-transcribe"), c.transcribeModel)
}

func TestRateLimiterEnabled(t *testing.T) {
	c := NewClient("sk-test", 2.0).(*sdkClient)

	require.NotNil(t, c.limiter)
	assert.InDelta(t, 2.0, float64(c.limiter.Limit()), 0.001)
}

func TestWaitWithoutLimiter(t *testing.T) {
	c := NewClient("sk-test", 0).(*sdkClient)

	assert.NoError(t, c.wait(context.Background()))
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	c := NewClient("sk-test", 0.001).(*sdkClient)

	// Drain the single burst token so the next wait would block for minutes.
	require.NoError(t, c.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.wait(ctx))
}

func TestVerboseTranscriptionDecode(t *testing.T) {
	body := `{"task":"transcribe","language":"english","duration":87.3,"text":"Hello there."}`

	var verbose verboseTranscription
	require.NoError(t, json.Unmarshal([]byte(body), &verbose))
	assert.Equal(t, "Hello there.", verbose.Text)
	assert.InDelta(t, 87.3, verbose.Duration, 0.0001)
}
