// Package openai wraps the OpenAI SDK behind a small client interface for
// audio transcription and chat completion, so callers depend on our own
// request/response types.
package openai

import (
	"context"
	"encoding/json"
	"io"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client defines the OpenAI operations used by this service.
type Client interface {
	// Transcribe converts an audio stream to text, returning the spoken
	// text and the audio duration in seconds.
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*Transcription, error)
	// Complete runs a chat completion and returns the assistant text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Transcription is the result of a transcription call.
type Transcription struct {
	Text            string
	DurationSeconds float64
}

// CompletionRequest is our own request type for Complete.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	MaxTokens   int64
	Temperature float64
	// JSONMode constrains the response to a single valid JSON object.
	JSONMode bool
}

// sdkClient implements Client using the official openai-go SDK.
type sdkClient struct {
	client          sdk.Client
	limiter         *rate.Limiter
	transcribeModel sdk.AudioModel
}

// Option customizes the client.
type Option func(*sdkClient)

// WithTranscribeModel overrides the default whisper-1 transcription model.
func WithTranscribeModel(model string) Option {
	return func(c *sdkClient) {
		c.transcribeModel = sdk.AudioModel(model)
	}
}

// NewClient creates an OpenAI client. requestsPerSecond > 0 enables
// client-side rate limiting across all calls.
func NewClient(apiKey string, requestsPerSecond float64, opts ...Option) Client {
	c := &sdkClient{
		client:          sdk.NewClient(option.WithAPIKey(apiKey)),
		transcribeModel: sdk.AudioModelWhisper1,
	}
	if requestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *sdkClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// verboseTranscription mirrors the verbose_json response fields we consume.
// The SDK's typed transcription drops duration, so the raw body is decoded
// directly.
type verboseTranscription struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

func (c *sdkClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (*Transcription, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "openai: rate limit wait")
	}

	var raw []byte
	_, err := c.client.Audio.Transcriptions.New(ctx,
		sdk.AudioTranscriptionNewParams{
			Model:          c.transcribeModel,
			File:           sdk.File(audio, filename, "application/octet-stream"),
			ResponseFormat: sdk.AudioResponseFormatVerboseJSON,
		},
		option.WithResponseBodyInto(&raw),
	)
	if err != nil {
		return nil, eris.Wrap(err, "openai: transcribe")
	}

	var verbose verboseTranscription
	if err := json.Unmarshal(raw, &verbose); err != nil {
		return nil, eris.Wrap(err, "openai: decode transcription")
	}

	zap.L().Debug("openai: transcription complete",
		zap.Float64("duration_seconds", verbose.Duration),
		zap.Int("text_bytes", len(verbose.Text)),
	)

	return &Transcription{
		Text:            verbose.Text,
		DurationSeconds: verbose.Duration,
	}, nil
}

func (c *sdkClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", eris.Wrap(err, "openai: rate limit wait")
	}

	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(req.Model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(req.System),
			sdk.UserMessage(req.User),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(req.MaxTokens)
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}
	if req.JSONMode {
		params.ResponseFormat = sdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", eris.Wrap(err, "openai: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("openai: empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
