package dealnum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/model"
	"github.com/sells-group/motivation-cli/internal/resilience"
	"github.com/sells-group/motivation-cli/pkg/openai"
)

// ChatClient is the completion surface the extractor needs.
type ChatClient interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}

const extractSystemPrompt = `You are an expert at extracting financial and property information from real estate conversations.
Extract all relevant numbers and details mentioned in the conversation.
Return ONLY valid JSON with the exact structure requested.
Use null for missing values. Do not make up numbers.`

const extractUserPrompt = `Extract deal numbers from this conversation:

%s

Return JSON with these fields (use null if not mentioned):
{
  "mortgage_balance": number or null,
  "arrears": number or null,
  "months_behind": number or null,
  "monthly_payment": number or null,
  "seller_net_desired": number or null,
  "asking_price": number or null,
  "estimated_value": number or null,
  "property_taxes_annual": number or null,
  "hoa_monthly": number or null,
  "repair_costs": number or null,
  "bedrooms": number or null,
  "bathrooms": number or null,
  "square_feet": number or null,
  "interest_rate": number or null,
  "days_until_foreclosure": number or null,
  "additional_notes": "string with any other relevant context"
}`

// Extractor pulls deal numbers out of transcripts via the extraction
// service and post-processes them into derived quantities.
type Extractor struct {
	client ChatClient
	model  string
}

// NewExtractor creates an Extractor using the given completion model.
func NewExtractor(client ChatClient, model string) *Extractor {
	return &Extractor{client: client, model: model}
}

// Extract returns the best-effort deal numbers for a transcript. On service
// or parse failure it returns an empty record with confidence 0 and the
// error text attached; it never returns an error to the caller.
func (e *Extractor) Extract(ctx context.Context, transcript string) *model.DealNumbers {
	var content string
	err := resilience.Do(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
		var callErr error
		content, callErr = e.client.Complete(ctx, openai.CompletionRequest{
			Model:       e.model,
			System:      extractSystemPrompt,
			User:        fmt.Sprintf(extractUserPrompt, transcript),
			MaxTokens:   500,
			Temperature: 0.3,
			JSONMode:    true,
		})
		return callErr
	})
	if err != nil {
		return failedExtraction(eris.Wrap(err, "dealnum: extraction request"))
	}

	var extracted model.ExtractedNumbers
	if err := json.Unmarshal([]byte(content), &extracted); err != nil {
		return failedExtraction(eris.Wrap(err, "dealnum: decode extraction response"))
	}

	fields := CountFields(extracted)
	result := &model.DealNumbers{
		Extracted:       extracted,
		Calculated:      Derive(extracted),
		FieldsExtracted: fields,
		Confidence:      ExtractionConfidence(fields),
	}

	zap.L().Debug("dealnum: extraction complete",
		zap.Int("fields_extracted", fields),
		zap.Int("confidence", result.Confidence),
	)

	return result
}

func failedExtraction(err error) *model.DealNumbers {
	zap.L().Warn("dealnum: extraction failed", zap.Error(err))
	return &model.DealNumbers{
		Confidence:      0,
		FieldsExtracted: 0,
		Error:           err.Error(),
	}
}
