package dealnum

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/motivation-cli/pkg/openai"
)

type stubChat struct {
	responses []string
	errs      []error
	calls     int
	lastReq   openai.CompletionRequest
}

func (s *stubChat) Complete(_ context.Context, req openai.CompletionRequest) (string, error) {
	s.lastReq = req
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var resp string
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	return resp, err
}

func TestExtractParsesResponse(t *testing.T) {
	stub := &stubChat{responses: []string{`{
		"mortgage_balance": 150000,
		"arrears": 12000,
		"seller_net_desired": 20000,
		"estimated_value": 250000,
		"bedrooms": 3,
		"additional_notes": "facing foreclosure in 60 days"
	}`}}
	e := NewExtractor(stub, "gpt-4o-mini")

	dn := e.Extract(context.Background(), "Seller: I owe about 150k plus 12k in arrears...")
	require.NotNil(t, dn)
	assert.Empty(t, dn.Error)

	assert.Equal(t, 6, dn.FieldsExtracted)
	assert.Equal(t, 48, dn.Confidence)
	require.NotNil(t, dn.Extracted.MortgageBalance)
	assert.InDelta(t, 150000, *dn.Extracted.MortgageBalance, 0.001)
	require.NotNil(t, dn.Calculated.TotalPayoff)
	assert.InDelta(t, 162000, *dn.Calculated.TotalPayoff, 0.001)
	require.NotNil(t, dn.Calculated.MinimumOffer)
	assert.InDelta(t, 182000, *dn.Calculated.MinimumOffer, 0.001)

	assert.Equal(t, "gpt-4o-mini", stub.lastReq.Model)
	assert.True(t, stub.lastReq.JSONMode)
	assert.Contains(t, stub.lastReq.User, "Seller: I owe about 150k")
}

func TestExtractServiceFailure(t *testing.T) {
	stub := &stubChat{errs: []error{errors.New("invalid api key")}}
	e := NewExtractor(stub, "gpt-4o-mini")

	dn := e.Extract(context.Background(), "any transcript")
	require.NotNil(t, dn)
	assert.Equal(t, 0, dn.Confidence)
	assert.Equal(t, 0, dn.FieldsExtracted)
	assert.Contains(t, dn.Error, "invalid api key")
	assert.Nil(t, dn.Calculated.TotalPayoff)
	// Non-transient errors are not retried.
	assert.Equal(t, 1, stub.calls)
}

func TestExtractRetriesTransientFailure(t *testing.T) {
	stub := &stubChat{
		errs:      []error{errors.New("429 too many requests"), nil},
		responses: []string{"", `{"mortgage_balance": 100000}`},
	}
	e := NewExtractor(stub, "gpt-4o-mini")

	dn := e.Extract(context.Background(), "transcript")
	assert.Equal(t, 2, stub.calls)
	assert.Empty(t, dn.Error)
	assert.Equal(t, 1, dn.FieldsExtracted)
}

func TestExtractMalformedJSON(t *testing.T) {
	stub := &stubChat{responses: []string{"not json at all"}}
	e := NewExtractor(stub, "gpt-4o-mini")

	dn := e.Extract(context.Background(), "transcript")
	assert.Equal(t, 0, dn.Confidence)
	assert.NotEmpty(t, dn.Error)
}

func TestExtractEmptyObject(t *testing.T) {
	stub := &stubChat{responses: []string{"{}"}}
	e := NewExtractor(stub, "gpt-4o-mini")

	dn := e.Extract(context.Background(), "transcript")
	assert.Empty(t, dn.Error)
	assert.Equal(t, 0, dn.FieldsExtracted)
	// Floor of the confidence scale, not zero: the extraction itself
	// succeeded.
	assert.Equal(t, 30, dn.Confidence)
}

func TestExtractPromptListsAllFields(t *testing.T) {
	stub := &stubChat{responses: []string{"{}"}}
	e := NewExtractor(stub, "gpt-4o-mini")
	e.Extract(context.Background(), "transcript")

	for _, field := range []string{
		"mortgage_balance", "arrears", "months_behind", "monthly_payment",
		"seller_net_desired", "asking_price", "estimated_value",
		"property_taxes_annual", "hoa_monthly", "repair_costs", "bedrooms",
		"bathrooms", "square_feet", "interest_rate", "days_until_foreclosure",
		"additional_notes",
	} {
		assert.True(t, strings.Contains(stub.lastReq.User, field), "prompt missing %s", field)
	}
}
