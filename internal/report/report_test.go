package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/motivation-cli/internal/model"
)

func f(v float64) *float64 { return &v }

func sampleAnalysis() *model.AnalysisResult {
	return &model.AnalysisResult{
		OverallScore:    8.2,
		MotivationLevel: model.MotivationVeryHigh,
		Confidence:      88,
		KeyIndicators:   model.KeyIndicators{HighMotivation: 3, Flexibility: 1},
		EmotionAnalysis: model.EmotionAnalysis{
			DominantEmotion:    "urgency",
			EmotionalIntensity: 6,
			EmotionalStability: "stable",
		},
		KeyQuotes:           []string{"We are behind on payments and out of options."},
		Insights:            []string{"Financial distress detected - seller facing foreclosure pressure, highly motivated"},
		NegotiationStrategy: []string{"Lead with SPEED and CERTAINTY - emphasize quick closing (7-14 days)"},
		TimelineUrgency:     model.TimelineUrgency{Level: "Critical", Detail: "Seller needs to close within days/weeks"},
		PainPoints:          []string{"Financial Pressure"},
		RedFlags:            []string{"Legal representation involved - may complicate negotiations"},
		ConversationQuality: model.ConversationQuality{Quality: "Good", WordCount: 150, ExchangeCount: 8, DetailLevel: "Moderate"},
		RecommendedOffer: model.OfferApproach{
			OfferRange:        "60-70% ARV",
			ClosingTimeline:   "7-14 days",
			Terms:             "All cash, as-is, no contingencies",
			PresentationStyle: "Confident and solution-focused",
			FollowUp:          "Immediate - strike while motivation is high",
		},
		DealNumbers: &model.DealNumbers{
			Extracted: model.ExtractedNumbers{
				MortgageBalance: f(150000),
				Arrears:         f(12000),
				EstimatedValue:  f(250000),
				Bedrooms:        f(3),
			},
			Calculated: model.CalculatedNumbers{
				TotalPayoff:     f(162000),
				EquityAvailable: f(88000),
			},
			Confidence:      48,
			FieldsExtracted: 6,
		},
	}
}

func TestRenderSectionOrder(t *testing.T) {
	doc := Render(sampleAnalysis(), "Seller: hello there, this is the transcript.")

	headings := []string{
		"# Seller Motivation Analysis Report",
		"## Motivation Score",
		"## Deal Numbers Summary",
		"## Key Indicators",
		"## Emotional Analysis",
		"## Key Quotes",
		"## Key Insights",
		"## Negotiation Strategy",
		"## Timeline Urgency",
		"## Pain Points",
		"## Recommended Offer Approach",
		"## Red Flags & Concerns",
		"## Conversation Quality",
		"## Transcript",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(doc, h)
		assert.Greater(t, idx, last, "heading %q out of order or missing", h)
		last = idx
	}
}

func TestRenderScoreAndMoney(t *testing.T) {
	doc := Render(sampleAnalysis(), "")

	assert.Contains(t, doc, "Overall Score: 8.2/10")
	assert.Contains(t, doc, "Motivation Level: Very High")
	assert.Contains(t, doc, "Confidence: 88%")
	assert.Contains(t, doc, "Mortgage Balance: $150,000")
	assert.Contains(t, doc, "Total Payoff: $162,000")
	assert.Contains(t, doc, "Equity Available: $88,000")
	assert.Contains(t, doc, "Bedrooms: 3")
	assert.Contains(t, doc, "Extraction confidence: 48% (6 fields)")
	assert.Contains(t, doc, "Critical urgency.")
}

func TestRenderOmitsEmptySections(t *testing.T) {
	a := sampleAnalysis()
	a.DealNumbers = nil
	a.KeyQuotes = nil
	a.RedFlags = nil

	doc := Render(a, "")
	assert.NotContains(t, doc, "## Deal Numbers Summary")
	assert.NotContains(t, doc, "## Key Quotes")
	assert.NotContains(t, doc, "## Red Flags")
	assert.NotContains(t, doc, "## Transcript")
}

func TestRenderSkipsDealNumbersWithNoFields(t *testing.T) {
	a := sampleAnalysis()
	a.DealNumbers = &model.DealNumbers{Confidence: 0, Error: "service unavailable"}

	doc := Render(a, "")
	assert.NotContains(t, doc, "## Deal Numbers Summary")
}

func TestCommaSeparated(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1,500"},
		{162000, "162,000"},
		{1250000, "1,250,000"},
		{-50000, "-50,000"},
		{1234.5, "1,234.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, commaSeparated(tc.in), "%v", tc.in)
	}
}
