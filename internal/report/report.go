// Package report renders an analysis result as a shareable text document.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/sells-group/motivation-cli/internal/model"
)

// Render produces a markdown report mirroring the analysis schema. Sections
// with no content are omitted.
func Render(analysis *model.AnalysisResult, transcript string) string {
	var b strings.Builder

	b.WriteString("# Seller Motivation Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("January 2, 2006 at 3:04 PM"))

	b.WriteString("## Motivation Score\n\n")
	fmt.Fprintf(&b, "- Overall Score: %.1f/10\n", analysis.OverallScore)
	fmt.Fprintf(&b, "- Motivation Level: %s\n", analysis.MotivationLevel)
	fmt.Fprintf(&b, "- Confidence: %d%%\n\n", analysis.Confidence)

	renderDealNumbers(&b, analysis.DealNumbers)

	b.WriteString("## Key Indicators\n\n")
	fmt.Fprintf(&b, "- High Motivation Signals: %d\n", analysis.KeyIndicators.HighMotivation)
	fmt.Fprintf(&b, "- Flexibility Signals: %d\n", analysis.KeyIndicators.Flexibility)
	fmt.Fprintf(&b, "- Resistance Signals: %d\n", analysis.KeyIndicators.Resistance)
	fmt.Fprintf(&b, "- Emotional Stress Signals: %d\n\n", analysis.KeyIndicators.EmotionalStress)

	b.WriteString("## Emotional Analysis\n\n")
	fmt.Fprintf(&b, "- Dominant Emotion: %s\n", analysis.EmotionAnalysis.DominantEmotion)
	fmt.Fprintf(&b, "- Emotional Intensity: %d/10\n", analysis.EmotionAnalysis.EmotionalIntensity)
	fmt.Fprintf(&b, "- Emotional Stability: %s\n\n", analysis.EmotionAnalysis.EmotionalStability)

	renderList(&b, "Key Quotes", analysis.KeyQuotes, func(q string) string {
		return fmt.Sprintf("> %q", q)
	})
	renderList(&b, "Key Insights", analysis.Insights, bullet)
	renderList(&b, "Negotiation Strategy", analysis.NegotiationStrategy, bullet)

	b.WriteString("## Timeline Urgency\n\n")
	fmt.Fprintf(&b, "%s urgency. %s\n\n", capitalize(analysis.TimelineUrgency.Level), analysis.TimelineUrgency.Detail)

	renderList(&b, "Pain Points", analysis.PainPoints, bullet)

	b.WriteString("## Recommended Offer Approach\n\n")
	fmt.Fprintf(&b, "- Offer Range: %s\n", analysis.RecommendedOffer.OfferRange)
	fmt.Fprintf(&b, "- Closing Timeline: %s\n", analysis.RecommendedOffer.ClosingTimeline)
	fmt.Fprintf(&b, "- Terms: %s\n", analysis.RecommendedOffer.Terms)
	fmt.Fprintf(&b, "- Presentation Style: %s\n", analysis.RecommendedOffer.PresentationStyle)
	fmt.Fprintf(&b, "- Follow Up: %s\n\n", analysis.RecommendedOffer.FollowUp)

	renderList(&b, "Red Flags & Concerns", analysis.RedFlags, bullet)

	b.WriteString("## Conversation Quality\n\n")
	fmt.Fprintf(&b, "- Quality: %s (%s detail)\n", analysis.ConversationQuality.Quality, analysis.ConversationQuality.DetailLevel)
	fmt.Fprintf(&b, "- Word Count: %d\n", analysis.ConversationQuality.WordCount)
	fmt.Fprintf(&b, "- Exchanges: %d\n\n", analysis.ConversationQuality.ExchangeCount)

	if strings.TrimSpace(transcript) != "" {
		b.WriteString("## Transcript\n\n")
		b.WriteString(strings.TrimSpace(transcript))
		b.WriteString("\n")
	}

	return b.String()
}

func renderDealNumbers(b *strings.Builder, dn *model.DealNumbers) {
	if dn == nil || dn.FieldsExtracted == 0 {
		return
	}
	ext, calc := dn.Extracted, dn.Calculated

	b.WriteString("## Deal Numbers Summary\n\n")
	fmt.Fprintf(b, "Extraction confidence: %d%% (%d fields)\n\n", dn.Confidence, dn.FieldsExtracted)

	if ext.MortgageBalance != nil || ext.Arrears != nil || ext.MonthlyPayment != nil {
		b.WriteString("### Financial Obligations\n\n")
		money(b, "Mortgage Balance", ext.MortgageBalance)
		money(b, "Arrears", ext.Arrears)
		money(b, "Monthly Payment", ext.MonthlyPayment)
		money(b, "Total Payoff", calc.TotalPayoff)
		b.WriteString("\n")
	}

	if ext.Bedrooms != nil || ext.Bathrooms != nil || ext.SquareFeet != nil || ext.EstimatedValue != nil {
		b.WriteString("### Property Details\n\n")
		plain(b, "Bedrooms", ext.Bedrooms)
		plain(b, "Bathrooms", ext.Bathrooms)
		plain(b, "Square Feet", ext.SquareFeet)
		money(b, "Estimated Value", ext.EstimatedValue)
		b.WriteString("\n")
	}

	if ext.SellerNetDesired != nil {
		b.WriteString("### Seller Requirements\n\n")
		money(b, "Net Proceeds Desired", ext.SellerNetDesired)
		b.WriteString("\n")
	}

	if calc.EquityAvailable != nil || calc.MinimumOffer != nil {
		b.WriteString("### Quick Math\n\n")
		money(b, "Minimum Offer", calc.MinimumOffer)
		money(b, "Equity Available", calc.EquityAvailable)
		b.WriteString("\n")
	}
}

func renderList(b *strings.Builder, heading string, items []string, format func(string) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		b.WriteString(format(item))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func bullet(s string) string { return "- " + s }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func money(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "- %s: $%s\n", label, commaSeparated(*v))
}

func plain(b *strings.Builder, label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, commaSeparated(*v))
}

// commaSeparated formats a number with thousands separators, dropping the
// fraction when it is whole.
func commaSeparated(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimSuffix(s, ".00")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var out []byte
	for i, ch := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, ch)
	}

	result := string(out)
	if neg {
		result = "-" + result
	}
	if hasFrac {
		result += "." + fracPart
	}
	return result
}
