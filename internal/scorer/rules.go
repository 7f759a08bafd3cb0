package scorer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/model"
)

// ruleContext carries the aggregate signals the rule tables match against.
type ruleContext struct {
	folded     string
	score      float64
	indicators model.KeyIndicators
	dominant   string
}

// textRule pairs a predicate with a canned output line. Rules are evaluated
// in table order; every matching rule fires, and output order follows the
// table.
type textRule struct {
	match func(rc ruleContext) bool
	text  string
}

var insightRules = []textRule{
	{
		match: func(rc ruleContext) bool {
			return containsAny(rc.folded, "behind on payments", "foreclosure")
		},
		text: "Financial distress detected - seller facing foreclosure pressure, highly motivated",
	},
	{
		match: func(rc ruleContext) bool { return strings.Contains(rc.folded, "divorce") },
		text:  "Divorce situation - emotional urgency to liquidate and split assets quickly",
	},
	{
		match: func(rc ruleContext) bool {
			return strings.Contains(rc.folded, "job") && containsAny(rc.folded, "loss", "transfer", "relocation")
		},
		text: "Employment change - timeline driven by job situation, likely inflexible deadline",
	},
	{
		match: func(rc ruleContext) bool { return containsAny(rc.folded, "inherited", "estate") },
		text:  "Inherited property - low emotional attachment, motivated by cash liquidation",
	},
	{
		match: func(rc ruleContext) bool { return containsAny(rc.folded, "health", "medical") },
		text:  "Health-related sale - potential urgency and financial pressure from medical costs",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "desperation" },
		text:  "High desperation detected - seller in crisis mode, maximum negotiation leverage",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "urgency" },
		text:  "Strong time pressure - emphasize speed and certainty in your offer",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "frustration" },
		text:  "Seller frustrated with property - position as problem solver, not just buyer",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 8.0 },
		text:  "Extremely high motivation - seller likely to accept reasonable offers below market",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 6.5 && rc.score < 8.0 },
		text:  "Strong motivation detected - good opportunity for favorable terms",
	},
	{
		match: func(rc ruleContext) bool { return rc.score <= 3.5 },
		text:  "Low motivation - seller may be testing market, qualify carefully before investing time",
	},
}

// generateInsights runs the insight rule table and optionally appends one
// externally generated insight for substantial transcripts. Failure of the
// external call is swallowed: the insight is dropped, nothing is surfaced.
func (a *Analyzer) generateInsights(ctx context.Context, transcript, folded string, score float64, emotions model.EmotionAnalysis, wordCount int) []string {
	rc := ruleContext{folded: folded, score: score, dominant: emotions.DominantEmotion}

	var insights []string
	for _, rule := range insightRules {
		if rule.match(rc) {
			insights = append(insights, rule.text)
		}
	}

	if a.insight != nil && wordCount > insightWordGate {
		text, err := a.insight.Insight(ctx, transcript, score)
		if err != nil {
			zap.L().Debug("scorer: external insight unavailable", zap.Error(err))
		} else if text != "" {
			insights = append(insights, "AI Analysis: "+text)
		}
	}

	if len(insights) == 0 {
		insights = []string{"Standard motivation level - typical seller situation"}
	}
	return insights
}

var strategyRules = []textRule{
	{
		match: func(rc ruleContext) bool { return rc.score >= 8.0 },
		text:  "Lead with SPEED and CERTAINTY - emphasize quick closing (7-14 days)",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 8.0 },
		text:  "Position as PROBLEM SOLVER, not just buyer - focus on their pain relief",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 8.0 },
		text:  "Offer 60-70% ARV - they're motivated enough to accept below-market pricing",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 6.5 && rc.score < 8.0 },
		text:  "Emphasize quick closing timeline (14-30 days)",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 6.5 && rc.score < 8.0 },
		text:  "Build rapport and trust - they need confidence you'll close",
	},
	{
		match: func(rc ruleContext) bool { return rc.score >= 6.5 && rc.score < 8.0 },
		text:  "Offer 65-75% ARV - good opportunity for favorable terms",
	},
	{
		match: func(rc ruleContext) bool { return rc.indicators.Flexibility >= 2 },
		text:  "Explore CREATIVE TERMS - seller financing, lease options, rent-back",
	},
	{
		match: func(rc ruleContext) bool { return rc.indicators.Flexibility >= 2 },
		text:  "Present multiple offer structures - let them choose what works best",
	},
	{
		match: func(rc ruleContext) bool { return rc.indicators.Resistance >= 2 },
		text:  "Build VALUE PROPOSITION carefully - use comps and market data",
	},
	{
		match: func(rc ruleContext) bool { return rc.indicators.Resistance >= 2 },
		text:  "Multiple touchpoints needed - don't expect immediate acceptance",
	},
	{
		match: func(rc ruleContext) bool { return rc.indicators.Resistance >= 2 },
		text:  "Educate on market realities - help them understand true market value",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "desperation" },
		text:  "Show empathy and understanding - they need emotional support",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "desperation" },
		text:  "Be the 'safe choice' - reduce their fear and uncertainty",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "frustration" },
		text:  "Position as SOLUTION to their frustration - take the burden away",
	},
	{
		match: func(rc ruleContext) bool { return rc.dominant == "urgency" },
		text:  "Match their urgency - show you can move at their speed",
	},
	{
		match: func(rc ruleContext) bool { return rc.score <= 4.0 },
		text:  "QUALIFY CAREFULLY - may not be serious, don't waste time",
	},
	{
		match: func(rc ruleContext) bool { return rc.score <= 4.0 },
		text:  "Focus on education and relationship building for future opportunity",
	},
	{
		match: func(rc ruleContext) bool { return rc.score <= 4.0 },
		text:  "Stay in touch - motivation may increase over time",
	},
}

// generateStrategy runs the strategy rule table, falling back to two
// generic strategies when nothing fires.
func generateStrategy(score float64, indicators model.KeyIndicators, emotions model.EmotionAnalysis) []string {
	rc := ruleContext{score: score, indicators: indicators, dominant: emotions.DominantEmotion}

	var strategies []string
	for _, rule := range strategyRules {
		if rule.match(rc) {
			strategies = append(strategies, rule.text)
		}
	}

	if len(strategies) == 0 {
		strategies = []string{
			"Standard approach - present fair offer with clear terms",
			"Build relationship and trust through professional presentation",
		}
	}
	return strategies
}
