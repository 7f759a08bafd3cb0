package scorer

import (
	"strings"

	"github.com/sells-group/motivation-cli/internal/lexicon"
	"github.com/sells-group/motivation-cli/internal/model"
)

// assessTimelineUrgency tiers closing urgency from keyword occurrence counts.
func assessTimelineUrgency(folded string) model.TimelineUrgency {
	urgentCount := countOccurrences(folded, lexicon.UrgentTimeline)
	moderateCount := countOccurrences(folded, lexicon.ModerateTimeline)

	switch {
	case urgentCount >= 2:
		return model.TimelineUrgency{Level: "Critical", Detail: "Seller needs to close within days/weeks"}
	case urgentCount >= 1:
		return model.TimelineUrgency{Level: "High", Detail: "Seller indicated time pressure (weeks to 1 month)"}
	case moderateCount >= 1:
		return model.TimelineUrgency{Level: "Moderate", Detail: "Seller has preferred timeline (1-3 months)"}
	default:
		return model.TimelineUrgency{Level: "Low", Detail: "No specific timeline mentioned, flexible"}
	}
}

// identifyPainPoints includes each category whose keyword set occurs at
// least once, in fixed category order, with a single generic fallback.
func identifyPainPoints(folded string) []string {
	var points []string
	for _, cat := range lexicon.PainPoints {
		if containsAny(folded, cat.Keywords...) {
			points = append(points, cat.Name)
		}
	}
	if len(points) == 0 {
		points = []string{"Standard selling motivations"}
	}
	return points
}

// redFlagRules are independent presence checks; no cap, no fallback.
var redFlagRules = []textRule{
	{
		match: func(rc ruleContext) bool { return containsAny(rc.folded, "attorney", "lawyer") },
		text:  "Legal representation involved - may complicate negotiations",
	},
	{
		match: func(rc ruleContext) bool {
			return containsAny(rc.folded, "other offers", "multiple offers", "another buyer")
		},
		text: "Competition from other buyers - may need to move quickly",
	},
	{
		match: func(rc ruleContext) bool {
			return containsAny(rc.folded, "think about it", "get back to you", "let me know")
		},
		text: "Seller needs time to decide - may not be ready to commit",
	},
	{
		match: func(rc ruleContext) bool {
			return strings.Contains(rc.folded, "spouse") && strings.Contains(rc.folded, "talk to")
		},
		text: "Decision maker not present - additional approval needed",
	},
	{
		match: func(rc ruleContext) bool { return containsAny(rc.folded, "realtor", "agent", "listed") },
		text:  "Real estate agent involved - may have commission expectations",
	},
	{
		match: func(rc ruleContext) bool { return containsAny(rc.folded, "appraisal", "appraised") },
		text:  "Seller anchored to appraisal value - education needed on investor pricing",
	},
	{
		match: func(rc ruleContext) bool { return containsAny(rc.folded, "not in a hurry", "no rush") },
		text:  "No urgency - seller may be testing market, qualify carefully",
	},
}

func identifyRedFlags(folded string) []string {
	rc := ruleContext{folded: folded}
	var flags []string
	for _, rule := range redFlagRules {
		if rule.match(rc) {
			flags = append(flags, rule.text)
		}
	}
	return flags
}

// assessConversationQuality grades transcript depth from word and
// non-blank line counts.
func assessConversationQuality(transcript string) model.ConversationQuality {
	wordCount := len(strings.Fields(transcript))

	lineCount := 0
	for _, line := range strings.Split(transcript, "\n") {
		if strings.TrimSpace(line) != "" {
			lineCount++
		}
	}

	quality, detail := "Limited", "Low"
	switch {
	case wordCount > 200 && lineCount > 10:
		quality, detail = "Excellent", "High"
	case wordCount > 100 && lineCount > 5:
		quality, detail = "Good", "Moderate"
	}

	return model.ConversationQuality{
		Quality:       quality,
		WordCount:     wordCount,
		ExchangeCount: lineCount,
		DetailLevel:   detail,
	}
}

// recommendOfferApproach is a pure lookup over four score bands.
func recommendOfferApproach(score float64) model.OfferApproach {
	switch {
	case score >= 8.0:
		return model.OfferApproach{
			OfferRange:        "60-70% ARV",
			ClosingTimeline:   "7-14 days",
			Terms:             "All cash, as-is, no contingencies",
			PresentationStyle: "Confident and solution-focused",
			FollowUp:          "Immediate - strike while motivation is high",
		}
	case score >= 6.5:
		return model.OfferApproach{
			OfferRange:        "65-75% ARV",
			ClosingTimeline:   "14-30 days",
			Terms:             "Cash preferred, minimal contingencies",
			PresentationStyle: "Professional with empathy",
			FollowUp:          "Within 24-48 hours",
		}
	case score >= 4.5:
		return model.OfferApproach{
			OfferRange:        "70-80% ARV",
			ClosingTimeline:   "30-45 days",
			Terms:             "Standard investor terms",
			PresentationStyle: "Educational and relationship-building",
			FollowUp:          "Within 3-5 days, stay in touch",
		}
	default:
		return model.OfferApproach{
			OfferRange:        "75-85% ARV (if pursuing)",
			ClosingTimeline:   "Flexible",
			Terms:             "Standard terms",
			PresentationStyle: "Exploratory and educational",
			FollowUp:          "Low priority - focus on better leads",
		}
	}
}
