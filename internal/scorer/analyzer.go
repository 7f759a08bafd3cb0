// Package scorer converts seller conversation transcripts into a structured
// motivation analysis using keyword-weighted indicator scoring.
package scorer

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/lexicon"
	"github.com/sells-group/motivation-cli/internal/model"
)

// InsightClient produces one short strategic insight for a transcript.
// Implementations are best-effort: a failure drops the insight, nothing else.
type InsightClient interface {
	Insight(ctx context.Context, transcript string, score float64) (string, error)
}

// Analyzer scores transcripts against the static lexicons. The zero struct
// is usable; an optional InsightClient adds an LLM-generated insight for
// transcripts longer than insightWordGate words.
type Analyzer struct {
	insight InsightClient
}

// insightWordGate is the minimum word count before the external insight
// call is attempted.
const insightWordGate = 50

// NewAnalyzer creates an Analyzer. insight may be nil to disable the
// external insight call.
func NewAnalyzer(insight InsightClient) *Analyzer {
	return &Analyzer{insight: insight}
}

// Analyze scores a transcript. It never fails for non-empty input; callers
// must reject empty or whitespace-only transcripts before invoking it.
// Deal numbers are attached separately by the orchestration layer.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) *model.AnalysisResult {
	folded := strings.ToLower(transcript)

	indicators := model.KeyIndicators{
		HighMotivation:  countOccurrences(folded, lexicon.HighMotivation),
		Flexibility:     countOccurrences(folded, lexicon.Flexibility),
		Resistance:      countOccurrences(folded, lexicon.Resistance),
		EmotionalStress: countOccurrences(folded, lexicon.EmotionalStress),
	}

	emotions := analyzeEmotions(folded)
	score := calculateScore(indicators, emotions.EmotionalIntensity)
	quotes := extractKeyQuotes(transcript)
	wordCount := len(strings.Fields(transcript))

	result := &model.AnalysisResult{
		OverallScore:        score,
		MotivationLevel:     motivationLevel(score),
		Confidence:          calculateConfidence(indicators, len(quotes), wordCount),
		KeyIndicators:       indicators,
		EmotionAnalysis:     emotions,
		KeyQuotes:           quotes,
		Insights:            a.generateInsights(ctx, transcript, folded, score, emotions, wordCount),
		NegotiationStrategy: generateStrategy(score, indicators, emotions),
		TimelineUrgency:     assessTimelineUrgency(folded),
		PainPoints:          identifyPainPoints(folded),
		RedFlags:            identifyRedFlags(folded),
		ConversationQuality: assessConversationQuality(transcript),
		RecommendedOffer:    recommendOfferApproach(score),
	}

	zap.L().Debug("scorer: analysis complete",
		zap.Float64("score", result.OverallScore),
		zap.String("level", string(result.MotivationLevel)),
		zap.Int("high_motivation", indicators.HighMotivation),
		zap.Int("resistance", indicators.Resistance),
		zap.String("dominant_emotion", emotions.DominantEmotion),
	)

	return result
}

// countOccurrences sums non-overlapping substring occurrences of every
// phrase against the folded text. A phrase occurring twice counts twice.
func countOccurrences(folded string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += strings.Count(folded, p)
	}
	return total
}

// analyzeEmotions tallies trigger-phrase occurrences per emotion category.
// A category is detected only when its sum is positive; the dominant
// emotion is the highest-count detected category, first-seen on ties, or
// "neutral" when nothing is detected.
func analyzeEmotions(folded string) model.EmotionAnalysis {
	detected := make(map[string]int)
	total := 0
	dominant := "neutral"
	dominantCount := 0

	for _, e := range lexicon.Emotions {
		count := countOccurrences(folded, e.Triggers)
		if count == 0 {
			continue
		}
		detected[e.Name] = count
		total += count
		if count > dominantCount {
			dominant = e.Name
			dominantCount = count
		}
	}

	stability := "stable"
	if total > 5 {
		stability = "unstable"
	}

	return model.EmotionAnalysis{
		EmotionsDetected:   detected,
		DominantEmotion:    dominant,
		EmotionalIntensity: minInt(10, total*2),
		EmotionalStability: stability,
	}
}

// calculateScore composes the motivation score from capped additive terms
// around a 5.0 base, clamped to [1,10] and rounded to one decimal. Each
// term is capped independently so no single repeated phrase can dominate.
func calculateScore(ind model.KeyIndicators, intensity int) float64 {
	base := 5.0

	motivationBoost := math.Min(float64(ind.HighMotivation)*0.8, 3.5)
	flexibilityBoost := math.Min(float64(ind.Flexibility)*0.6, 2.0)
	stressBoost := math.Min(float64(ind.EmotionalStress)*0.4, 1.5)
	emotionBoost := math.Min(float64(intensity)*0.15, 1.0)
	resistancePenalty := math.Min(float64(ind.Resistance)*0.7, 3.0)

	score := base + motivationBoost + flexibilityBoost + stressBoost + emotionBoost - resistancePenalty
	score = math.Max(1.0, math.Min(10.0, score))
	return math.Round(score*10) / 10
}

// motivationLevel maps a score onto the six fixed bands, highest first.
func motivationLevel(score float64) model.MotivationLevel {
	switch {
	case score >= 8.5:
		return model.MotivationExtremelyHigh
	case score >= 7.0:
		return model.MotivationVeryHigh
	case score >= 5.5:
		return model.MotivationHigh
	case score >= 4.0:
		return model.MotivationModerate
	case score >= 2.5:
		return model.MotivationLow
	default:
		return model.MotivationVeryLow
	}
}

// calculateConfidence estimates analysis confidence from signal density,
// quote count, and transcript length, clamped to [65,98].
func calculateConfidence(ind model.KeyIndicators, quoteCount, wordCount int) int {
	base := 70
	indicatorBoost := minInt((ind.HighMotivation+ind.Flexibility)*3, 15)
	quoteBoost := minInt(quoteCount*2, 10)
	lengthBoost := minInt(wordCount/50, 10)

	total := base + indicatorBoost + quoteBoost + lengthBoost
	return minInt(98, maxInt(65, total))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
