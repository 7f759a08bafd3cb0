package scorer

import (
	"regexp"
	"strings"

	"github.com/sells-group/motivation-cli/internal/lexicon"
)

var (
	sellerLabelRe = regexp.MustCompile(`(?i)(seller|owner|homeowner):`)
	stripLabelRe  = regexp.MustCompile(`(?i)^(seller|owner|homeowner|agent|investor):\s*`)
)

// maxQuotes caps the number of extracted quotes.
const maxQuotes = 5

// extractKeyQuotes pulls up to five impactful lines from the transcript.
// Seller-labeled lines carrying one of the leading high-motivation phrases
// are collected first; if fewer than three are found, a fallback pass scans
// every line for any high-motivation or stress phrase. Pass order is
// preserved and quotes are deduplicated.
func extractKeyQuotes(transcript string) []string {
	lines := strings.Split(transcript, "\n")
	quotes := []string{}

	priority := lexicon.HighMotivation[:lexicon.QuotePriorityCount]
	for _, line := range lines {
		if !sellerLabelRe.MatchString(line) {
			continue
		}
		lineLower := strings.ToLower(line)
		for _, keyword := range priority {
			if strings.Contains(lineLower, keyword) && len(strings.TrimSpace(line)) > 20 {
				if cleaned := cleanQuote(line); cleaned != "" {
					quotes = append(quotes, cleaned)
				}
				break
			}
		}
	}

	if len(quotes) < 3 {
		fallback := make([]string, 0, len(lexicon.HighMotivation)+len(lexicon.EmotionalStress))
		fallback = append(fallback, lexicon.HighMotivation...)
		fallback = append(fallback, lexicon.EmotionalStress...)

		for _, line := range lines {
			lineLower := strings.ToLower(line)
			for _, keyword := range fallback {
				if strings.Contains(lineLower, keyword) && len(strings.TrimSpace(line)) > 20 {
					if cleaned := cleanQuote(line); cleaned != "" && !containsString(quotes, cleaned) {
						quotes = append(quotes, cleaned)
					}
					break
				}
			}
			if len(quotes) >= maxQuotes {
				break
			}
		}
	}

	if len(quotes) > maxQuotes {
		quotes = quotes[:maxQuotes]
	}
	return quotes
}

// cleanQuote strips the speaker label and surrounding whitespace; quotes
// shorter than 21 characters after cleaning are discarded.
func cleanQuote(line string) string {
	cleaned := stripLabelRe.ReplaceAllString(strings.TrimSpace(line), "")
	if len(cleaned) <= 20 {
		return ""
	}
	return cleaned
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
