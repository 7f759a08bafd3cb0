package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeyQuotesPrioritizesSellerLines(t *testing.T) {
	transcript := `Seller: We are facing foreclosure and I just want out of this house.
Investor: I hear you, that sounds rough.
Seller: My divorce is final next month and we have to split everything.`

	quotes := extractKeyQuotes(transcript)
	require.Len(t, quotes, 2)
	assert.Equal(t, "We are facing foreclosure and I just want out of this house.", quotes[0])
	assert.Equal(t, "My divorce is final next month and we have to split everything.", quotes[1])
}

func TestExtractKeyQuotesStripsSpeakerLabels(t *testing.T) {
	quotes := extractKeyQuotes("Homeowner: I'm desperate, the bankruptcy paperwork is due next week.")
	require.Len(t, quotes, 1)
	assert.False(t, strings.HasPrefix(quotes[0], "Homeowner:"))
	assert.Equal(t, "I'm desperate, the bankruptcy paperwork is due next week.", quotes[0])
}

func TestExtractKeyQuotesFallbackScansAllLines(t *testing.T) {
	// No seller-labeled lines, so the priority pass finds nothing; the
	// fallback pass picks up stress phrases on unlabeled lines.
	transcript := `The whole situation has been a nightmare to deal with honestly.
I am just exhausted by all the repairs this place needs.`

	quotes := extractKeyQuotes(transcript)
	require.Len(t, quotes, 2)
	assert.Contains(t, quotes[0], "nightmare")
	assert.Contains(t, quotes[1], "exhausted")
}

func TestExtractKeyQuotesDeduplicates(t *testing.T) {
	line := "Seller: We are behind on payments and cannot keep the house."
	transcript := line + "\n" + line

	quotes := extractKeyQuotes(transcript)
	// Priority pass collects the line twice (distinct transcript lines),
	// and the fallback pass must not add a third copy.
	require.Len(t, quotes, 2)
	assert.Equal(t, quotes[0], quotes[1])
}

func TestExtractKeyQuotesCapsAtFive(t *testing.T) {
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, "Seller: The foreclosure notice arrived and we are completely out of options number "+strings.Repeat("x", i+1))
	}
	quotes := extractKeyQuotes(strings.Join(lines, "\n"))
	assert.Len(t, quotes, 5)
}

func TestExtractKeyQuotesSkipsShortLines(t *testing.T) {
	quotes := extractKeyQuotes("Seller: foreclosure now")
	assert.Empty(t, quotes)
}

func TestCleanQuote(t *testing.T) {
	assert.Equal(t, "", cleanQuote("Seller: too short"))
	assert.Equal(t, "This line is comfortably long enough to keep.",
		cleanQuote("  Agent: This line is comfortably long enough to keep.  "))
}
