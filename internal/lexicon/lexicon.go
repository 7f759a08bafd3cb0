// Package lexicon holds the static phrase sets used for motivation scoring.
// All sets are loaded once at process start and never mutated.
package lexicon

// HighMotivation lists phrases that signal a strong need to sell.
// The first 15 entries are also used for priority quote extraction.
var HighMotivation = []string{
	"need to sell quickly", "behind on payments", "foreclosure", "divorce",
	"job loss", "financial hardship", "must sell", "urgent", "desperate",
	"can't afford", "bankruptcy", "inherited", "estate sale", "relocating",
	"job transfer", "health issues", "downsizing", "retirement", "medical bills",
	"tax lien", "pre-foreclosure", "short sale", "underwater", "upside down",
	"can't make payments", "falling apart", "too much work", "tired of dealing",
}

// Flexibility lists phrases that signal openness to terms and price.
var Flexibility = []string{
	"open to offers", "negotiable", "flexible", "willing to work with",
	"make an offer", "what can you do", "cash offer", "quick close",
	"as-is", "no repairs", "seller financing", "rent back", "creative terms",
	"whatever works", "just make it happen", "work something out",
}

// Resistance lists phrases that signal price anchoring or a seller who is
// merely testing the market.
var Resistance = []string{
	"not in a hurry", "testing the market", "see what happens",
	"retail price", "full asking price", "no lowball offers",
	"firm on price", "take my time", "no rush", "worth more",
	"comparable sales", "market value", "appraised at",
}

// EmotionalStress lists phrases that signal the seller is under strain.
var EmotionalStress = []string{
	"stressed", "overwhelmed", "frustrated", "tired", "exhausted",
	"can't handle", "too much", "burden", "headache", "nightmare",
	"anxiety", "worried", "scared", "pressure", "breaking point",
}

// EmotionPattern maps an emotion category to its trigger phrases.
type EmotionPattern struct {
	Name     string
	Triggers []string
}

// Emotions is evaluated in this fixed order; ties on the dominant emotion
// resolve to the first-seen category.
var Emotions = []EmotionPattern{
	{Name: "desperation", Triggers: []string{"desperate", "need help", "please", "running out of time", "last resort"}},
	{Name: "relief", Triggers: []string{"relief", "glad", "thankful", "appreciate", "finally"}},
	{Name: "frustration", Triggers: []string{"frustrated", "annoyed", "sick of", "fed up", "tired of"}},
	{Name: "anxiety", Triggers: []string{"worried", "concerned", "nervous", "scared", "anxious"}},
	{Name: "urgency", Triggers: []string{"urgent", "quickly", "asap", "immediately", "right away", "soon as possible"}},
}

// UrgentTimeline and ModerateTimeline drive the timeline-urgency tiers.
var UrgentTimeline = []string{
	"urgent", "quickly", "asap", "soon", "days", "week", "immediately", "right away",
}

var ModerateTimeline = []string{
	"month", "months", "few weeks", "spring", "summer", "fall", "winter",
}

// PainPointCategory maps a pain-point label to its trigger keywords.
type PainPointCategory struct {
	Name     string
	Keywords []string
}

// PainPoints is evaluated in this fixed order; output order follows it.
var PainPoints = []PainPointCategory{
	{Name: "Financial Pressure", Keywords: []string{"payments", "mortgage", "behind", "afford", "foreclosure", "bankruptcy"}},
	{Name: "Property Condition", Keywords: []string{"maintenance", "repairs", "falling apart", "needs work", "condition"}},
	{Name: "Geographic Distance", Keywords: []string{"distance", "far", "out of state", "moved", "relocated"}},
	{Name: "Tenant Issues", Keywords: []string{"tenants", "rental", "eviction", "bad tenants", "vacancy"}},
	{Name: "Time Burden", Keywords: []string{"time", "busy", "can't manage", "too much work", "overwhelming"}},
	{Name: "Emotional Stress", Keywords: []string{"divorce", "death", "estate", "health", "family"}},
	{Name: "Market Concerns", Keywords: []string{"market", "value dropping", "won't sell", "sitting too long"}},
}

// QuotePriorityCount is how many leading HighMotivation phrases qualify a
// seller line for priority quote extraction.
const QuotePriorityCount = 15
