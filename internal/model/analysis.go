package model

import "time"

// MotivationLevel is the qualitative band derived from the overall score.
type MotivationLevel string

const (
	MotivationVeryLow       MotivationLevel = "Very Low"
	MotivationLow           MotivationLevel = "Low"
	MotivationModerate      MotivationLevel = "Moderate"
	MotivationHigh          MotivationLevel = "High"
	MotivationVeryHigh      MotivationLevel = "Very High"
	MotivationExtremelyHigh MotivationLevel = "Extremely High"
)

// KeyIndicators holds raw phrase-occurrence counts per lexicon category.
type KeyIndicators struct {
	HighMotivation  int `json:"high_motivation"`
	Flexibility     int `json:"flexibility"`
	Resistance      int `json:"resistance"`
	EmotionalStress int `json:"emotional_stress"`
}

// EmotionAnalysis summarizes the emotional tone of a conversation.
type EmotionAnalysis struct {
	EmotionsDetected   map[string]int `json:"emotions_detected"`
	DominantEmotion    string         `json:"dominant_emotion"`
	EmotionalIntensity int            `json:"emotional_intensity"`
	EmotionalStability string         `json:"emotional_stability"`
}

// TimelineUrgency describes how soon the seller needs to close.
type TimelineUrgency struct {
	Level  string `json:"level"`
	Detail string `json:"detail"`
}

// ConversationQuality grades the depth of the transcript.
type ConversationQuality struct {
	Quality       string `json:"quality"`
	WordCount     int    `json:"word_count"`
	ExchangeCount int    `json:"exchange_count"`
	DetailLevel   string `json:"detail_level"`
}

// OfferApproach is the recommended offer structure for a score band.
type OfferApproach struct {
	OfferRange        string `json:"offer_range"`
	ClosingTimeline   string `json:"closing_timeline"`
	Terms             string `json:"terms"`
	PresentationStyle string `json:"presentation_style"`
	FollowUp          string `json:"follow_up"`
}

// ExtractedNumbers is the raw field set returned by the extraction service.
// All numerics are nullable; the service must not invent values.
type ExtractedNumbers struct {
	MortgageBalance      *float64 `json:"mortgage_balance"`
	Arrears              *float64 `json:"arrears"`
	MonthsBehind         *float64 `json:"months_behind"`
	MonthlyPayment       *float64 `json:"monthly_payment"`
	SellerNetDesired     *float64 `json:"seller_net_desired"`
	AskingPrice          *float64 `json:"asking_price"`
	EstimatedValue       *float64 `json:"estimated_value"`
	PropertyTaxesAnnual  *float64 `json:"property_taxes_annual"`
	HOAMonthly           *float64 `json:"hoa_monthly"`
	RepairCosts          *float64 `json:"repair_costs"`
	Bedrooms             *float64 `json:"bedrooms"`
	Bathrooms            *float64 `json:"bathrooms"`
	SquareFeet           *float64 `json:"square_feet"`
	InterestRate         *float64 `json:"interest_rate"`
	DaysUntilForeclosure *float64 `json:"days_until_foreclosure"`
	AdditionalNotes      string   `json:"additional_notes"`
}

// CalculatedNumbers holds quantities derived from the extracted fields.
type CalculatedNumbers struct {
	TotalPayoff     *float64 `json:"total_payoff"`
	MinimumOffer    *float64 `json:"minimum_offer"`
	EquityAvailable *float64 `json:"equity_available"`
}

// DealNumbers is the best-effort financial picture of the deal.
type DealNumbers struct {
	Extracted       ExtractedNumbers  `json:"extracted"`
	Calculated      CalculatedNumbers `json:"calculated"`
	Confidence      int               `json:"confidence"`
	FieldsExtracted int               `json:"fields_extracted"`
	Error           string            `json:"error,omitempty"`
}

// AnalysisResult is the full output record for one transcript.
type AnalysisResult struct {
	OverallScore        float64             `json:"overall_score"`
	MotivationLevel     MotivationLevel     `json:"motivation_level"`
	Confidence          int                 `json:"confidence"`
	KeyIndicators       KeyIndicators       `json:"key_indicators"`
	EmotionAnalysis     EmotionAnalysis     `json:"emotion_analysis"`
	KeyQuotes           []string            `json:"key_quotes"`
	Insights            []string            `json:"insights"`
	NegotiationStrategy []string            `json:"negotiation_strategy"`
	TimelineUrgency     TimelineUrgency     `json:"timeline_urgency"`
	PainPoints          []string            `json:"pain_points"`
	RedFlags            []string            `json:"red_flags"`
	ConversationQuality ConversationQuality `json:"conversation_quality"`
	RecommendedOffer    OfferApproach       `json:"recommended_offer_approach"`
	DealNumbers         *DealNumbers        `json:"deal_numbers,omitempty"`
}

// TranscriptAnalysisResponse is the sync analysis API payload.
type TranscriptAnalysisResponse struct {
	Success    bool            `json:"success"`
	Transcript string          `json:"transcript"`
	Analysis   *AnalysisResult `json:"analysis"`
	UsageStats *UsageStats     `json:"usage_stats,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// AudioAnalysisResponse is the audio analysis payload, returned directly on
// the sync path and stored as the job result on the async path.
type AudioAnalysisResponse struct {
	Success              bool            `json:"success"`
	Transcript           string          `json:"transcript"`
	Analysis             *AnalysisResult `json:"analysis"`
	AudioDurationMinutes float64         `json:"audio_duration_minutes"`
	UsageStats           *UsageStats     `json:"usage_stats,omitempty"`
	Timestamp            time.Time       `json:"timestamp"`
}
