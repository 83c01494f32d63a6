package model

// DashboardMetrics is the backend analytics payload. Everything countable
// from the inbox itself is derived client-side instead; this carries only
// the backend-owned ROI and trust figures.
type DashboardMetrics struct {
	ROI    ROIMetrics    `json:"roi"`
	Trust  TrustMetrics  `json:"trust"`
	Trends TrendsMetrics `json:"trends"`
}

type ROIMetrics struct {
	HoursSaved float64 `json:"hours_saved"`
	MoneySaved float64 `json:"money_saved"`
	HourlyRate int     `json:"hourly_rate"`
}

type TrustMetrics struct {
	AverageConfidence float64 `json:"average_confidence"`
	HallucinationRate float64 `json:"hallucination_rate"`
	RAGUsage          string  `json:"rag_usage"`
}

type TrendsMetrics struct {
	SentimentVelocity string `json:"sentiment_velocity"`
	TopIntent         string `json:"top_intent"`
}
