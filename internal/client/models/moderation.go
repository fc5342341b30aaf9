package models

// ModerationVerdict is the analysis part of a moderation response.
type ModerationVerdict struct {
	Flagged           bool     `json:"flagged"`
	Confidence        float64  `json:"confidence"`
	Categories        []string `json:"categories"`
	Severity          string   `json:"severity"`
	ActionRecommended string   `json:"action_recommended"`
}

// ModerationMetadata carries per-request accounting details.
type ModerationMetadata struct {
	TextLength       int64  `json:"text_length"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	ModelVersion     string `json:"model_version"`
	APIKeyUsed       string `json:"api_key_used"`
}

// ModerationResult is the full response of the text-moderation endpoint.
type ModerationResult struct {
	Status   bool                `json:"status"`
	Result   *ModerationVerdict  `json:"result"`
	Metadata *ModerationMetadata `json:"metadata"`
}
