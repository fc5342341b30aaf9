package models

// API key statuses as reported by the backend.
const (
	KeyStatusActive   = "active"
	KeyStatusInactive = "inactive"
	KeyStatusRevoked  = "revoked"
)

// APIKey describes one moderation API key owned by the current user.
// The plaintext key material is never part of this record; the backend only
// stores a hash and returns the key itself once, on creation.
type APIKey struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	KeyHash           string   `json:"key_hash"`
	Rules             []string `json:"rules"`
	Status            string   `json:"status"`
	UsageCount        int64    `json:"usage_count"`
	MonthlyQuota      int64    `json:"monthly_quota"`
	CurrentMonthUsage int64    `json:"current_month_usage"`
	RemainingQuota    int64    `json:"remaining_quota"`
	QuotaResetDate    string   `json:"quota_reset_date"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// CreateKeyRequest is the payload for creating a new API key.
type CreateKeyRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Rules       []string `json:"rules"`
}

// CreatedKey is the creation response. Key holds the plaintext API key and is
// shown to the user exactly once.
type CreatedKey struct {
	Message string  `json:"message"`
	APIKey  *APIKey `json:"apiKey"`
	Key     string  `json:"key"`
}

// QuotaStatus is the per-key quota snapshot.
type QuotaStatus struct {
	KeyID             string `json:"keyId"`
	MonthlyQuota      int64  `json:"monthlyQuota"`
	CurrentMonthUsage int64  `json:"currentMonthUsage"`
	RemainingQuota    int64  `json:"remainingQuota"`
	QuotaResetDate    string `json:"quotaResetDate"`
	QuotaAvailable    bool   `json:"quotaAvailable"`
	Status            string `json:"status"`
}
