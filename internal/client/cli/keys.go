package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/contentmod/portal/internal/client/models"
)

// ListKeys prints the user's API keys with status and quota usage.
func (a *App) ListKeys(ctx context.Context) error {
	keys, err := a.keys.List(ctx)
	if err != nil {
		printlnFn("Could not list keys:", err.Error())
		return err
	}

	if len(keys) == 0 {
		printlnFn("No API keys yet. Use 'addkey' to create one.")
		return nil
	}

	for _, k := range keys {
		printlnFn(fmt.Sprintf("%s  %-20s [%s]  usage %d/%d  rules: %s",
			k.ID, k.Name, k.Status, k.CurrentMonthUsage, k.MonthlyQuota, strings.Join(k.Rules, ", ")))
	}
	return nil
}

// AddKey walks through creating a new API key and prints the plaintext key.
// The key is shown exactly once; the backend only keeps a hash.
func (a *App) AddKey(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Key name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	rules, err := GetLines(a.reader, "Moderation rules, one per line:", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.keys.Create(ctx, models.CreateKeyRequest{
		Name:        name,
		Description: description,
		Rules:       rules,
	})
	if err != nil {
		printlnFn("Key creation failed:", err.Error())
		return err
	}

	printlnFn("Key created:", created.APIKey.Name)
	printlnFn("Your API key (store it now, it will not be shown again):")
	printlnFn("  " + created.Key)
	return nil
}

// KeyStatus toggles a key between active and inactive.
func (a *App) KeyStatus(ctx context.Context) error {
	keyID, err := getSimpleText(a.reader, "Key id", os.Stdout)
	if err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "New status (active/inactive)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.keys.UpdateStatus(ctx, keyID, status); err != nil {
		printlnFn("Status update failed:", err.Error())
		return err
	}

	printlnFn("Status updated.")
	return nil
}

// KeyRules replaces the moderation rules of a key.
func (a *App) KeyRules(ctx context.Context) error {
	keyID, err := getSimpleText(a.reader, "Key id", os.Stdout)
	if err != nil {
		return err
	}
	rules, err := GetLines(a.reader, "New moderation rules, one per line:", os.Stdout)
	if err != nil {
		return err
	}

	key, err := a.keys.UpdateRules(ctx, keyID, rules)
	if err != nil {
		printlnFn("Rules update failed:", err.Error())
		return err
	}

	printlnFn("Rules updated:", strings.Join(key.Rules, ", "))
	return nil
}

// DeleteKey revokes a key after an explicit confirmation.
func (a *App) DeleteKey(ctx context.Context) error {
	keyID, err := getSimpleText(a.reader, "Key id", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, "Revoking is permanent. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.keys.Delete(ctx, keyID); err != nil {
		printlnFn("Revocation failed:", err.Error())
		return err
	}

	printlnFn("Key revoked.")
	return nil
}

// ValidateKey checks a plaintext API key against the public validation
// endpoint. Works without a login.
func (a *App) ValidateKey(ctx context.Context) error {
	apiKey, err := getSimpleText(a.reader, "API key to validate", os.Stdout)
	if err != nil {
		return err
	}

	valid, err := a.keys.Validate(ctx, apiKey)
	if err != nil {
		printlnFn("Validation failed:", err.Error())
		return err
	}

	if valid {
		printlnFn("Key is valid.")
	} else {
		printlnFn("Key is NOT valid.")
	}
	return nil
}

// Quota prints the quota snapshot of one key.
func (a *App) Quota(ctx context.Context) error {
	keyID, err := getSimpleText(a.reader, "Key id", os.Stdout)
	if err != nil {
		return err
	}

	quota, err := a.keys.Quota(ctx, keyID)
	if err != nil {
		printlnFn("Could not fetch quota:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Monthly quota:  %d", quota.MonthlyQuota))
	printlnFn(fmt.Sprintf("Used this month: %d", quota.CurrentMonthUsage))
	printlnFn(fmt.Sprintf("Remaining:       %d", quota.RemainingQuota))
	printlnFn("Resets on:      ", quota.QuotaResetDate)
	if !quota.QuotaAvailable {
		printlnFn("Quota exhausted; requests will be rejected until the reset date.")
	}
	return nil
}

// Moderate sends a text sample through the moderation endpoint using one of
// the user's plaintext API keys.
func (a *App) Moderate(ctx context.Context) error {
	apiKey, err := getSimpleText(a.reader, "API key to use", os.Stdout)
	if err != nil {
		return err
	}
	text, err := GetMultiline(a.reader, "Text to moderate:", os.Stdout)
	if err != nil {
		return err
	}

	result, err := a.keys.Moderate(ctx, apiKey, text)
	if err != nil {
		printlnFn("Moderation request failed:", err.Error())
		return err
	}

	if result.Result == nil {
		printlnFn("No verdict returned.")
		return nil
	}

	if result.Result.Flagged {
		printlnFn(fmt.Sprintf("FLAGGED (%s, confidence %.2f): %s",
			result.Result.Severity, result.Result.Confidence, strings.Join(result.Result.Categories, ", ")))
	} else {
		printlnFn(fmt.Sprintf("Clean (confidence %.2f)", result.Result.Confidence))
	}
	printlnFn("Recommended action:", result.Result.ActionRecommended)
	return nil
}
