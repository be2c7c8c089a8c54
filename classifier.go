package main

import (
	"strings"
)

// ErrorCategory buckets a raw failure signal from the provider or the
// browser surface. Classification is a deterministic lookup over the signal
// text; nothing is inferred from send history.
type ErrorCategory string

const (
	CategoryInvalidNumber      ErrorCategory = "invalid_number"
	CategoryNotOnWhatsApp      ErrorCategory = "not_on_whatsapp"
	CategoryOptOut             ErrorCategory = "opt_out"
	CategoryTemplateMismatch   ErrorCategory = "template_mismatch"
	CategoryQuotaExceeded      ErrorCategory = "quota_exceeded"
	CategoryAccountIssue       ErrorCategory = "account_issue"
	CategoryQualityRestriction ErrorCategory = "quality_restriction"
	CategoryNetworkError       ErrorCategory = "network_error"
	CategoryUnknownError       ErrorCategory = "unknown_error"
)

// Ordered: the first rule whose keyword matches wins. Quality restrictions
// come first because Meta phrases them with words ("limit", "account") that
// also appear in softer failures.
var classifierRules = []struct {
	category ErrorCategory
	keywords []string
}{
	{CategoryQualityRestriction, []string{"meta has restricted", "higher quality messaging", "retry again in a few days"}},
	{CategoryQuotaExceeded, []string{"credits", "quota", "limit"}},
	{CategoryTemplateMismatch, []string{"template", "approved", "rejected"}},
	{CategoryAccountIssue, []string{"account", "suspended", "disabled"}},
	{CategoryInvalidNumber, []string{"invalid", "number", "format"}},
	{CategoryNotOnWhatsApp, []string{"whatsapp", "user not found"}},
	{CategoryOptOut, []string{"opt", "blocked", "unsubscribed"}},
	{CategoryNetworkError, []string{"timeout", "timed out", "connection", "network", "unreachable"}},
}

func ClassifyError(signal string) ErrorCategory {
	lower := strings.ToLower(signal)
	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryUnknownError
}

// Abortive reports whether the category signals a failure that will hit every
// remaining lead too, so the campaign must stop instead of burning through
// the batch.
func (c ErrorCategory) Abortive() bool {
	switch c {
	case CategoryTemplateMismatch, CategoryQuotaExceeded, CategoryAccountIssue, CategoryQualityRestriction:
		return true
	}
	return false
}
