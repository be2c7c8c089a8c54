package main

import (
	"fmt"
	"sort"
	"time"
)

// CounsellorStats accumulates per-counsellor attempt counts for the run.
type CounsellorStats struct {
	Attempted int
	Sent      int
	Failed    int
}

// CampaignAnalytics collects counters during a run and produces the final
// report. Outcome buckets are exclusive: a message counts as read OR
// delivered OR sent, never more than one.
type CampaignAnalytics struct {
	startedAt    time.Time
	attempted    int
	sent         int
	delivered    int
	read         int
	failed       int
	duplicates   int
	byCategory   map[ErrorCategory]int
	byCounsellor map[string]*CounsellorStats
}

func NewCampaignAnalytics() *CampaignAnalytics {
	return &CampaignAnalytics{
		byCategory:   make(map[ErrorCategory]int),
		byCounsellor: make(map[string]*CounsellorStats),
	}
}

func (a *CampaignAnalytics) Start(now time.Time) {
	a.startedAt = now
}

func (a *CampaignAnalytics) RecordDuplicate() {
	a.duplicates++
}

func (a *CampaignAnalytics) Track(counsellorName string, outcome Outcome) {
	a.attempted++

	stats := a.byCounsellor[counsellorName]
	if stats == nil {
		stats = &CounsellorStats{}
		a.byCounsellor[counsellorName] = stats
	}
	stats.Attempted++

	switch outcome.Status {
	case StatusRead:
		a.read++
		stats.Sent++
	case StatusDelivered:
		a.delivered++
		stats.Sent++
	case StatusSent:
		a.sent++
		stats.Sent++
	default:
		a.failed++
		stats.Failed++
		category := outcome.Category
		if category == "" {
			category = CategoryUnknownError
		}
		a.byCategory[category]++
	}
}

// CampaignReport is the summary produced at the end of a run, successful or
// aborted.
type CampaignReport struct {
	Reason           string
	Attempted        int
	Sent             int
	Delivered        int
	Read             int
	Failed           int
	SkippedDuplicate int
	FailedByCategory map[ErrorCategory]int
	ByCounsellor     map[string]CounsellorStats
	StartedAt        time.Time
	FinishedAt       time.Time
}

func (a *CampaignAnalytics) Finalize(reason string, now time.Time) *CampaignReport {
	report := &CampaignReport{
		Reason:           reason,
		Attempted:        a.attempted,
		Sent:             a.sent,
		Delivered:        a.delivered,
		Read:             a.read,
		Failed:           a.failed,
		SkippedDuplicate: a.duplicates,
		FailedByCategory: make(map[ErrorCategory]int, len(a.byCategory)),
		ByCounsellor:     make(map[string]CounsellorStats, len(a.byCounsellor)),
		StartedAt:        a.startedAt,
		FinishedAt:       now,
	}
	for category, count := range a.byCategory {
		report.FailedByCategory[category] = count
	}
	for name, stats := range a.byCounsellor {
		report.ByCounsellor[name] = *stats
	}
	return report
}

func (r *CampaignReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SuccessRate is the share of attempts that reached at least sent status.
func (r *CampaignReport) SuccessRate() float64 {
	if r.Attempted == 0 {
		return 0
	}
	return float64(r.Attempted-r.Failed) / float64(r.Attempted) * 100
}

func (r *CampaignReport) LogSummary() {
	Log("info", "========================================")
	Log("info", "CAMPAIGN SUMMARY")
	Log("info", "========================================")
	Logf("info", "Result: %s", r.Reason)
	Logf("info", "Leads attempted: %d", r.Attempted)
	Logf("info", "Sent: %d | Delivered: %d | Read: %d | Failed: %d", r.Sent, r.Delivered, r.Read, r.Failed)
	Logf("info", "Skipped (already contacted): %d", r.SkippedDuplicate)
	if r.Attempted > 0 {
		Logf("info", "Success rate: %.1f%%", r.SuccessRate())
	}

	if len(r.FailedByCategory) > 0 {
		Log("info", "Failures by category:")
		categories := make([]string, 0, len(r.FailedByCategory))
		for category := range r.FailedByCategory {
			categories = append(categories, string(category))
		}
		sort.Strings(categories)
		for _, category := range categories {
			Logf("info", "  %s: %d", category, r.FailedByCategory[ErrorCategory(category)])
		}
	}

	if len(r.ByCounsellor) > 0 {
		Log("info", "Per counsellor:")
		names := make([]string, 0, len(r.ByCounsellor))
		for name := range r.ByCounsellor {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			stats := r.ByCounsellor[name]
			Logf("info", "  %s: %d attempted, %d sent, %d failed", name, stats.Attempted, stats.Sent, stats.Failed)
		}
	}

	Logf("info", "Duration: %s", r.Duration().Round(time.Second))
	Log("info", "========================================")
}

func (r *CampaignReport) String() string {
	return fmt.Sprintf("%s: %d attempted, %d failed, %d skipped", r.Reason, r.Attempted, r.Failed, r.SkippedDuplicate)
}
