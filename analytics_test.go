package main

import (
	"testing"
	"time"
)

func TestAnalyticsBucketsAreExclusive(t *testing.T) {
	analytics := NewCampaignAnalytics()
	analytics.Track("Karan", Outcome{Status: StatusSent})
	analytics.Track("Karan", Outcome{Status: StatusDelivered})
	analytics.Track("Priya", Outcome{Status: StatusRead})
	analytics.Track("Priya", failedOutcome(CategoryNetworkError, "timeout"))

	report := analytics.Finalize("completed", time.Now())

	if report.Attempted != 4 {
		t.Errorf("Attempted = %d, want 4", report.Attempted)
	}
	if report.Sent != 1 || report.Delivered != 1 || report.Read != 1 || report.Failed != 1 {
		t.Errorf("buckets = sent %d delivered %d read %d failed %d, want 1 each",
			report.Sent, report.Delivered, report.Read, report.Failed)
	}
	if report.Sent+report.Delivered+report.Read+report.Failed != report.Attempted {
		t.Error("buckets do not partition attempts")
	}
}

func TestAnalyticsFailureCategories(t *testing.T) {
	analytics := NewCampaignAnalytics()
	analytics.Track("Karan", failedOutcome(CategoryNetworkError, "timeout"))
	analytics.Track("Karan", failedOutcome(CategoryNetworkError, "refused"))
	analytics.Track("Karan", failedOutcome(CategoryOptOut, "blocked"))
	analytics.Track("Karan", Outcome{Status: StatusFailed})

	report := analytics.Finalize("completed", time.Now())

	if report.FailedByCategory[CategoryNetworkError] != 2 {
		t.Errorf("network_error count = %d, want 2", report.FailedByCategory[CategoryNetworkError])
	}
	if report.FailedByCategory[CategoryOptOut] != 1 {
		t.Errorf("opt_out count = %d, want 1", report.FailedByCategory[CategoryOptOut])
	}
	if report.FailedByCategory[CategoryUnknownError] != 1 {
		t.Errorf("uncategorized failure count = %d, want 1", report.FailedByCategory[CategoryUnknownError])
	}
}

func TestAnalyticsPerCounsellor(t *testing.T) {
	analytics := NewCampaignAnalytics()
	analytics.Track("Karan", Outcome{Status: StatusSent})
	analytics.Track("Karan", failedOutcome(CategoryNetworkError, "timeout"))
	analytics.Track("Priya", Outcome{Status: StatusRead})

	report := analytics.Finalize("completed", time.Now())

	karan := report.ByCounsellor["Karan"]
	if karan.Attempted != 2 || karan.Sent != 1 || karan.Failed != 1 {
		t.Errorf("Karan stats = %+v", karan)
	}
	priya := report.ByCounsellor["Priya"]
	if priya.Attempted != 1 || priya.Sent != 1 {
		t.Errorf("Priya stats = %+v", priya)
	}
}

func TestAnalyticsDurationAndRate(t *testing.T) {
	analytics := NewCampaignAnalytics()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	analytics.Start(start)
	analytics.Track("Karan", Outcome{Status: StatusSent})
	analytics.Track("Karan", Outcome{Status: StatusSent})
	analytics.Track("Karan", Outcome{Status: StatusSent})
	analytics.Track("Karan", failedOutcome(CategoryOptOut, "blocked"))
	analytics.RecordDuplicate()

	report := analytics.Finalize("completed", start.Add(90*time.Second))

	if report.Duration() != 90*time.Second {
		t.Errorf("Duration = %s, want 90s", report.Duration())
	}
	if got := report.SuccessRate(); got != 75.0 {
		t.Errorf("SuccessRate = %.1f, want 75.0", got)
	}
	if report.SkippedDuplicate != 1 {
		t.Errorf("SkippedDuplicate = %d, want 1", report.SkippedDuplicate)
	}
}

func TestAnalyticsEmptyRun(t *testing.T) {
	analytics := NewCampaignAnalytics()
	report := analytics.Finalize("no_leads", time.Now())
	if report.Attempted != 0 {
		t.Errorf("Attempted = %d, want 0", report.Attempted)
	}
	if got := report.SuccessRate(); got != 0 {
		t.Errorf("SuccessRate on empty run = %.1f, want 0", got)
	}
}
