package main

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func newTestAllocator(t *testing.T, roster []Counsellor, day string, usage map[string]int) (*CounsellorAllocator, *QuotaLedger) {
	t.Helper()
	store := newMemQuotaStore()
	if usage != nil {
		store.data[day] = usage
	}
	quota, err := NewQuotaLedger(store, 7)
	if err != nil {
		t.Fatalf("NewQuotaLedger failed: %v", err)
	}
	return NewCounsellorAllocator(roster, quota, rand.New(rand.NewSource(42))), quota
}

func TestAllocatorPickSkipsExhausted(t *testing.T) {
	day := dayKey(time.Now())
	roster := testRoster()
	allocator, _ := newTestAllocator(t, roster, day, map[string]int{"Karan": 5})

	for i := 0; i < 20; i++ {
		picked, err := allocator.Pick(day)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		if picked.Name != "Priya" {
			t.Fatalf("Pick returned exhausted counsellor %s", picked.Name)
		}
	}
}

func TestAllocatorPickAllExhausted(t *testing.T) {
	day := dayKey(time.Now())
	roster := testRoster()
	allocator, _ := newTestAllocator(t, roster, day, map[string]int{"Karan": 5, "Priya": 5})

	_, err := allocator.Pick(day)
	if !errors.Is(err, ErrNoCounsellorAvailable) {
		t.Errorf("Pick error = %v, want ErrNoCounsellorAvailable", err)
	}
}

func TestAllocatorPickSpreadsAcrossRoster(t *testing.T) {
	day := dayKey(time.Now())
	roster := testRoster()
	allocator, _ := newTestAllocator(t, roster, day, nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		picked, err := allocator.Pick(day)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		seen[picked.Name] = true
	}
	if len(seen) != 2 {
		t.Errorf("50 picks hit %d counsellors, want both", len(seen))
	}
}

func TestAllocatorDrainsQuotaAcrossDay(t *testing.T) {
	roster := []Counsellor{
		{Name: "Karan", Number: "+919773432629", DailyLimit: 2},
		{Name: "Priya", Number: "+919773432630", DailyLimit: 1},
	}
	day := dayKey(time.Now())
	allocator, quota := newTestAllocator(t, roster, day, nil)

	for i := 0; i < 3; i++ {
		picked, err := allocator.Pick(day)
		if err != nil {
			t.Fatalf("Pick %d failed: %v", i+1, err)
		}
		if err := quota.RecordSend(picked, day); err != nil {
			t.Fatalf("RecordSend %d failed: %v", i+1, err)
		}
	}

	if _, err := allocator.Pick(day); !errors.Is(err, ErrNoCounsellorAvailable) {
		t.Errorf("Pick after draining quotas = %v, want ErrNoCounsellorAvailable", err)
	}
}
