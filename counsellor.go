package main

import (
	"errors"
	"math/rand"
)

// Counsellor is a human agent whose phone number is used as the sending
// identity. The roster is statically configured and read-only during a run.
type Counsellor struct {
	Name       string `yaml:"name"`
	Number     string `yaml:"number"`
	DailyLimit int    `yaml:"daily_limit"`
}

var ErrNoCounsellorAvailable = errors.New("no counsellor with remaining quota")

// CounsellorAllocator picks a counsellor uniformly at random among those with
// remaining quota. Random selection (rather than declaration order) keeps the
// first-listed counsellor from soaking up every send as quotas deplete. The
// randomness source is injected so tests can seed it.
type CounsellorAllocator struct {
	roster []Counsellor
	quota  *QuotaLedger
	rng    *rand.Rand
}

func NewCounsellorAllocator(roster []Counsellor, quota *QuotaLedger, rng *rand.Rand) *CounsellorAllocator {
	return &CounsellorAllocator{
		roster: roster,
		quota:  quota,
		rng:    rng,
	}
}

func (a *CounsellorAllocator) Pick(day string) (Counsellor, error) {
	available := make([]Counsellor, 0, len(a.roster))
	for _, counsellor := range a.roster {
		if a.quota.Remaining(counsellor, day) > 0 {
			available = append(available, counsellor)
		}
	}

	if len(available) == 0 {
		return Counsellor{}, ErrNoCounsellorAvailable
	}

	return available[a.rng.Intn(len(available))], nil
}
