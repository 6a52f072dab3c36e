package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// TestPolicy_Decide covers the full truth table: viewer tier x target
// tier x viewer suspended.
func TestPolicy_Decide(t *testing.T) {
	tests := []struct {
		name       string
		viewerTier int
		targetTier int
		suspended  bool
		want       Decision
	}{
		{"free viewer, free target", models.TierFree, models.TierFree, false, Full},
		{"free viewer, paid target", models.TierFree, models.TierPaid, false, Preview},
		{"paid viewer, free target", models.TierPaid, models.TierFree, false, Full},
		{"paid viewer, paid target", models.TierPaid, models.TierPaid, false, Full},
		{"suspended free viewer, free target", models.TierFree, models.TierFree, true, Denied},
		{"suspended free viewer, paid target", models.TierFree, models.TierPaid, true, Denied},
		{"suspended paid viewer, free target", models.TierPaid, models.TierFree, true, Denied},
		{"suspended paid viewer, paid target", models.TierPaid, models.TierPaid, true, Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			viewer := newTestMember(tt.viewerTier, true)
			if tt.suspended {
				until := clock.Now().Add(24 * time.Hour)
				viewer.SuspendedUntil = &until
			}
			target := newTestMember(tt.targetTier, true)

			policy := NewPolicy(clock)
			assert.Equal(t, tt.want, policy.Decide(viewer, target), "Decide() should match the access table")
		})
	}
}

func TestPolicy_Decide_UnapprovedTarget(t *testing.T) {
	clock := newFakeClock()
	policy := NewPolicy(clock)

	viewer := newTestMember(models.TierPaid, true)
	target := newTestMember(models.TierFree, false)

	assert.Equal(t, Denied, policy.Decide(viewer, target), "unapproved target should be denied even for paid viewers")
}

func TestPolicy_Decide_ExpiredSuspensionIsIgnored(t *testing.T) {
	clock := newFakeClock()
	policy := NewPolicy(clock)

	viewer := newTestMember(models.TierPaid, true)
	until := clock.Now().Add(-time.Minute)
	viewer.SuspendedUntil = &until
	target := newTestMember(models.TierPaid, true)

	assert.Equal(t, Full, policy.Decide(viewer, target), "a suspension in the past should not deny access")
}
