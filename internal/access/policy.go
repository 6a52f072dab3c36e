package access

import "github.com/swagmedia/swagmedia-golang/internal/models"

// Decision is the outcome of a policy check.
type Decision int

const (
	// Denied - no access at all.
	Denied Decision = iota
	// Preview - redacted view, counted against the viewer's quota.
	Preview
	// Full - unredacted contact data.
	Full
)

func (d Decision) String() string {
	switch d {
	case Full:
		return "full"
	case Preview:
		return "preview"
	default:
		return "denied"
	}
}

// Policy is the pure access decision function. It has no side effects
// and only needs a clock for the viewer-suspension check.
type Policy struct {
	clock Clock
}

func NewPolicy(clock Clock) *Policy {
	return &Policy{clock: clock}
}

// Decide applies the access rules in priority order:
//
//  1. Suspended viewer -> Denied, regardless of target.
//  2. Unapproved target -> Denied (target is not live).
//  3. Free target -> Full (free content is unrestricted).
//  4. Paid viewer -> Full (paid viewers see everything).
//  5. Otherwise (free viewer, paid target) -> Preview.
func (p *Policy) Decide(viewer, target *models.Member) Decision {
	if viewer.Suspended(p.clock.Now()) {
		return Denied
	}
	if !target.IsApproved {
		return Denied
	}
	if target.MediaTier == models.TierFree {
		return Full
	}
	if viewer.MediaTier == models.TierPaid {
		return Full
	}
	return Preview
}
