package access

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// RedactedPlaceholder replaces contact links in preview payloads.
const RedactedPlaceholder = "Available after purchasing paid access"

// ContactCard is the contact/channel data a viewer gets back,
// either in full or redacted.
type ContactCard struct {
	Nickname    string `json:"nickname"`
	VKLink      string `json:"vkLink"`
	ChannelLink string `json:"channelLink"`
}

// Grant is the successful outcome of an access request.
type Grant struct {
	AccessType string      // models.AccessFull or models.AccessPreview
	Card       ContactCard
	Remaining  int // previews remaining; only meaningful for previews
}

// Gateway orchestrates one access request: policy decision, quota
// consumption on previews, and the quota-overflow ban.
type Gateway struct {
	directory MemberDirectory
	policy    *Policy
	quota     *QuotaTracker
	registry  *SuspensionRegistry
	events    AccessEventLog
	clock     Clock
	locks     memberLocks
	log       zerolog.Logger
}

func NewGateway(directory MemberDirectory, policy *Policy, quota *QuotaTracker, registry *SuspensionRegistry, events AccessEventLog, clock Clock, log zerolog.Logger) *Gateway {
	return &Gateway{
		directory: directory,
		policy:    policy,
		quota:     quota,
		registry:  registry,
		events:    events,
		clock:     clock,
		locks:     memberLocks{held: make(map[string]*sync.Mutex)},
		log:       log,
	}
}

// RequestAccess decides whether viewerID may see targetID's contact
// data and returns either a full card, a redacted preview card with
// the remaining preview count, or an error from the taxonomy in
// errors.go.
//
// The consume-or-ban step runs under a per-viewer lock so two
// concurrent preview requests cannot both read used < limit and
// together grant limit+1 previews.
func (g *Gateway) RequestAccess(viewerID, targetID string) (*Grant, error) {
	viewer, err := g.directory.Get(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer: %w", err)
	}
	if viewer == nil {
		return nil, ErrNotFound
	}

	target, err := g.directory.Get(targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target: %w", err)
	}
	if target == nil || !target.IsApproved {
		return nil, ErrNotFound
	}

	if g.registry.IsActive(viewer) {
		return nil, &ForbiddenError{Reason: "account suspended", Until: viewer.SuspendedUntil}
	}

	switch g.policy.Decide(viewer, target) {
	case Full:
		ev := models.NewAccessEvent(viewer.ID, target.ID, models.AccessFull, g.clock.Now())
		if err := g.events.Append(ev); err != nil {
			return nil, fmt.Errorf("failed to record access event: %w", err)
		}
		return &Grant{
			AccessType: models.AccessFull,
			Card: ContactCard{
				Nickname:    target.Nickname,
				VKLink:      target.VKLink,
				ChannelLink: target.ChannelLink,
			},
		}, nil

	case Preview:
		return g.consumePreview(viewer, target)

	default:
		return nil, &ForbiddenError{Reason: "access not permitted"}
	}
}

// consumePreview serializes quota consumption per viewer. The viewer
// is re-read under the lock so the counter check always sees the
// latest persisted value.
func (g *Gateway) consumePreview(viewer, target *models.Member) (*Grant, error) {
	unlock := g.locks.lock(viewer.ID)
	defer unlock()

	fresh, err := g.directory.Get(viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload viewer: %w", err)
	}
	if fresh == nil {
		// Viewer disappeared between reads (external removal).
		return nil, ErrNotFound
	}

	res, err := g.quota.Consume(fresh)
	if err != nil {
		return nil, err
	}

	if res.Exceeded {
		reason := fmt.Sprintf("%s: preview limit of %d exceeded", ReasonQuota, fresh.PreviewsLimit)
		if err := g.registry.Ban(fresh, QuotaBanDays, reason); err != nil {
			return nil, err
		}
		g.log.Warn().
			Str("viewer", fresh.ID).
			Str("target", target.ID).
			Msg("preview quota exceeded, viewer suspended")
		return nil, &ForbiddenError{
			Reason: fmt.Sprintf("preview limit exceeded, account blocked for %d days", QuotaBanDays),
			Until:  fresh.SuspendedUntil,
		}
	}

	// No event is recorded for a rejected attempt, only for grants.
	ev := models.NewAccessEvent(fresh.ID, target.ID, models.AccessPreview, g.clock.Now())
	if err := g.events.Append(ev); err != nil {
		return nil, fmt.Errorf("failed to record access event: %w", err)
	}

	return &Grant{
		AccessType: models.AccessPreview,
		Card:       redactCard(target),
		Remaining:  res.Remaining,
	}, nil
}

// redactCard truncates the nickname and hides the contact links.
func redactCard(target *models.Member) ContactCard {
	nickname := []rune(target.Nickname)
	if len(nickname) > 5 {
		nickname = nickname[:5]
	}
	return ContactCard{
		Nickname:    string(nickname) + "***",
		VKLink:      RedactedPlaceholder,
		ChannelLink: RedactedPlaceholder,
	}
}

// memberLocks hands out one mutex per member id.
type memberLocks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func (l *memberLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.held[id]
	if !ok {
		m = &sync.Mutex{}
		l.held[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
