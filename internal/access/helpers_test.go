package access

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// fakeClock lets tests advance time past suspension expiries.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memDirectory is an in-memory MemberDirectory. Get hands out copies
// so tests exercise the same read-modify-write shape as the SQL store.
type memDirectory struct {
	mu      sync.Mutex
	members map[string]*models.Member
}

func newMemDirectory(members ...*models.Member) *memDirectory {
	d := &memDirectory{members: make(map[string]*models.Member)}
	for _, m := range members {
		d.members[m.ID] = copyMember(m)
	}
	return d
}

func copyMember(m *models.Member) *models.Member {
	clone := *m
	if m.SuspendedUntil != nil {
		until := *m.SuspendedUntil
		clone.SuspendedUntil = &until
	}
	if m.RegistrationIP != nil {
		ip := *m.RegistrationIP
		clone.RegistrationIP = &ip
	}
	return &clone
}

func (d *memDirectory) Get(id string) (*models.Member, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.members[id]
	if !ok {
		return nil, nil
	}
	return copyMember(m), nil
}

func (d *memDirectory) Save(m *models.Member) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.members[m.ID] = copyMember(m)
	return nil
}

func (d *memDirectory) FindByOrigin(vkLink string) (*models.Member, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, m := range d.members {
		if m.VKLink == vkLink {
			return copyMember(m), nil
		}
	}
	return nil, nil
}

// memBanStore is an in-memory AddressBanStore keyed by address.
type memBanStore struct {
	mu   sync.Mutex
	bans map[string]*models.AddressBan
}

func newMemBanStore() *memBanStore {
	return &memBanStore{bans: make(map[string]*models.AddressBan)}
}

func (s *memBanStore) Get(address string) (*models.AddressBan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ban, ok := s.bans[address]
	if !ok {
		return nil, nil
	}
	clone := *ban
	return &clone, nil
}

func (s *memBanStore) Upsert(ban *models.AddressBan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *ban
	s.bans[ban.IPAddress] = &clone
	return nil
}

func (s *memBanStore) Delete(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bans, address)
	return nil
}

func (s *memBanStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bans)
}

// memEventLog is an in-memory append-only AccessEventLog.
type memEventLog struct {
	mu     sync.Mutex
	events []*models.AccessEvent
}

func (l *memEventLog) Append(ev *models.AccessEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	return nil
}

func (l *memEventLog) all() []*models.AccessEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*models.AccessEvent(nil), l.events...)
}

func newTestMember(tier int, approved bool) *models.Member {
	ip := "203.0.113.10"
	return &models.Member{
		ID:             uuid.NewString(),
		Login:          "tester",
		Nickname:       "StreamerOne",
		VKLink:         "https://vk.com/streamerone",
		ChannelLink:    "https://t.me/streamerone",
		IsApproved:     approved,
		MediaTier:      tier,
		PreviewsLimit:  models.DefaultPreviewLimit,
		RegistrationIP: &ip,
		CreatedAt:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

// testRig wires a full gating core over in-memory storage.
type testRig struct {
	clock     *fakeClock
	directory *memDirectory
	bans      *memBanStore
	events    *memEventLog
	policy    *Policy
	quota     *QuotaTracker
	registry  *SuspensionRegistry
	ledger    *WarningLedger
	gateway   *Gateway
}

func newTestRig(members ...*models.Member) *testRig {
	clock := newFakeClock()
	directory := newMemDirectory(members...)
	bans := newMemBanStore()
	events := &memEventLog{}
	policy := NewPolicy(clock)
	quota := NewQuotaTracker(directory)
	registry := NewSuspensionRegistry(directory, bans, clock, zerolog.Nop())
	return &testRig{
		clock:     clock,
		directory: directory,
		bans:      bans,
		events:    events,
		policy:    policy,
		quota:     quota,
		registry:  registry,
		ledger:    NewWarningLedger(directory, registry, zerolog.Nop()),
		gateway:   NewGateway(directory, policy, quota, registry, events, clock, zerolog.Nop()),
	}
}
