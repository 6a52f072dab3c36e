package access

import "github.com/swagmedia/swagmedia-golang/internal/models"

// Collaborator interfaces. The gating core never touches SQL or HTTP
// itself; storage is injected through these, with the MySQL
// implementations living in internal/store.

// MemberDirectory is the external member storage.
// Get and FindByOrigin return (nil, nil) when no member matches, so
// callers can tell "absent" apart from a storage failure.
type MemberDirectory interface {
	Get(id string) (*models.Member, error)
	Save(m *models.Member) error

	// FindByOrigin looks a member up by origin-identifying link.
	// Used at enrollment to check whether a registering identity
	// already belongs to a suspended member.
	FindByOrigin(vkLink string) (*models.Member, error)
}

// AddressBanStore persists network-origin bans. Upsert must be atomic
// per address: a concurrent second ban on the same address overwrites
// rather than duplicates.
type AddressBanStore interface {
	Get(address string) (*models.AddressBan, error)
	Upsert(ban *models.AddressBan) error
	Delete(address string) error
}

// AccessEventLog is the append-only audit sink for access decisions.
// The core never reads events back.
type AccessEventLog interface {
	Append(ev *models.AccessEvent) error
}
