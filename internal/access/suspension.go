package access

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// Ban durations. Quota overflow and warning escalation use fixed
// values; emergency actions take an admin-supplied duration bounded
// to [EmergencyMinDays, EmergencyMaxDays].
const (
	QuotaBanDays     = 15
	WarningBanDays   = 30
	EmergencyMinDays = 1
	EmergencyMaxDays = 365
)

// Reason prefixes identify what triggered a ban in the free-text
// reason of the member suspension and its AddressBan record.
const (
	ReasonQuota     = "quota"
	ReasonWarning   = "warning"
	ReasonEmergency = "emergency"
)

// SuspensionRegistry owns member suspensions and address bans.
// Expiry is evaluated lazily at IsActive/IsAddressActive call time;
// nothing sweeps expired records in the background.
type SuspensionRegistry struct {
	directory MemberDirectory
	bans      AddressBanStore
	clock     Clock
	log       zerolog.Logger
}

func NewSuspensionRegistry(directory MemberDirectory, bans AddressBanStore, clock Clock, log zerolog.Logger) *SuspensionRegistry {
	return &SuspensionRegistry{
		directory: directory,
		bans:      bans,
		clock:     clock,
		log:       log,
	}
}

// Ban suspends the member for the given number of days and clears the
// approval flag. If the member has a recorded registration address,
// an AddressBan with the same expiry and reason is upserted for it -
// overwriting any existing ban on that address, never duplicating.
//
// Input is validated before any state is touched: days must be within
// [EmergencyMinDays, EmergencyMaxDays] and reason must be non-empty.
func (r *SuspensionRegistry) Ban(m *models.Member, days int, reason string) error {
	if days < EmergencyMinDays || days > EmergencyMaxDays {
		return &ValidationError{Message: fmt.Sprintf("ban duration must be between %d and %d days, got %d", EmergencyMinDays, EmergencyMaxDays, days)}
	}
	if reason == "" {
		return &ValidationError{Message: "ban reason must not be empty"}
	}

	until := r.clock.Now().Add(time.Duration(days) * 24 * time.Hour)

	prevUntil, prevApproved := m.SuspendedUntil, m.IsApproved
	m.SuspendedUntil = &until
	m.IsApproved = false
	if err := r.directory.Save(m); err != nil {
		m.SuspendedUntil, m.IsApproved = prevUntil, prevApproved
		return fmt.Errorf("failed to save member suspension: %w", err)
	}

	if m.RegistrationIP != nil {
		ban := models.NewAddressBan(*m.RegistrationIP, m.VKLink, until, reason)
		if err := r.bans.Upsert(ban); err != nil {
			return fmt.Errorf("failed to upsert address ban: %w", err)
		}
	}

	r.log.Info().
		Str("member", m.ID).
		Int("days", days).
		Str("reason", reason).
		Time("until", until).
		Msg("member suspended")

	return nil
}

// IsActive reports whether the member is currently suspended.
func (r *SuspensionRegistry) IsActive(m *models.Member) bool {
	return m.Suspended(r.clock.Now())
}

// IsAddressActive reports whether an address has a ban whose expiry is
// still in the future.
func (r *SuspensionRegistry) IsAddressActive(address string) (bool, error) {
	ban, err := r.bans.Get(address)
	if err != nil {
		return false, fmt.Errorf("failed to look up address ban: %w", err)
	}
	if ban == nil {
		return false, nil
	}
	return ban.Active(r.clock.Now()), nil
}

// Lift clears the member's suspension and restores the approval flag.
// It deliberately leaves any AddressBan on the member's registration
// address in place: address bans are lifted independently via
// LiftAddress, since an address can outlive the member that earned
// the ban.
func (r *SuspensionRegistry) Lift(m *models.Member) error {
	m.SuspendedUntil = nil
	m.IsApproved = true
	if err := r.directory.Save(m); err != nil {
		return fmt.Errorf("failed to lift member suspension: %w", err)
	}

	r.log.Info().Str("member", m.ID).Msg("member suspension lifted")
	return nil
}

// LiftAddress removes the ban record for an address, if any.
func (r *SuspensionRegistry) LiftAddress(address string) error {
	if err := r.bans.Delete(address); err != nil {
		return fmt.Errorf("failed to lift address ban: %w", err)
	}

	r.log.Info().Str("address", address).Msg("address ban lifted")
	return nil
}
