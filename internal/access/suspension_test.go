package access

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

func TestSuspensionRegistry_Ban(t *testing.T) {
	member := newTestMember(models.TierFree, true)
	rig := newTestRig(member)

	err := rig.registry.Ban(member, QuotaBanDays, ReasonQuota+": preview limit of 3 exceeded")
	require.NoError(t, err)

	assert.False(t, member.IsApproved, "Ban should clear the approval flag")
	require.NotNil(t, member.SuspendedUntil)
	wantUntil := rig.clock.Now().Add(15 * 24 * time.Hour)
	assert.Equal(t, wantUntil, *member.SuspendedUntil, "expiry should be now + 15 days")

	assert.True(t, rig.registry.IsActive(member), "suspension should be active immediately")

	// Lazy expiry: once the clock passes the expiry the suspension
	// simply stops being active, no sweep involved.
	rig.clock.Advance(15*24*time.Hour + time.Second)
	assert.False(t, rig.registry.IsActive(member), "suspension should lapse once the clock passes the expiry")
}

func TestSuspensionRegistry_Ban_UpsertsAddressBan(t *testing.T) {
	member := newTestMember(models.TierFree, true)
	rig := newTestRig(member)

	require.NoError(t, rig.registry.Ban(member, QuotaBanDays, ReasonQuota+": preview limit of 3 exceeded"))

	ban, err := rig.bans.Get(*member.RegistrationIP)
	require.NoError(t, err)
	require.NotNil(t, ban, "banning a member with a recorded address should create an address ban")
	assert.Equal(t, member.VKLink, ban.VKLink, "the address ban should cross-reference the member's origin link")
	assert.Equal(t, *member.SuspendedUntil, ban.ExpiresAt, "member and address ban should share the expiry")

	active, err := rig.registry.IsAddressActive(*member.RegistrationIP)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestSuspensionRegistry_Ban_OverwritesExistingAddressBan(t *testing.T) {
	member := newTestMember(models.TierFree, true)
	rig := newTestRig(member)

	require.NoError(t, rig.registry.Ban(member, QuotaBanDays, ReasonQuota+": first"))
	firstBan, err := rig.bans.Get(*member.RegistrationIP)
	require.NoError(t, err)
	require.NotNil(t, firstBan)

	rig.clock.Advance(time.Hour)
	require.NoError(t, rig.registry.Ban(member, WarningBanDays, ReasonWarning+": second"))

	assert.Equal(t, 1, rig.bans.count(), "two bans on the same address must leave exactly one record")

	secondBan, err := rig.bans.Get(*member.RegistrationIP)
	require.NoError(t, err)
	assert.Equal(t, ReasonWarning+": second", secondBan.Reason, "the later ban should overwrite the reason")
	assert.True(t, secondBan.ExpiresAt.After(firstBan.ExpiresAt), "the later ban should overwrite the expiry")
}

func TestSuspensionRegistry_Ban_NoAddressRecorded(t *testing.T) {
	member := newTestMember(models.TierFree, true)
	member.RegistrationIP = nil
	rig := newTestRig(member)

	require.NoError(t, rig.registry.Ban(member, QuotaBanDays, ReasonQuota+": no address"))
	assert.Equal(t, 0, rig.bans.count(), "no address ban without a recorded registration address")
	assert.True(t, rig.registry.IsActive(member), "the member suspension itself still applies")
}

func TestSuspensionRegistry_Ban_RejectsOutOfRangeDuration(t *testing.T) {
	for _, days := range []int{0, -1, 366} {
		t.Run(fmt.Sprintf("days=%d", days), func(t *testing.T) {
			member := newTestMember(models.TierFree, true)
			rig := newTestRig(member)

			err := rig.registry.Ban(member, days, ReasonEmergency+": out of range")
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)

			// No partial application: the member is untouched.
			assert.Nil(t, member.SuspendedUntil)
			assert.True(t, member.IsApproved)
			assert.Equal(t, 0, rig.bans.count())
		})
	}
}

func TestSuspensionRegistry_Ban_RejectsEmptyReason(t *testing.T) {
	member := newTestMember(models.TierFree, true)
	rig := newTestRig(member)

	err := rig.registry.Ban(member, QuotaBanDays, "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, member.SuspendedUntil)
}

func TestSuspensionRegistry_Lift_LeavesAddressBan(t *testing.T) {
	member := newTestMember(models.TierFree, true)
	rig := newTestRig(member)

	require.NoError(t, rig.registry.Ban(member, EmergencyMaxDays, ReasonEmergency+": fraud"))
	require.NoError(t, rig.registry.Lift(member))

	assert.Nil(t, member.SuspendedUntil, "Lift should clear the suspension expiry")
	assert.True(t, member.IsApproved, "Lift should restore the approval flag")
	assert.False(t, rig.registry.IsActive(member))

	// The address ban is an independent record; lifting the member
	// does not touch it.
	active, err := rig.registry.IsAddressActive(*member.RegistrationIP)
	require.NoError(t, err)
	assert.True(t, active, "the address ban should survive a member lift")

	require.NoError(t, rig.registry.LiftAddress(*member.RegistrationIP))
	active, err = rig.registry.IsAddressActive(*member.RegistrationIP)
	require.NoError(t, err)
	assert.False(t, active, "LiftAddress should remove the address ban")
}

func TestSuspensionRegistry_IsAddressActive_UnknownAddress(t *testing.T) {
	rig := newTestRig()

	active, err := rig.registry.IsAddressActive("198.51.100.77")
	require.NoError(t, err)
	assert.False(t, active)
}
