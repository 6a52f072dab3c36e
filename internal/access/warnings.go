package access

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// WarningThreshold is the warning count at which a member is
// automatically suspended for WarningBanDays.
const WarningThreshold = 3

// WarningLedger counts administrative strikes. Reaching the threshold
// escalates straight to the SuspensionRegistry, bypassing the gateway.
type WarningLedger struct {
	directory MemberDirectory
	registry  *SuspensionRegistry
	log       zerolog.Logger
}

func NewWarningLedger(directory MemberDirectory, registry *SuspensionRegistry, log zerolog.Logger) *WarningLedger {
	return &WarningLedger{
		directory: directory,
		registry:  registry,
		log:       log,
	}
}

// WarningResult reports one issued warning.
type WarningResult struct {
	Count       int
	AutoBlocked bool
}

// Add increments the member's warning count. There is no dedup:
// issuing the same reason twice counts as two warnings. When the new
// count reaches WarningThreshold the member is banned for
// WarningBanDays and AutoBlocked is returned true.
func (l *WarningLedger) Add(m *models.Member, reason string) (WarningResult, error) {
	if reason == "" {
		return WarningResult{}, &ValidationError{Message: "warning reason must not be empty"}
	}

	m.Warnings++
	if err := l.directory.Save(m); err != nil {
		m.Warnings--
		return WarningResult{}, fmt.Errorf("failed to save warning count: %w", err)
	}

	l.log.Info().
		Str("member", m.ID).
		Int("count", m.Warnings).
		Str("reason", reason).
		Msg("warning issued")

	if m.Warnings >= WarningThreshold {
		banReason := fmt.Sprintf("%s: threshold of %d warnings reached", ReasonWarning, WarningThreshold)
		if err := l.registry.Ban(m, WarningBanDays, banReason); err != nil {
			return WarningResult{}, err
		}
		return WarningResult{Count: m.Warnings, AutoBlocked: true}, nil
	}

	return WarningResult{Count: m.Warnings, AutoBlocked: false}, nil
}
