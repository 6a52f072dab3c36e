package access

import (
	"fmt"

	"github.com/swagmedia/swagmedia-golang/internal/models"
)

// QuotaTracker counts preview consumptions against a member's limit.
// It owns the "exceeded" transition but does NOT issue the ban itself;
// the caller (AccessGateway) reacts to Exceeded.
type QuotaTracker struct {
	directory MemberDirectory
}

func NewQuotaTracker(directory MemberDirectory) *QuotaTracker {
	return &QuotaTracker{directory: directory}
}

// ConsumeResult reports one quota consumption attempt.
type ConsumeResult struct {
	// Exceeded is true when the counter had already reached the limit
	// BEFORE this call. The counter is not incremented further.
	Exceeded bool
	// Remaining is the number of previews left after a granted
	// consumption. Zero when Exceeded.
	Remaining int
}

// Consume attempts to spend one preview. The check is "used >= limit",
// so exactly 'limit' previews are granted; only the attempt beyond the
// limit is rejected.
func (q *QuotaTracker) Consume(m *models.Member) (ConsumeResult, error) {
	if m.PreviewsUsed >= m.PreviewsLimit {
		return ConsumeResult{Exceeded: true}, nil
	}

	m.PreviewsUsed++
	if err := q.directory.Save(m); err != nil {
		m.PreviewsUsed-- // storage failed, keep the in-memory view consistent
		return ConsumeResult{}, fmt.Errorf("failed to save preview counter: %w", err)
	}

	return ConsumeResult{Remaining: m.PreviewsLimit - m.PreviewsUsed}, nil
}

// Reset is the admin operation that zeroes the preview counter.
// It does NOT lift an existing suspension - that is a separate,
// explicit SuspensionRegistry.Lift call.
func (q *QuotaTracker) Reset(m *models.Member) error {
	m.PreviewsUsed = 0
	if err := q.directory.Save(m); err != nil {
		return fmt.Errorf("failed to reset preview counter: %w", err)
	}
	return nil
}
