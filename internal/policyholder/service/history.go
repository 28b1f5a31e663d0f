package service

import (
	"context"
	"time"

	"cyberins/internal/policyholder/models"
	dErrors "cyberins/pkg/domain-errors"
)

// HistoryEntry is one historical version of a record, decoded.
type HistoryEntry struct {
	TxID      string         `json:"TxId"`
	Timestamp time.Time      `json:"Timestamp"`
	Value     *models.Record `json:"Value"`
}

// History replays the per-key version log, oldest to newest. Tombstones
// and versions whose value cannot be decoded are skipped; the projection
// mutates nothing.
func (s *Service) History(ctx context.Context, policyholderID, insuranceCompanyID string) ([]HistoryEntry, error) {
	versions, err := s.store.History(ctx, models.Key(policyholderID, insuranceCompanyID))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "history read failed")
	}

	entries := make([]HistoryEntry, 0, len(versions))
	for _, version := range versions {
		if version.Deleted || len(version.Value) == 0 {
			continue
		}
		record, err := models.ParseRecord(version.Value)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unreadable history version",
				"tx_id", version.TxID, "error", err)
			continue
		}
		entries = append(entries, HistoryEntry{
			TxID:      version.TxID,
			Timestamp: version.Timestamp,
			Value:     record,
		})
	}
	return entries, nil
}
