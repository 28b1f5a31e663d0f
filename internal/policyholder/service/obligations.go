package service

import (
	"context"

	audit "cyberins/pkg/platform/audit"
)

// CheckObligations verifies the record's attested controls against its
// contractual obligations.
//
// A full structural match returns true and performs no write. Any
// mismatch at any depth is a violation: the reputation is decremented by
// exactly one, the record is persisted, and false is returned.
func (s *Service) CheckObligations(ctx context.Context, policyholderID, insuranceCompanyID string) (bool, error) {
	record, err := s.Read(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return false, err
	}

	if record.MeetsObligations() {
		return true, nil
	}

	record.ApplyViolation()
	if err := s.putRecord(ctx, record); err != nil {
		return false, err
	}
	s.audit.emit(ctx, audit.EventObligationsViolated, record.Key(), "")
	if s.metrics != nil {
		s.metrics.ObligationViolations.Inc()
	}
	return false, nil
}
