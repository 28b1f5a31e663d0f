package service

import (
	"context"

	"cyberins/internal/policyholder/models"
	audit "cyberins/pkg/platform/audit"
)

// Incident response outcomes that are results, not system faults: a
// missing or already-settled incident is reported back to the caller and
// the ledger is left untouched.
const (
	MessageIncidentNotFound      = "Incident not found"
	MessageIncidentAlreadyClosed = "Incident has already resolved."
)

// ReportIncident appends a new open incident to the record. The record
// must exist; the incident category and id are stored as given, with no
// uniqueness or coverage validation.
func (s *Service) ReportIncident(ctx context.Context, policyholderID, insuranceCompanyID, incidentID, incidentName string, indemnification int64) error {
	exists, err := s.Exists(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return err
	}
	if !exists {
		return s.notFound(policyholderID, insuranceCompanyID)
	}

	record, err := s.Read(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return err
	}
	record.AppendIncident(incidentID, incidentName, indemnification)
	if err := s.putRecord(ctx, record); err != nil {
		return err
	}
	s.audit.emit(ctx, audit.EventIncidentReported, record.Key(), incidentID)
	if s.metrics != nil {
		s.metrics.IncidentsReported.Inc()
	}
	return nil
}

// ResponseIncident settles the first incident matching incidentID in
// report order and returns the settlement message. Later duplicates of
// the same id are never touched. A missing or already-resolved incident
// yields its message without any write.
func (s *Service) ResponseIncident(ctx context.Context, policyholderID, insuranceCompanyID, incidentID string) (string, error) {
	record, err := s.Read(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return "", err
	}

	i := record.FindIncident(incidentID)
	if i < 0 {
		return MessageIncidentNotFound, nil
	}
	if record.Incidents[i].Status == models.IncidentResolved {
		return MessageIncidentAlreadyClosed, nil
	}

	message := record.ResolveIncident(i)
	if err := s.putRecord(ctx, record); err != nil {
		return "", err
	}
	s.audit.emit(ctx, audit.EventIncidentResolved, record.Key(), incidentID)
	if s.metrics != nil {
		s.metrics.IncidentsResolved.Inc()
	}
	return message, nil
}
