package service

import (
	"context"

	"cyberins/internal/policyholder/models"
	audit "cyberins/pkg/platform/audit"
)

// Seed bulk-loads the bootstrap sample portfolio. Existing keys are
// overwritten; seeding is meant for fresh ledgers and load tests.
func (s *Service) Seed(ctx context.Context) error {
	for _, record := range seedRecords() {
		if err := s.putRecord(ctx, record); err != nil {
			return err
		}
	}
	s.audit.emit(ctx, audit.EventLedgerSeeded, "", "")
	return nil
}

func seedRecords() []*models.Record {
	return []*models.Record{
		{
			PolicyholderID:     "Pol001",
			InsuranceCompanyID: "Ins001",
			Premium:            100000,
			Limit:              10000000,
			Deductible:         10000,
			RiskLevel:          "",
			TotalMoneyRisk:     0,
			Reputation:         models.InitialReputation,
			StartDate:          20230101,
			EndDate:            20230701,
			Coverages:          []string{"wiretransferfraud", "programmingerror", "staffmistake"},
			Obligations: models.ControlMap{
				"penetrationtests": models.IntControl(9),
				"stafftraining":    models.IntControl(9),
				"backup":           models.IntControl(9),
			},
			Controls: models.ControlMap{
				"penetrationtests": models.IntControl(3),
				"stafftraining":    models.IntControl(2),
				"backup":           models.IntControl(1),
			},
			Incidents: []models.Incident{
				{IncidentID: "Inc001", IncidentName: "programmingerror", Indemnification: 1000, Status: models.IncidentResolved, Message: ""},
				{IncidentID: "Inc002", IncidentName: "legalaction", Indemnification: 1000, Status: models.IncidentResolved, Message: ""},
				{IncidentID: "Inc003", IncidentName: "ransomware", Indemnification: 16000, Status: models.IncidentOpen, Message: ""},
			},
		},
		{
			PolicyholderID:     "Pol002",
			InsuranceCompanyID: "Ins002",
			Premium:            800000,
			Limit:              8000000,
			Deductible:         8000,
			RiskLevel:          "",
			TotalMoneyRisk:     0,
			Reputation:         models.InitialReputation,
			StartDate:          20230101,
			EndDate:            20240101,
			Coverages:          []string{"legalaction", "lostdevice", "hacker"},
			Obligations: models.ControlMap{
				"penetrationtests": models.IntControl(8),
				"stafftraining":    models.IntControl(8),
				"backup":           models.IntControl(8),
			},
			Controls: models.ControlMap{
				"penetrationtests": models.IntControl(8),
				"stafftraining":    models.IntControl(8),
				"backup":           models.IntControl(8),
			},
			Incidents: []models.Incident{},
		},
	}
}
