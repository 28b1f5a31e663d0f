package models

import (
	"fmt"

	dErrors "cyberins/pkg/domain-errors"
)

// KeySeparator joins the two identifiers into the ledger key. Callers
// must not embed it in either identifier.
const KeySeparator = ":"

// InitialReputation is assigned at creation; reputation only ever moves
// down from here, one point per detected obligation violation.
const InitialReputation = 100

// IncidentStatus is the two-state incident lifecycle.
// Open is the initial state; Resolved is terminal.
type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "open"
	IncidentResolved IncidentStatus = "resolved"
)

// Incident is embedded in its parent record, never independently keyed.
// IncidentID is unique only by caller convention; duplicates are stored
// as reported and resolution touches the first match in report order.
type Incident struct {
	IncidentID      string         `json:"IncidentID"`
	IncidentName    string         `json:"IncidentName"`
	Indemnification int64          `json:"Indemnification"`
	Status          IncidentStatus `json:"Status"`
	Message         string         `json:"Message"`
}

// Record is the policyholder aggregate stored as one whole ledger value.
//
// Invariants:
//   - (PolicyholderID, InsuranceCompanyID) is immutable after creation
//     and unique across the ledger
//   - Reputation starts at 100 and is monotonically non-increasing
//   - Limit is only ever reduced, and only by incident settlement
//   - incident status transitions open → resolved only
//
// Every mutation rewrites the full record; the ledger has no partial
// update, so a record can never be observed half-written.
type Record struct {
	PolicyholderID     string     `json:"PolicyholderID"`
	InsuranceCompanyID string     `json:"InsuranceCompanyID"`
	Premium            int64      `json:"Premium"`
	Limit              int64      `json:"Limit"`
	Deductible         int64      `json:"Deductible"`
	RiskLevel          string     `json:"RiskLevel"`
	TotalMoneyRisk     int64      `json:"TotalMoneyRisk"`
	Reputation         int64      `json:"Reputation"`
	StartDate          int64      `json:"StartDate"`
	EndDate            int64      `json:"EndDate"`
	Coverages          []string   `json:"Coverages"`
	Obligations        ControlMap `json:"Obligations"`
	Controls           ControlMap `json:"Controls"`
	Incidents          []Incident `json:"Incidents"`
}

// Key returns the composite ledger key for this record.
func (r *Record) Key() string {
	return Key(r.PolicyholderID, r.InsuranceCompanyID)
}

// Key builds the composite ledger key from the identifier pair.
func Key(policyholderID, insuranceCompanyID string) string {
	return policyholderID + KeySeparator + insuranceCompanyID
}

// NewRecord constructs a record with creation defaults applied.
func NewRecord(policyholderID, insuranceCompanyID string, premium, limit, deductible, startDate, endDate int64, coverages []string, obligations, controls ControlMap) (*Record, error) {
	if policyholderID == "" || insuranceCompanyID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "policyholder and insurance company ids are required")
	}
	if coverages == nil {
		coverages = []string{}
	}
	return &Record{
		PolicyholderID:     policyholderID,
		InsuranceCompanyID: insuranceCompanyID,
		Premium:            premium,
		Limit:              limit,
		Deductible:         deductible,
		RiskLevel:          "",
		TotalMoneyRisk:     0,
		Reputation:         InitialReputation,
		StartDate:          startDate,
		EndDate:            endDate,
		Coverages:          coverages,
		Obligations:        obligations,
		Controls:           controls,
		Incidents:          []Incident{},
	}, nil
}

// ApplyUpdate overwrites the only two caller-mutable fields.
func (r *Record) ApplyUpdate(riskLevel string, totalMoneyRisk int64) {
	r.RiskLevel = riskLevel
	r.TotalMoneyRisk = totalMoneyRisk
}

// ApplyViolation records one detected obligation violation.
func (r *Record) ApplyViolation() {
	r.Reputation--
}

// MeetsObligations reports whether every attested control structurally
// matches its obligation. A key-count mismatch between the two mappings
// is a violation outright; so is a control whose key has no obligation.
func (r *Record) MeetsObligations() bool {
	if len(r.Controls) != len(r.Obligations) {
		return false
	}
	for name, control := range r.Controls {
		obligation, ok := r.Obligations[name]
		if !ok {
			return false
		}
		if !control.Equal(obligation) {
			return false
		}
	}
	return true
}

// AppendIncident records a newly reported incident in report order.
func (r *Record) AppendIncident(incidentID, incidentName string, indemnification int64) {
	r.Incidents = append(r.Incidents, Incident{
		IncidentID:      incidentID,
		IncidentName:    incidentName,
		Indemnification: indemnification,
		Status:          IncidentOpen,
		Message:         "",
	})
}

// FindIncident returns the index of the first incident with the given id
// in report order, or -1. Later duplicates are deliberately not visible
// to resolution.
func (r *Record) FindIncident(incidentID string) int {
	for i := range r.Incidents {
		if r.Incidents[i].IncidentID == incidentID {
			return i
		}
	}
	return -1
}

// ResolveIncident settles the open incident at index i and returns the
// settlement message.
//
// The net claim is the indemnification less the deductible, floored at
// zero. The limit is reduced only when the net claim is positive, does
// not exceed the remaining limit, and does not exceed the category's
// severity cost; otherwise the incident still resolves with the limit
// untouched.
func (r *Record) ResolveIncident(i int) string {
	incident := &r.Incidents[i]

	severityCost := SeverityCost(incident.IncidentName)

	var netClaim int64
	if incident.Indemnification > r.Deductible {
		netClaim = incident.Indemnification - r.Deductible
	}

	var message string
	if netClaim > 0 && netClaim <= r.Limit && netClaim <= severityCost {
		r.Limit -= netClaim
		message = fmt.Sprintf("Incident resolved. Limit is reduced by %d", netClaim)
	} else {
		message = "Incident resolved. Limit no changed."
	}

	incident.Status = IncidentResolved
	incident.Message = message
	return message
}
