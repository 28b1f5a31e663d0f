// Package contract exposes the engine as a fixed set of named
// operations taking positional string arguments, mirroring how the
// insurer-facing application layer submits work: one operation, one
// atomic unit against the ledger. All argument decoding happens here so
// the service only ever sees typed values.
package contract

import (
	"context"
	"strconv"
	"strings"
	"time"

	"cyberins/internal/policyholder/metrics"
	"cyberins/internal/policyholder/models"
	"cyberins/internal/policyholder/service"
	dErrors "cyberins/pkg/domain-errors"
)

// Operation names accepted by Invoke.
const (
	OpInitLedger             = "InitLedger"
	OpPolicyholderExists     = "PolicyholderExists"
	OpReadPolicyholder       = "ReadPolicyholder"
	OpGetAllPolicyholders    = "GetAllPolicyholders"
	OpDeleteAllPolicyholders = "DeleteAllPolicyholders"
	OpCreatePolicyholder     = "CreatePolicyholder"
	OpDeletePolicyholder     = "DeletePolicyholder"
	OpUpdatePolicyholder     = "UpdatePolicyholder"
	OpGetPolicyholderHistory = "GetPolicyholderHistory"
	OpAnalyzeContract        = "AnalyzeContract"
	OpCheckObligations       = "CheckObligations"
	OpReportIncident         = "ReportIncident"
	OpResponseIncident       = "ResponseIncident"
)

// writeOps marks operations that may mutate the ledger.
// CheckObligations writes only on violation but is classified as a
// write because callers cannot know the outcome in advance.
var writeOps = map[string]bool{
	OpInitLedger:             true,
	OpDeleteAllPolicyholders: true,
	OpCreatePolicyholder:     true,
	OpDeletePolicyholder:     true,
	OpUpdatePolicyholder:     true,
	OpCheckObligations:       true,
	OpReportIncident:         true,
	OpResponseIncident:       true,
}

// IsWrite reports whether the named operation may mutate the ledger.
func IsWrite(operation string) bool {
	return writeOps[operation]
}

// Contract dispatches named operations to the service.
type Contract struct {
	service *service.Service
	metrics *metrics.Metrics
}

// New constructs the operation dispatcher.
func New(svc *service.Service, m *metrics.Metrics) *Contract {
	return &Contract{service: svc, metrics: m}
}

// Invoke runs one named operation with its positional string arguments
// and returns the operation's result value (nil for void operations).
func (c *Contract) Invoke(ctx context.Context, operation string, args []string) (any, error) {
	if c.metrics != nil {
		defer c.metrics.ObserveInvoke(operation, time.Now())
	}

	switch operation {
	case OpInitLedger:
		if err := requireArgs(operation, args, 0); err != nil {
			return nil, err
		}
		return nil, c.service.Seed(ctx)

	case OpPolicyholderExists:
		if err := requireArgs(operation, args, 2); err != nil {
			return nil, err
		}
		return c.service.Exists(ctx, args[0], args[1])

	case OpReadPolicyholder:
		if err := requireArgs(operation, args, 2); err != nil {
			return nil, err
		}
		return c.service.Read(ctx, args[0], args[1])

	case OpGetAllPolicyholders:
		if err := requireArgs(operation, args, 0); err != nil {
			return nil, err
		}
		return c.service.List(ctx)

	case OpDeleteAllPolicyholders:
		if err := requireArgs(operation, args, 0); err != nil {
			return nil, err
		}
		return nil, c.service.DeleteAll(ctx)

	case OpCreatePolicyholder:
		return c.create(ctx, args)

	case OpDeletePolicyholder:
		if err := requireArgs(operation, args, 2); err != nil {
			return nil, err
		}
		return nil, c.service.Delete(ctx, args[0], args[1])

	case OpUpdatePolicyholder:
		if err := requireArgs(operation, args, 4); err != nil {
			return nil, err
		}
		totalMoneyRisk, err := parseAmount("totalMoneyRisk", args[3])
		if err != nil {
			return nil, err
		}
		return nil, c.service.Update(ctx, args[0], args[1], args[2], totalMoneyRisk)

	case OpGetPolicyholderHistory:
		if err := requireArgs(operation, args, 2); err != nil {
			return nil, err
		}
		return c.service.History(ctx, args[0], args[1])

	case OpAnalyzeContract:
		if err := requireArgs(operation, args, 2); err != nil {
			return nil, err
		}
		return c.service.AnalyzeContract(ctx, args[0], args[1])

	case OpCheckObligations:
		if err := requireArgs(operation, args, 2); err != nil {
			return nil, err
		}
		return c.service.CheckObligations(ctx, args[0], args[1])

	case OpReportIncident:
		if err := requireArgs(operation, args, 5); err != nil {
			return nil, err
		}
		indemnification, err := parseAmount("indemnification", args[4])
		if err != nil {
			return nil, err
		}
		return nil, c.service.ReportIncident(ctx, args[0], args[1], args[2], args[3], indemnification)

	case OpResponseIncident:
		if err := requireArgs(operation, args, 3); err != nil {
			return nil, err
		}
		return c.service.ResponseIncident(ctx, args[0], args[1], args[2])

	default:
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown operation %q", operation)
	}
}

func (c *Contract) create(ctx context.Context, args []string) (any, error) {
	if err := requireArgs(OpCreatePolicyholder, args, 10); err != nil {
		return nil, err
	}

	premium, err := parseAmount("premium", args[2])
	if err != nil {
		return nil, err
	}
	limit, err := parseAmount("limit", args[3])
	if err != nil {
		return nil, err
	}
	deductible, err := parseAmount("deductible", args[4])
	if err != nil {
		return nil, err
	}
	startDate, err := parseAmount("startdate", args[5])
	if err != nil {
		return nil, err
	}
	endDate, err := parseAmount("enddate", args[6])
	if err != nil {
		return nil, err
	}
	obligations, err := parseControlArg("obligations", args[8])
	if err != nil {
		return nil, err
	}
	controls, err := parseControlArg("controls", args[9])
	if err != nil {
		return nil, err
	}

	return c.service.Create(ctx, service.CreateParams{
		PolicyholderID:     args[0],
		InsuranceCompanyID: args[1],
		Premium:            premium,
		Limit:              limit,
		Deductible:         deductible,
		StartDate:          startDate,
		EndDate:            endDate,
		Coverages:          strings.Split(args[7], "-"),
		Obligations:        obligations,
		Controls:           controls,
	})
}

func requireArgs(operation string, args []string, want int) error {
	if len(args) != want {
		return dErrors.Newf(dErrors.CodeBadRequest, "%s expects %d arguments, got %d", operation, want, len(args))
	}
	return nil
}

func parseControlArg(name, raw string) (models.ControlMap, error) {
	parsed, err := models.ParseControlSpec(raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed "+name+" argument")
	}
	return parsed, nil
}

func parseAmount(name, raw string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "%s must be an integer, got %q", name, raw)
	}
	return value, nil
}
