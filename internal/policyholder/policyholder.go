package policyholder

import (
	"log/slog"

	"cyberins/internal/ledger"
	"cyberins/internal/policyholder/contract"
	"cyberins/internal/policyholder/handler"
	"cyberins/internal/policyholder/metrics"
	"cyberins/internal/policyholder/service"
)

// Service is the policy-record business-rule engine.
type Service = service.Service

// Contract dispatches the named ledger operations.
type Contract = contract.Contract

// Handler wires HTTP endpoints to the contract.
type Handler = handler.Handler

// NewService constructs the engine over a ledger store.
func NewService(store ledger.Store, opts ...service.Option) *Service {
	return service.New(store, opts...)
}

// NewContract constructs the named-operation dispatcher.
func NewContract(svc *Service, m *metrics.Metrics) *Contract {
	return contract.New(svc, m)
}

// NewHandler constructs the HTTP boundary.
func NewHandler(c *Contract, logger *slog.Logger, adminToken string) *Handler {
	return handler.New(c, logger, adminToken)
}
