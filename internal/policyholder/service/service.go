// Package service implements the policy-record business-rule engine:
// composite-key CRUD, obligation verification with reputation penalties,
// the incident settlement lifecycle and the history projection. Each
// operation is one read-modify-write against the ledger; the host
// serializes concurrent writers per key, so the engine holds no locks.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"cyberins/internal/ledger"
	"cyberins/internal/policyholder/metrics"
	"cyberins/internal/policyholder/models"
	dErrors "cyberins/pkg/domain-errors"
	audit "cyberins/pkg/platform/audit"
	"cyberins/pkg/platform/sentinel"
)

// RecordCache caches canonical record bytes by ledger key. All methods
// must tolerate a nil receiver so the cache stays optional.
type RecordCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, key string)
}

// AuditPublisher receives one event per ledger mutation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the policy-record engine over a ledger store.
type Service struct {
	store   ledger.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	cache   RecordCache
	audit   *auditEmitter
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	cache   RecordCache
	audit   AuditPublisher
}

// Option configures the Service.
type Option func(*serviceConfig)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithCache attaches a read cache for record snapshots.
func WithCache(c RecordCache) Option {
	return func(cfg *serviceConfig) { cfg.cache = c }
}

// WithAuditPublisher attaches a mutation audit publisher.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = p }
}

// New constructs the service over a ledger store.
func New(store ledger.Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		logger:  logger,
		metrics: cfg.metrics,
		cache:   cfg.cache,
		audit:   newAuditEmitter(logger, cfg.audit),
	}
}

// CreateParams carries the already-parsed arguments of the create
// operation; compound string encodings are decoded at the boundary.
type CreateParams struct {
	PolicyholderID     string
	InsuranceCompanyID string
	Premium            int64
	Limit              int64
	Deductible         int64
	StartDate          int64
	EndDate            int64
	Coverages          []string
	Obligations        models.ControlMap
	Controls           models.ControlMap
}

// Exists reports whether a non-empty value is stored at the composite
// key. No side effects.
func (s *Service) Exists(ctx context.Context, policyholderID, insuranceCompanyID string) (bool, error) {
	_, err := s.store.Get(ctx, models.Key(policyholderID, insuranceCompanyID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "existence check failed")
	}
	return true, nil
}

// Read loads and decodes the record at the composite key.
func (s *Service) Read(ctx context.Context, policyholderID, insuranceCompanyID string) (*models.Record, error) {
	key := models.Key(policyholderID, insuranceCompanyID)

	if cached, ok := s.cacheGet(ctx, key); ok {
		if record, err := models.ParseRecord(cached); err == nil {
			return record, nil
		}
		// Poisoned cache entry; fall through to the ledger.
		s.cacheInvalidate(ctx, key)
	}

	value, err := s.store.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, s.notFound(policyholderID, insuranceCompanyID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read failed")
	}

	record, err := models.ParseRecord(value)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "stored record is not decodable")
	}
	s.cacheSet(ctx, key, value)
	return record, nil
}

// Create persists a new record with creation defaults. The composite key
// must be unused.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Record, error) {
	exists, err := s.Exists(ctx, params.PolicyholderID, params.InsuranceCompanyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, dErrors.Newf(dErrors.CodeConflict,
			"policyholder %s and insurance company %s already exists",
			params.PolicyholderID, params.InsuranceCompanyID)
	}

	record, err := models.NewRecord(
		params.PolicyholderID, params.InsuranceCompanyID,
		params.Premium, params.Limit, params.Deductible,
		params.StartDate, params.EndDate,
		params.Coverages, params.Obligations, params.Controls,
	)
	if err != nil {
		return nil, err
	}

	if err := s.putRecord(ctx, record); err != nil {
		return nil, err
	}
	s.audit.emit(ctx, audit.EventPolicyholderCreated, record.Key(), "")
	if s.metrics != nil {
		s.metrics.RecordsCreated.Inc()
	}
	return record, nil
}

// Update overwrites the risk classification and total money risk; every
// other field keeps its stored value.
func (s *Service) Update(ctx context.Context, policyholderID, insuranceCompanyID, riskLevel string, totalMoneyRisk int64) error {
	record, err := s.Read(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return err
	}
	record.ApplyUpdate(riskLevel, totalMoneyRisk)
	if err := s.putRecord(ctx, record); err != nil {
		return err
	}
	s.audit.emit(ctx, audit.EventPolicyholderUpdated, record.Key(), "")
	return nil
}

// Delete removes the record at the composite key.
func (s *Service) Delete(ctx context.Context, policyholderID, insuranceCompanyID string) error {
	exists, err := s.Exists(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return err
	}
	if !exists {
		return s.notFound(policyholderID, insuranceCompanyID)
	}

	key := models.Key(policyholderID, insuranceCompanyID)
	if err := s.store.Delete(ctx, key); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete failed")
	}
	s.cacheInvalidate(ctx, key)
	s.audit.emit(ctx, audit.EventPolicyholderDeleted, key, "")
	if s.metrics != nil {
		s.metrics.RecordsDeleted.Inc()
	}
	return nil
}

// ListItem is one range-scan result: a decoded record, or the raw stored
// text when the value does not parse as a record.
type ListItem struct {
	Record *models.Record
	Raw    string
}

func (it ListItem) MarshalJSON() ([]byte, error) {
	if it.Record != nil {
		return json.Marshal(it.Record)
	}
	return json.Marshal(it.Raw)
}

// List scans the whole keyspace. Values that fail to parse are passed
// through as raw text; a malformed entry never fails the scan.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	entries, err := s.store.Scan(ctx, "", "")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "range scan failed")
	}

	items := make([]ListItem, 0, len(entries))
	for _, entry := range entries {
		record, err := models.ParseRecord(entry.Value)
		if err != nil {
			s.logger.WarnContext(ctx, "unparseable ledger value", "key", entry.Key, "error", err)
			items = append(items, ListItem{Raw: string(entry.Value)})
			continue
		}
		items = append(items, ListItem{Record: record})
	}
	return items, nil
}

// DeleteAll scans every key and deletes each record by the primary key
// recovered from its value. Entries that fail to parse are skipped and
// the scan continues.
func (s *Service) DeleteAll(ctx context.Context) error {
	entries, err := s.store.Scan(ctx, "", "")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "range scan failed")
	}

	for _, entry := range entries {
		record, err := models.ParseRecord(entry.Value)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unparseable ledger value", "key", entry.Key, "error", err)
			continue
		}
		key := record.Key()
		if err := s.store.Delete(ctx, key); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "delete failed")
		}
		s.cacheInvalidate(ctx, key)
	}
	s.audit.emit(ctx, audit.EventLedgerCleared, "", "")
	return nil
}

// ContractAnalysis is the read-only contract summary returned by
// AnalyzeContract.
type ContractAnalysis struct {
	Coverages   []string          `json:"Coverages"`
	Obligations models.ControlMap `json:"Obligations"`
}

// AnalyzeContract returns the covered categories and the contractual
// obligations of an existing record.
func (s *Service) AnalyzeContract(ctx context.Context, policyholderID, insuranceCompanyID string) (*ContractAnalysis, error) {
	record, err := s.Read(ctx, policyholderID, insuranceCompanyID)
	if err != nil {
		return nil, err
	}
	return &ContractAnalysis{
		Coverages:   record.Coverages,
		Obligations: record.Obligations,
	}, nil
}

func (s *Service) putRecord(ctx context.Context, record *models.Record) error {
	value, err := record.Bytes()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode record")
	}
	if err := s.store.Put(ctx, record.Key(), value); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write failed")
	}
	s.cacheInvalidate(ctx, record.Key())
	return nil
}

func (s *Service) notFound(policyholderID, insuranceCompanyID string) error {
	return dErrors.Newf(dErrors.CodeNotFound,
		"policyholder %s and insurance company %s does not exist",
		policyholderID, insuranceCompanyID)
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

func (s *Service) cacheSet(ctx context.Context, key string, value []byte) {
	if s.cache != nil {
		s.cache.Set(ctx, key, value)
	}
}

func (s *Service) cacheInvalidate(ctx context.Context, key string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, key)
	}
}
