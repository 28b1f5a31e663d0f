//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	platformpostgres "cyberins/internal/platform/postgres"
	"cyberins/pkg/platform/sentinel"
	"cyberins/pkg/requestcontext"
	"cyberins/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
	ctx   context.Context
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.ctx = context.Background()
	s.Require().NoError(platformpostgres.EnsureSchema(s.ctx, s.pg.Pool))
	s.store = New(s.pg.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateLedger(s.ctx))
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) TestGetPutDelete() {
	_, err := s.store.Get(s.ctx, "a:1")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Put(s.ctx, "a:1", []byte(`{"v":1}`)))

	value, err := s.store.Get(s.ctx, "a:1")
	s.Require().NoError(err)
	s.Equal([]byte(`{"v":1}`), value)

	s.Require().NoError(s.store.Delete(s.ctx, "a:1"))

	_, err = s.store.Get(s.ctx, "a:1")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestScanBounds() {
	for _, key := range []string{"a:1", "a:2", "b:1"} {
		s.Require().NoError(s.store.Put(s.ctx, key, []byte(key)))
	}

	entries, err := s.store.Scan(s.ctx, "a:", "a;")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("a:1", entries[0].Key)
	s.Equal("a:2", entries[1].Key)

	entries, err = s.store.Scan(s.ctx, "", "")
	s.Require().NoError(err)
	s.Len(entries, 3)
}

func (s *PostgresStoreSuite) TestHistoryOrderAndTombstones() {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	ctx := requestcontext.WithTime(s.ctx, base)
	s.Require().NoError(s.store.Put(ctx, "a:1", []byte("v1")))

	ctx = requestcontext.WithTime(s.ctx, base.Add(time.Minute))
	s.Require().NoError(s.store.Put(ctx, "a:1", []byte("v2")))

	ctx = requestcontext.WithTime(s.ctx, base.Add(2*time.Minute))
	s.Require().NoError(s.store.Delete(ctx, "a:1"))

	versions, err := s.store.History(s.ctx, "a:1")
	s.Require().NoError(err)
	s.Require().Len(versions, 3)

	s.Equal([]byte("v1"), versions[0].Value)
	s.Equal([]byte("v2"), versions[1].Value)
	s.True(versions[2].Deleted)
	for i, v := range versions {
		s.NotEmpty(v.TxID)
		s.True(v.Timestamp.Equal(base.Add(time.Duration(i) * time.Minute)))
	}
}

func (s *PostgresStoreSuite) TestHistorySurvivesDelete() {
	s.Require().NoError(s.store.Put(s.ctx, "a:1", []byte("v1")))
	s.Require().NoError(s.store.Delete(s.ctx, "a:1"))
	s.Require().NoError(s.store.Put(s.ctx, "a:1", []byte("v2")))

	versions, err := s.store.History(s.ctx, "a:1")
	s.Require().NoError(err)
	s.Len(versions, 3, "history is append-only across deletes")
}
