//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "cyberins/pkg/platform/audit"
	"cyberins/pkg/testutil/containers"
)

func TestSinkProducesOrderedEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t).Broker
	topic := "cyberins.audit.test"

	sink, err := NewSink([]string{broker}, topic)
	require.NoError(t, err)
	t.Cleanup(sink.Close)

	ctx := context.Background()
	now := time.Now().UTC()
	events := []audit.Event{
		{Timestamp: now, Key: "Pol001:Ins001", Action: string(audit.EventPolicyholderCreated), RequestID: "req-1"},
		{Timestamp: now.Add(time.Second), Key: "Pol001:Ins001", Action: string(audit.EventIncidentReported), Detail: "Inc001", RequestID: "req-2"},
	}
	for _, event := range events {
		require.NoError(t, sink.Append(ctx, event))
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	var got []audit.Event
	deadline := time.Now().Add(30 * time.Second)
	for len(got) < len(events) && time.Now().Before(deadline) {
		pollCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		fetches := consumer.PollFetches(pollCtx)
		cancel()
		fetches.EachRecord(func(record *kgo.Record) {
			var event audit.Event
			require.NoError(t, json.Unmarshal(record.Value, &event))
			assert.Equal(t, event.Key, string(record.Key), "records are keyed by ledger key")
			got = append(got, event)
		})
	}

	require.Len(t, got, len(events))
	assert.Equal(t, string(audit.EventPolicyholderCreated), got[0].Action)
	assert.Equal(t, string(audit.EventIncidentReported), got[1].Action)
	assert.Equal(t, "Inc001", got[1].Detail)
}
