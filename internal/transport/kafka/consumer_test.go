package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	profileuc "github.com/kailas-cloud/hrsearch/internal/usecase/profile"
)

type fakeVectors struct {
	rebuilt []int64
	deleted []int64
	outcome profileuc.Outcome
	err     error
}

func (f *fakeVectors) RebuildByID(_ context.Context, id int64) (profileuc.Outcome, error) {
	f.rebuilt = append(f.rebuilt, id)
	if f.outcome == "" {
		return profileuc.Rebuilt, f.err
	}
	return f.outcome, f.err
}

func (f *fakeVectors) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

// fakeClient serves queued batches, then cancels the run.
type fakeClient struct {
	batches [][]*kgo.Record
	cancel  context.CancelFunc
	commits int
	closed  bool
}

func (f *fakeClient) PollFetches(ctx context.Context) kgo.Fetches {
	if len(f.batches) == 0 {
		f.cancel()
		<-ctx.Done()
		return nil
	}
	recs := f.batches[0]
	f.batches = f.batches[1:]
	return kgo.Fetches{{Topics: []kgo.FetchTopic{{
		Topic:      "employee.profile.changed",
		Partitions: []kgo.FetchPartition{{Partition: 0, Records: recs}},
	}}}}
}

func (f *fakeClient) CommitUncommittedOffsets(context.Context) error {
	f.commits++
	return nil
}

func (f *fakeClient) Close() { f.closed = true }

func rec(value string) *kgo.Record { return &kgo.Record{Value: []byte(value)} }

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Event
		wantErr bool
	}{
		{"updated", `{"employee_id":7,"type":"updated"}`, Event{EmployeeID: 7, Type: EventUpdated}, false},
		{"deleted", `{"employee_id":8,"type":"deleted"}`, Event{EmployeeID: 8, Type: EventDeleted}, false},
		{"not json", `employee 7 changed`, Event{}, true},
		{"zero id", `{"employee_id":0,"type":"updated"}`, Event{}, true},
		{"unknown type", `{"employee_id":7,"type":"hired"}`, Event{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeEvent([]byte(tc.in))
			if tc.wantErr {
				require.ErrorIs(t, err, errMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRun_AppliesEventsAndCommitsPerBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vectors := &fakeVectors{}
	cl := &fakeClient{cancel: cancel, batches: [][]*kgo.Record{
		{rec(`{"employee_id":1,"type":"updated"}`), rec(`garbage`)},
		{rec(`{"employee_id":2,"type":"deleted"}`)},
	}}

	c := newConsumer(cl, vectors, zap.NewNop())
	require.NoError(t, c.Run(ctx))

	assert.Equal(t, []int64{1}, vectors.rebuilt)
	assert.Equal(t, []int64{2}, vectors.deleted)
	assert.Equal(t, 2, cl.commits)
}

func TestRun_FailuresDoNotStopStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vectors := &fakeVectors{err: errors.New("pg down")}
	cl := &fakeClient{cancel: cancel, batches: [][]*kgo.Record{
		{rec(`{"employee_id":1,"type":"updated"}`), rec(`{"employee_id":3,"type":"updated"}`)},
	}}

	require.NoError(t, newConsumer(cl, vectors, zap.NewNop()).Run(ctx))
	assert.Equal(t, []int64{1, 3}, vectors.rebuilt)
	assert.Equal(t, 1, cl.commits)
}

func TestApply(t *testing.T) {
	t.Run("missing employee is not an error for the stream", func(t *testing.T) {
		vectors := &fakeVectors{err: domain.ErrEmployeeNotFound}
		c := newConsumer(&fakeClient{}, vectors, zap.NewNop())
		c.handle(context.Background(), rec(`{"employee_id":5,"type":"updated"}`))
		assert.Equal(t, []int64{5}, vectors.rebuilt)
	})

	t.Run("failed outcome is an error", func(t *testing.T) {
		c := newConsumer(&fakeClient{}, &fakeVectors{outcome: profileuc.Failed}, zap.NewNop())
		require.Error(t, c.apply(context.Background(), Event{EmployeeID: 5, Type: EventUpdated}))
	})

	t.Run("skipped outcome is fine", func(t *testing.T) {
		c := newConsumer(&fakeClient{}, &fakeVectors{outcome: profileuc.Skipped}, zap.NewNop())
		require.NoError(t, c.apply(context.Background(), Event{EmployeeID: 5, Type: EventUpdated}))
	})
}

func TestClose(t *testing.T) {
	cl := &fakeClient{}
	newConsumer(cl, &fakeVectors{}, zap.NewNop()).Close()
	assert.True(t, cl.closed)
}
