package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSourceValues(t *testing.T) {
	sources := []RunSource{SourceHTTP, SourceNATS, SourceCLI}
	expected := []string{"http", "nats", "cli"}
	for i, s := range sources {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	if normalizeLimit(0) != defaultListLimit {
		t.Errorf("expected default limit for 0")
	}
	if normalizeLimit(-3) != defaultListLimit {
		t.Errorf("expected default limit for negative")
	}
	if normalizeLimit(7) != 7 {
		t.Errorf("expected explicit limit to pass through")
	}
}

func TestMemoryStoreRecordAssignsIDAndTimestamp(t *testing.T) {
	s := NewMemoryStore(4)
	run := &AnalysisRun{Source: SourceHTTP, TaskCount: 3}

	require.NoError(t, s.RecordRun(context.Background(), run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TaskCount)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore(2)
	got, err := s.GetRun(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordRun(ctx, &AnalysisRun{TopTaskID: fmt.Sprintf("t%d", i)}))
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "t2", runs[0].TopTaskID)
	assert.Equal(t, "t0", runs[2].TopTaskID)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()
	var first uuid.UUID
	for i := 0; i < 5; i++ {
		run := &AnalysisRun{TopTaskID: fmt.Sprintf("t%d", i)}
		require.NoError(t, s.RecordRun(ctx, run))
		if i == 0 {
			first = run.ID
		}
	}

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"t4", "t3", "t2"}, []string{runs[0].TopTaskID, runs[1].TopTaskID, runs[2].TopTaskID})

	evicted, err := s.GetRun(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, evicted)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()
	run := &AnalysisRun{TaskCount: 1}
	require.NoError(t, s.RecordRun(ctx, run))

	run.TaskCount = 99
	got, _ := s.GetRun(ctx, run.ID)
	assert.Equal(t, 1, got.TaskCount)

	got.TaskCount = 42
	again, _ := s.GetRun(ctx, run.ID)
	assert.Equal(t, 1, again.TaskCount)
}

func TestMemoryStoreConcurrentRecords(t *testing.T) {
	s := NewMemoryStore(64)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RecordRun(ctx, &AnalysisRun{TaskCount: 1})
		}()
	}
	wg.Wait()

	runs, err := s.ListRuns(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, runs, 32)
}
