package feed

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"costasight-comparables/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	fetches int
	payload string
	err     error
	delay   time.Duration
}

func (s *fakeSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	s.mu.Lock()
	s.fetches++
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.payload)), nil
}

func (s *fakeSource) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *fakeSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

const tinyFeed = `<root>
  <property>
    <ref>OK-1</ref>
    <type>apartment</type>
    <town>Marbella</town>
    <beds>2</beds>
    <price>300000</price>
    <surface_area><built>80</built></surface_area>
  </property>
</root>`

func TestLoadReusesSnapshotWithinTTL(t *testing.T) {
	source := &fakeSource{payload: tinyFeed}
	provider := NewProvider(source, time.Hour)

	first, err := provider.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Records, 1)
	assert.False(t, first.Degraded)

	second, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.fetchCount())
}

func TestLoadRefreshesAfterTTLExpiry(t *testing.T) {
	source := &fakeSource{payload: tinyFeed}
	provider := NewProvider(source, time.Hour)
	current := time.Now()
	provider.now = func() time.Time { return current }

	_, err := provider.Load(context.Background())
	require.NoError(t, err)

	current = current.Add(2 * time.Hour)
	_, err = provider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetchCount())
}

func TestLoadConcurrentCallersShareOneFetch(t *testing.T) {
	source := &fakeSource{payload: tinyFeed, delay: 50 * time.Millisecond}
	provider := NewProvider(source, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := provider.Load(context.Background())
			assert.NoError(t, err)
			assert.Len(t, snap.Records, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, source.fetchCount())
}

// The shared load keeps going after the caller that triggered it gives up.
func TestLoadSurvivesCallerCancellation(t *testing.T) {
	source := &fakeSource{payload: tinyFeed, delay: 30 * time.Millisecond}
	provider := NewProvider(source, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := provider.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
}

func TestLoadServesStaleSnapshotOnRefreshFailure(t *testing.T) {
	source := &fakeSource{payload: tinyFeed}
	provider := NewProvider(source, time.Hour)
	current := time.Now()
	provider.now = func() time.Time { return current }

	first, err := provider.Load(context.Background())
	require.NoError(t, err)

	source.fail(errors.New("upstream down"))
	current = current.Add(2 * time.Hour)

	stale, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, stale.Degraded)
	assert.Equal(t, first.Records, stale.Records)
	assert.Equal(t, first.LoadedAt, stale.LoadedAt)
}

// A degraded copy must not overwrite the retained snapshot: once the source
// recovers, the next expired load refreshes from it normally.
func TestStaleServingDoesNotPoisonRecovery(t *testing.T) {
	source := &fakeSource{payload: tinyFeed}
	provider := NewProvider(source, time.Hour)
	current := time.Now()
	provider.now = func() time.Time { return current }

	_, err := provider.Load(context.Background())
	require.NoError(t, err)

	source.fail(errors.New("upstream down"))
	current = current.Add(2 * time.Hour)
	_, err = provider.Load(context.Background())
	require.NoError(t, err)

	source.fail(nil)
	recovered, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, recovered.Degraded)
	assert.Equal(t, 3, source.fetchCount())
}

func TestLoadFailsWithoutPriorSnapshot(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream down")}
	provider := NewProvider(source, time.Hour)

	_, err := provider.Load(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeFeedUnavailable, appErr.Code)
}

func TestLoadCountsDroppedRecords(t *testing.T) {
	const feed = `<root>
  <property>
    <ref>OK-1</ref>
    <type>apartment</type>
    <town>Marbella</town>
    <beds>2</beds>
    <price>300000</price>
    <surface_area><built>80</built></surface_area>
  </property>
  <property>
    <ref></ref>
    <type>apartment</type>
    <town>Marbella</town>
    <price>300000</price>
    <surface_area><built>80</built></surface_area>
  </property>
</root>`

	provider := NewProvider(&fakeSource{payload: feed}, time.Hour)
	snap, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
	assert.Equal(t, 1, snap.Dropped)
}
