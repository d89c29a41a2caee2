package abuse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var trackerBase = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestTransferTracker_Allow(t *testing.T) {
	tracker := NewTransferTracker(24*time.Hour, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, tracker.Allow("alice", trackerBase))
		tracker.Record("alice", trackerBase)
	}

	assert.False(t, tracker.Allow("alice", trackerBase))

	// 不同地址各自計數
	assert.True(t, tracker.Allow("bob", trackerBase))
}

func TestTransferTracker_WindowSlides(t *testing.T) {
	tracker := NewTransferTracker(24*time.Hour, 2)

	tracker.Record("alice", trackerBase)
	tracker.Record("alice", trackerBase.Add(time.Hour))
	assert.False(t, tracker.Allow("alice", trackerBase.Add(2*time.Hour)))

	// 第一筆滑出時間窗後空出額度
	assert.True(t, tracker.Allow("alice", trackerBase.Add(24*time.Hour+time.Minute)))
}

func TestCountWithin(t *testing.T) {
	stamps := []time.Time{
		trackerBase.Add(-30 * time.Hour),
		trackerBase.Add(-10 * time.Hour),
		trackerBase.Add(-time.Hour),
		trackerBase,
	}

	assert.Equal(t, 3, CountWithin(stamps, 24*time.Hour, trackerBase))
	assert.Equal(t, 2, CountWithin(stamps, 2*time.Hour, trackerBase))
	assert.Equal(t, 0, CountWithin(nil, 24*time.Hour, trackerBase))
}
