package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTracker_ReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10)
	tracker.Start()

	tracker.Increment(4, 12)
	assert.Empty(t, buf.String(), "below interval, nothing reported")

	tracker.Increment(6, 15)
	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "10 documents")
	assert.Contains(t, buf.String(), "27 chunks")
}

func TestProgressTracker_FinishAlwaysReports(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100)
	tracker.Start()

	tracker.Increment(3, 5)
	tracker.Finish()

	assert.Contains(t, buf.String(), "3 documents")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressTracker_IgnoredBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1)

	tracker.Increment(5, 5)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Elapsed())
}
