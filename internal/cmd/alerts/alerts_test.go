package alerts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlert_String(t *testing.T) {
	a := NewWarning("Run stopped early").
		WithError(errors.New("context canceled")).
		WithDetails("12 records saved")

	assert.Equal(t, "! Run stopped early: context canceled\n  12 records saved", a.String())
	assert.Equal(t, "✓ done", NewSuccess("done").String())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}

func TestNewWriterTo(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, false)

	require.NoError(t, w.WriteAlert(NewInfo("one")))
	require.NoError(t, w.WriteAlert(NewError("two")))
	assert.Equal(t, "• one\n✗ two\n", buf.String(), "buffers are never colored")

	require.NoError(t, DiscardWriter.WriteAlert(NewInfo("x")))
}
