package telemetry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf), zerolog.InfoLevel)

	sink.Emit("wizard.next", Fields{"step": 2})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "wizard.next", entry["event"])
	assert.Equal(t, "telemetry", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 2, entry["step"])
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Emit("a", nil)
	r.Emit("b", Fields{"x": 1})

	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, 1, r.Events()[1].Fields["x"])
}

func TestOrNop(t *testing.T) {
	assert.IsType(t, Nop{}, OrNop(nil))
	r := &Recorder{}
	assert.Same(t, r, OrNop(r))
}
