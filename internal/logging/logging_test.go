package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	require.NoError(t, Setup("debug", "json"))
	t.Cleanup(func() { _ = Setup("info", "json") })

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("poll finished", map[string]any{"auctions": 3})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "poll finished", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.EqualValues(t, 3, entry["auctions"])
	require.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetup_Invalid(t *testing.T) {
	require.Error(t, Setup("loud", "json"))
	require.Error(t, Setup("info", "xml"))
}
