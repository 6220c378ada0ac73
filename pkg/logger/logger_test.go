package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "nibso", Out: &buf})

	cl := l.Component("pos")
	cl.Info().Str("transaction_id", "TRX-1").Msg("venta finalizada")
	l.Debug().Msg("no debe salir")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "nibso", entry["service"])
	assert.Equal(t, "pos", entry["component"])
	assert.Equal(t, "TRX-1", entry["transaction_id"])
	assert.Equal(t, "venta finalizada", entry["message"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("cualquiera").String())
}
