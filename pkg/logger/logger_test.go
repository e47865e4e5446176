package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLoggerWithWriter(WARNING, buf)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	require.Empty(t, buf.String())

	l.Warnf("warn %d", 3)
	require.Contains(t, buf.String(), "[WARN] warn 3")

	l.Errorf("error %d", 4)
	require.Contains(t, buf.String(), "[ERROR] error 4")

	buf.Reset()
	NewLoggerWithWriter(SILENCE, buf).Errorf("hidden")
	require.Empty(t, buf.String())
}
