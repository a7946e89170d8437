package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/josephlewis42/sheller/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestWriteReport(t *testing.T) {
	log := &bytes.Buffer{}
	session := logger.NewJsonLinesLogRecorder(log).NewSession()
	for _, event := range []logger.Event{
		&logger.SessionStart{},
		&logger.LineReceived{Line: "true; nope"},
		&logger.RunCommand{Command: []string{"true"}, ResolvedPath: "/bin/true", Pid: 10},
		&logger.LaunchFailure{Command: []string{"nope"}, Error: "not found"},
		&logger.SessionEnd{Reason: "command"},
	} {
		require.NoError(t, session.Record(event))
	}

	out := &bytes.Buffer{}
	require.NoError(t, writeReport(out, log))

	var report map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.EqualValues(t, 5, report["log_entries"])
	assert.Contains(t, out.String(), "/bin/true: 1")
}

func TestWriteReport_invalid(t *testing.T) {
	err := writeReport(&bytes.Buffer{}, strings.NewReader("not json"))
	assert.Error(t, err)
}
