package main

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hemtjan.st/solarmax/config"
	"hemtjan.st/solarmax/maxcomm"
)

func TestSelectFields(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	log, hook := test.NewNullLogger()

	fields := selectFields(reg, []string{"PAC", " KDY", "XYZ", "PAC", ""}, log)
	require.Len(t, fields, 2)
	assert.Equal(t, "PAC", fields[0].ID)
	assert.Equal(t, "KDY", fields[1].ID)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	all := selectFields(reg, nil, log)
	assert.Equal(t, reg.DataFields(), all)
}

func TestSelectFieldsBlank(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	log, hook := test.NewNullLogger()

	// An empty positional argument splits into a single blank entry
	for _, ids := range [][]string{{""}, {" ", ""}, strings.Split("", ",")} {
		assert.Equal(t, reg.DataFields(), selectFields(reg, ids, log), "%q", ids)
	}

	hook.Reset()
	assert.Empty(t, selectFields(reg, []string{"XYZ", ""}, log))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLogValues(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	reply, err := maxcomm.Unmarshal(reg, "{FB;00;1D|64:CLR;PAC=2d|0632}")
	require.NoError(t, err)

	log, hook := test.NewNullLogger()
	logValues(log, reply)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Clear energy counters: no value", entries[0].Message)
	assert.Equal(t, "AC output: 22.5 W", entries[1].Message)
	assert.Equal(t, "PAC", entries[1].Data["field"])
}

func TestSetupLogger(t *testing.T) {
	log := setupLogger(config.LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, logrus.DebugLevel, log.Level)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = setupLogger(config.LogConfig{Level: "bogus"})
	assert.Equal(t, logrus.InfoLevel, log.Level)
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
