package maxcomm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumTable(t *testing.T) {
	tbl := NewEnumTable()
	require.NoError(t, tbl.Add(1, "one"))
	require.NoError(t, tbl.Add(2, "two"))

	assert.True(t, errors.Is(tbl.Add(1, "uno"), ErrDuplicate))
	assert.True(t, errors.Is(tbl.Add(3, "two"), ErrDuplicate))
	assert.Equal(t, 2, tbl.Len())

	assert.Equal(t, "one", tbl.Forward(1))
	assert.Equal(t, "unknown-code-7", tbl.Forward(7))

	n, err := tbl.Backward("two")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The synthesized form bypasses the table, even for registered codes
	n, err = tbl.Backward("unknown-code-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = tbl.Backward("three")
	assert.True(t, errors.Is(err, ErrLookupMiss))
}

func TestBitmaskTable(t *testing.T) {
	tbl := NewBitmaskTable("none")
	for _, l := range []string{"a", "b", "c"} {
		require.NoError(t, tbl.Add(l))
	}
	assert.True(t, errors.Is(tbl.Add("b"), ErrDuplicate))
	assert.True(t, errors.Is(tbl.Add("none"), ErrDuplicate))
	assert.Equal(t, 3, tbl.Len())

	assert.Equal(t, "none", tbl.Forward(0))
	assert.Equal(t, "a, c", tbl.Forward(5))
	assert.Equal(t, "b", tbl.Forward(2))
	assert.Equal(t, "a, unknown-bit-3", tbl.Forward(1|8))
	assert.Equal(t, "unknown-bit-31", tbl.Forward(1<<31))

	n, err := tbl.Backward("c, a")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = tbl.Backward("none")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = tbl.Backward("a, unknown-bit-3")
	require.NoError(t, err)
	assert.Equal(t, 1|8, n)

	n, err = tbl.Backward("unknown-bit-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = tbl.Backward("a, d")
	assert.True(t, errors.Is(err, ErrLookupMiss))

	for _, s := range []string{"unknown-bit-x", "unknown-bit--1", "unknown-bit-32"} {
		_, err = tbl.Backward(s)
		assert.True(t, errors.Is(err, ErrMalformedNumber), s)
	}
}

func TestBitmaskTableUnlabelledRoundTrip(t *testing.T) {
	tbl := NewBitmaskTable("none")
	require.NoError(t, tbl.Add("a"))

	for _, code := range []int{2, 3, 0x80, 0x801, 0xffff, 0xffffffff} {
		s := tbl.Forward(code)
		assert.NotEmpty(t, s)
		n, err := tbl.Backward(s)
		require.NoError(t, err, s)
		assert.Equal(t, code, n, s)
	}
}

func TestTablesRoundTrip(t *testing.T) {
	for _, tbl := range []*EnumTable{NewDeviceTable(), NewStatusTable()} {
		for code := range tbl.forward {
			n, err := tbl.Backward(tbl.Forward(code))
			require.NoError(t, err)
			assert.Equal(t, code, n)
		}
	}

	alarms := NewAlarmTable()
	for code := 0; code < 1<<alarms.Len(); code++ {
		s := alarms.Forward(code)
		n, err := alarms.Backward(s)
		require.NoError(t, err, s)
		assert.Equal(t, code, n)
		assert.NotEmpty(t, s)
		assert.False(t, strings.HasSuffix(s, bitDelimiter))
	}
}

func TestAlarmTable(t *testing.T) {
	alarms := NewAlarmTable()
	assert.Equal(t, 11, alarms.Len())
	assert.Equal(t, "No Error", alarms.Forward(0))
	assert.Equal(t, "External Fault 1, Earth fault current too large", alarms.Forward(1|4))
	assert.Equal(t, "Fan failure, Fuse failure", alarms.Forward(0x300))
}

func TestDeviceTable(t *testing.T) {
	devices := NewDeviceTable()
	assert.Equal(t, len(deviceTypes), devices.Len())
	assert.Equal(t, "SolarMax 6000S", devices.Forward(20040))
	assert.Equal(t, "MaxMeteo", devices.Forward(10200))
}

func TestStatusTable(t *testing.T) {
	status := NewStatusTable()
	assert.Equal(t, len(statusCodes), status.Len())
	assert.Equal(t, "MPP operation (20004)", status.Forward(20004))
	assert.Equal(t, "unknown-code-20005", status.Forward(20005))
}
