package publish

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lib.hemtjan.st/device"

	"hemtjan.st/solarmax/maxcomm"
)

type fakeDevice struct {
	info    *device.Info
	updates map[string][]string
}

func (d *fakeDevice) Update(feature, value string) error {
	d.updates[feature] = append(d.updates[feature], value)
	return nil
}

func (d *fakeDevice) factory(created *int) Factory {
	return func(info *device.Info) (Updater, error) {
		*created++
		d.info = info
		return d, nil
	}
}

func fields(t *testing.T, reg *maxcomm.Registry, ids ...string) []*maxcomm.Field {
	var out []*maxcomm.Field
	for _, id := range ids {
		f, ok := reg.Lookup(id)
		require.True(t, ok, id)
		out = append(out, f)
	}
	return out
}

func TestFeatureName(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	tests := map[string]string{
		"PAC":  "currentPower",
		"KT0":  "energyProduced",
		"KDY":  "energyProducedToday",
		"UDC":  "voltageDc",
		"UL1":  "voltagePhase1",
		"SYS":  "systemStatus",
		"TIME": "time",
	}
	for id, want := range tests {
		assert.Equal(t, want, FeatureName(fields(t, reg, id)[0]), id)
	}
}

func TestPublish(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	reply, err := maxcomm.Unmarshal(reg,
		"{01;FB;28|64:PAC=2d;KDY=1f;UDC=c2a|094D}{01;FB;23|64:TYP=4e34;PAC=3e8|07B6}")
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	dev := &fakeDevice{updates: map[string][]string{}}
	created := 0
	p := New("solarmax/1", "Roof", fields(t, reg, "PAC", "KDY", "UDC", "TYP", "CLR"), dev.factory(&created), log)

	p.Offline()
	assert.Equal(t, 0, created)

	require.NoError(t, p.Publish(reply))
	require.NoError(t, p.Publish(reply))
	assert.Equal(t, 1, created)

	assert.Equal(t, "solarmax/1", dev.info.Topic)
	assert.Equal(t, "Roof", dev.info.Name)
	assert.Equal(t, "SolarMax 3000S", dev.info.Model)
	assert.Len(t, dev.info.Features, 5)
	assert.Contains(t, dev.info.Features, "currentPower")
	assert.Contains(t, dev.info.Features, "online")
	assert.NotContains(t, dev.info.Features, "clearEnergyCounters")

	assert.Equal(t, []string{"500.0", "500.0"}, dev.updates["currentPower"])
	assert.Equal(t, []string{"3.1", "3.1"}, dev.updates["energyProducedToday"])
	assert.Equal(t, []string{"311.4", "311.4"}, dev.updates["voltageDc"])
	assert.Equal(t, []string{"SolarMax 3000S", "SolarMax 3000S"}, dev.updates["type"])

	p.Offline()
	assert.Equal(t, []string{"1", "1", "0"}, dev.updates["online"])
}

func TestPublishBadValue(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	reply, err := maxcomm.Unmarshal(reg, "{01;FB;19|64:PAC=zz|056A}")
	require.NoError(t, err)

	log, hook := test.NewNullLogger()
	dev := &fakeDevice{updates: map[string][]string{}}
	created := 0
	p := New("t", "n", fields(t, reg, "PAC"), dev.factory(&created), log)

	require.NoError(t, p.Publish(reply))
	assert.Empty(t, dev.updates["currentPower"])
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "PAC", hook.LastEntry().Data["field"])
}

func TestPublishCreateFails(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	reply, err := maxcomm.Unmarshal(reg, "{01;FB;19|64:PAC=zz|056A}")
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	boom := errors.New("boom")
	p := New("t", "n", nil, func(*device.Info) (Updater, error) { return nil, boom }, log)
	assert.True(t, errors.Is(p.Publish(reply), boom))
}
