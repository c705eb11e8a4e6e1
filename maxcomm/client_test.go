package maxcomm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice answers every written frame with the next canned reply.
// An empty reply behaves like a read timeout.
type fakeDevice struct {
	replies  []string
	requests []string
	pending  bytes.Buffer
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	d.requests = append(d.requests, string(p))
	if len(d.replies) > 0 {
		d.pending.WriteString(d.replies[0])
		d.replies = d.replies[1:]
	}
	return len(p), nil
}

func (d *fakeDevice) Read(p []byte) (int, error) {
	if d.pending.Len() == 0 {
		return 0, io.EOF
	}
	return d.pending.Read(p)
}

type recorder struct {
	errs []error
}

func (r *recorder) ObserveExchange(dest int, took time.Duration, err error) {
	r.errs = append(r.errs, err)
}

func testLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func TestClientRequest(t *testing.T) {
	dev := &fakeDevice{replies: []string{
		"{01;FB;28|64:PAC=2d;KDY=1f;UDC=c2a|094D}",
		"{01;FB;2A|64:SYS=4e23;SAL=0;TYP=4e34|09A5}",
	}}
	log, _ := testLogger()
	rec := &recorder{}
	c := NewClient(dev, testRegistry, log)
	c.Observer = rec

	fields := []*Field{
		field(t, "PAC"), field(t, "KDY"), field(t, "UDC"),
		field(t, "SYS"), field(t, "SAL"), field(t, "TYP"),
	}
	p, err := c.Request(context.Background(), 1, fields)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"{FB;01;1E|64:PAC;KDY;UDC|067F}",
		"{FB;01;1E|64:SYS;SAL;TYP|06C3}",
	}, dev.requests)
	assert.Equal(t, []error{nil, nil}, rec.errs)

	require.Len(t, p.Payload, 6)
	for i, f := range fields {
		assert.Equal(t, f, p.Payload[i].Field)
	}
	sal, _ := p.Get("SAL")
	v, err := sal.Field.Decode(sal.Value)
	require.NoError(t, err)
	assert.Equal(t, "No Error", v)
}

func TestClientPartialFailure(t *testing.T) {
	dev := &fakeDevice{replies: []string{
		"",
		"{01;FB;1B|64:KT0=3039|0549}",
	}}
	log, hook := testLogger()
	rec := &recorder{}
	c := NewClient(dev, testRegistry, log)
	c.Observer = rec
	c.BatchSize = 1

	p, err := c.Request(context.Background(), 1, []*Field{field(t, "PAC"), field(t, "KT0")})
	require.NoError(t, err)
	require.Len(t, p.Payload, 1)
	assert.Equal(t, "3039", p.Payload[0].Value)

	require.Len(t, rec.errs, 2)
	assert.Equal(t, ErrNoReply, rec.errs[0])
	assert.NoError(t, rec.errs[1])

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestClientNoReply(t *testing.T) {
	log, _ := testLogger()
	c := NewClient(&fakeDevice{}, testRegistry, log)
	p, err := c.Request(context.Background(), 1, []*Field{field(t, "PAC")})
	assert.Nil(t, p)
	assert.Equal(t, ErrNoReply, err)
}

func TestClientBadReply(t *testing.T) {
	dev := &fakeDevice{replies: []string{"{FB;00;18|64:PDC=0|04A8}"}}
	log, _ := testLogger()
	c := NewClient(dev, testRegistry, log)
	_, err := c.Request(context.Background(), 0, []*Field{field(t, "PDC")})
	assert.True(t, errors.Is(err, ErrChecksum), "got %v", err)
}

func TestClientCanceled(t *testing.T) {
	log, _ := testLogger()
	dev := &fakeDevice{}
	c := NewClient(dev, testRegistry, log)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Request(ctx, 1, []*Field{field(t, "PAC")})
	assert.Equal(t, context.Canceled, err)
	assert.Empty(t, dev.requests)
}

func TestClientExchange(t *testing.T) {
	dev := &fakeDevice{replies: []string{"{FB;00;1D|64:CLR;PAC=2d|0632}"}}
	log, _ := testLogger()
	c := NewClient(dev, testRegistry, log)

	req := &Packet{Source: AddrAlternativeNetworkMaster, Destination: 0, Port: PortCommand}
	req.Set(Request(field(t, "CLR")))
	reply, err := c.Exchange(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"{FB;00;16|C8:CLR|0453}"}, dev.requests)
	_, ok := reply.Get("CLR")
	assert.True(t, ok)
}
