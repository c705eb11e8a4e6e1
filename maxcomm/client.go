package maxcomm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is the number of fields asked for in a single frame.
// Devices tend to drop requests for many fields at once.
const DefaultBatchSize = 3

// Observer is notified about every request/reply round trip.
type Observer interface {
	ObserveExchange(dest int, took time.Duration, err error)
}

// Client talks to devices over a serial line, one frame at a time.
type Client struct {
	Source    int
	BatchSize int
	Observer  Observer

	w   io.Writer
	r   Reader
	reg *Registry
	log logrus.FieldLogger
}

func NewClient(rw io.ReadWriter, reg *Registry, log logrus.FieldLogger) *Client {
	return &Client{
		Source:    AddrAlternativeNetworkMaster,
		BatchSize: DefaultBatchSize,
		w:         rw,
		r:         NewReader(rw),
		reg:       reg,
		log:       log,
	}
}

// Exchange sends req and waits for the reply.
func (c *Client) Exchange(req *Packet) (*Packet, error) {
	start := time.Now()
	reply, err := c.exchange(req)
	if c.Observer != nil {
		c.Observer.ObserveExchange(req.Destination, time.Since(start), err)
	}
	return reply, err
}

func (c *Client) exchange(req *Packet) (*Packet, error) {
	msg, err := req.Marshal()
	if err != nil {
		return nil, err
	}
	c.log.WithField("frame", msg).Debug("Sending request")
	if _, err := io.WriteString(c.w, msg); err != nil {
		return nil, fmt.Errorf("writing request: %w", err)
	}

	fr, err := c.r.ReadFrame()
	if err != nil {
		return nil, err
	}
	c.log.WithField("frame", fr).Debug("Got reply")
	return Unmarshal(c.reg, fr)
}

// Request asks dest for fields, BatchSize fields per frame, and merges the
// replies. Failed batches are logged and skipped; an error is returned only
// if no batch was answered.
func (c *Client) Request(ctx context.Context, dest int, fields []*Field) (*Packet, error) {
	size := c.BatchSize
	if size < 1 {
		size = DefaultBatchSize
	}

	var (
		result  *Packet
		lastErr error
	)
	for i := 0; i < len(fields); i += size {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		end := i + size
		if end > len(fields) {
			end = len(fields)
		}
		req := NewRequest(dest, fields[i:end]...)
		req.Source = c.Source

		reply, err := c.Exchange(req)
		if err != nil {
			c.log.WithError(err).WithField("fields", fields[i:end]).Warn("Request failed")
			lastErr = err
			continue
		}
		c.log.Debug(reply.Format())
		if result == nil {
			result = reply
		} else {
			result.Merge(reply)
		}
	}
	if result == nil {
		if lastErr == nil {
			lastErr = ErrNoReply
		}
		return nil, lastErr
	}
	return result, nil
}
