package publish

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"lib.hemtjan.st/client"
	"lib.hemtjan.st/device"
	"lib.hemtjan.st/feature"

	"hemtjan.st/solarmax/maxcomm"
)

const (
	// Re-use currentPower from hemtjanst for the AC output
	currentPower = string(feature.CurrentPower)
	// Energy counters are produced, not used, by an inverter
	energyProduced      = "energyProduced"
	energyProducedToday = "energyProducedToday"
	online              = "online"
)

var wellKnown = map[string]string{
	"PAC": currentPower,
	"KT0": energyProduced,
	"KDY": energyProducedToday,
}

// Updater sets the value of a feature of a hemtjanst device.
type Updater interface {
	Update(feature, value string) error
}

// Factory creates the hemtjanst device described by info.
type Factory func(info *device.Info) (Updater, error)

// FromClient adapts a hemtjanst client device.
func FromClient(d client.Device) Updater {
	return clientDevice{d}
}

type clientDevice struct {
	d client.Device
}

func (c clientDevice) Update(name, value string) error {
	return c.d.Feature(name).Update(value)
}

// Publisher forwards decoded inverter readings to a hemtjanst device.
type Publisher struct {
	Topic  string
	Name   string
	fields []*maxcomm.Field
	create Factory
	dev    Updater
	log    logrus.FieldLogger
}

// New returns a publisher for fields. The device itself is created once
// the first reply has been received, since the model is only known then.
func New(topic, name string, fields []*maxcomm.Field, create Factory, log logrus.FieldLogger) *Publisher {
	return &Publisher{
		Topic:  topic,
		Name:   name,
		fields: fields,
		create: create,
		log:    log,
	}
}

// FeatureName returns the hemtjanst feature used for f.
func FeatureName(f *maxcomm.Field) string {
	if n, ok := wellKnown[f.ID]; ok {
		return n
	}
	var sb strings.Builder
	for i, w := range strings.Fields(f.Name) {
		r := []rune(strings.ToLower(w))
		if i > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		sb.WriteString(string(r))
	}
	return sb.String()
}

func (p *Publisher) info(reply *maxcomm.Packet) *device.Info {
	info := &device.Info{
		Topic:        p.Topic,
		Name:         p.Name,
		Manufacturer: "SolarMax",
		Type:         "solarInverter",
		Features:     map[string]*feature.Info{online: {}},
	}
	for _, f := range p.fields {
		if f.IsData() {
			info.Features[FeatureName(f)] = &feature.Info{}
		}
	}
	if it, ok := reply.Get("TYP"); ok && it.HasValue {
		if v, err := it.Field.Decode(it.Value); err == nil && v != nil {
			info.Model = it.Field.Format(v)
		}
	}
	if it, ok := reply.Get("ADR"); ok && it.HasValue {
		info.SerialNumber = fmt.Sprintf("address-%s", it.Value)
	}
	return info
}

// Publish updates one feature per value carried by reply.
func (p *Publisher) Publish(reply *maxcomm.Packet) error {
	if p.dev == nil {
		dev, err := p.create(p.info(reply))
		if err != nil {
			return fmt.Errorf("creating device: %w", err)
		}
		p.dev = dev
	}

	_ = p.dev.Update(online, "1")
	for _, it := range reply.Payload {
		if !it.HasValue || !it.Field.IsData() {
			continue
		}
		v, err := it.Field.Decode(it.Value)
		if err != nil {
			p.log.WithError(err).WithField("field", it.Field.ID).Warn("Could not decode value")
			continue
		}
		if v == nil {
			continue
		}
		if err := p.dev.Update(FeatureName(it.Field), it.Field.Format(v)); err != nil {
			p.log.WithError(err).WithField("field", it.Field.ID).Warn("Could not publish value")
		}
	}
	return nil
}

// Offline marks the device as unreachable. Nothing is published before the
// device has been created.
func (p *Publisher) Offline() {
	if p.dev != nil {
		_ = p.dev.Update(online, "0")
	}
}
