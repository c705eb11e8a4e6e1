package maxcomm

import (
	"fmt"
	"strings"
)

// Item is one entry of a packet payload. A request for a field is sent
// without a value, data is sent with one.
type Item struct {
	Field    *Field
	Value    string
	HasValue bool
}

// Request returns an item asking for f.
func Request(f *Field) Item {
	return Item{Field: f}
}

// Data returns an item carrying raw as the value of f.
func Data(f *Field, raw string) Item {
	return Item{Field: f, Value: raw, HasValue: true}
}

// Packet is a frame sent to or received from a device. Payload keeps
// insertion order; every field appears at most once.
type Packet struct {
	Source      int
	Destination int
	Port        int
	Payload     []Item
}

// NewRequest returns a user data packet from the alternative network master
// to dest, asking for fields.
func NewRequest(dest int, fields ...*Field) *Packet {
	p := &Packet{
		Source:      AddrAlternativeNetworkMaster,
		Destination: dest,
		Port:        PortUserData,
	}
	for _, f := range fields {
		p.Set(Request(f))
	}
	return p
}

// Set adds it to the payload, replacing an existing entry for the same field.
func (p *Packet) Set(it Item) {
	for i := range p.Payload {
		if p.Payload[i].Field.ID == it.Field.ID {
			p.Payload[i] = it
			return
		}
	}
	p.Payload = append(p.Payload, it)
}

// Get returns the payload entry with the given field identifier.
func (p *Packet) Get(id string) (Item, bool) {
	for _, it := range p.Payload {
		if it.Field.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Merge copies the payload of o into p. Entries of o win.
func (p *Packet) Merge(o *Packet) {
	for _, it := range o.Payload {
		p.Set(it)
	}
}

// Characters that may not appear in identifiers and values. Values are
// split at the first value separator, so they may contain further ones.
const (
	idDelimiters    = "{}):;|="
	valueDelimiters = "{}):;|"
)

// Marshal builds the wire form of p:
//
//	{SS;DD;LL|PPPP:id1=val1;id2|CCCC}
func (p *Packet) Marshal() (string, error) {
	if p.Source < 0 || p.Source > 0xff {
		return "", fmt.Errorf("%w: source address %d", ErrRange, p.Source)
	}
	if p.Destination < 0 || p.Destination > 0xff {
		return "", fmt.Errorf("%w: destination address %d", ErrRange, p.Destination)
	}
	if p.Port < 0 {
		return "", fmt.Errorf("%w: port %d", ErrRange, p.Port)
	}

	var sb strings.Builder
	sb.WriteByte(startMarker)
	sumStart := sb.Len()
	fmt.Fprintf(&sb, "%02X%c%02X%c", p.Source, recordSep, p.Destination, recordSep)

	lengthPos := sb.Len()
	sb.WriteString("XX")
	fmt.Fprintf(&sb, "%c%X%c", groupSep, p.Port, unitSep)

	for i, it := range p.Payload {
		if strings.ContainsAny(it.Field.ID, idDelimiters) || strings.ContainsAny(it.Value, valueDelimiters) {
			return "", fmt.Errorf("%w: %s=%q contains a delimiter", ErrRange, it.Field.ID, it.Value)
		}
		if i > 0 {
			sb.WriteByte(recordSep)
		}
		sb.WriteString(it.Field.ID)
		if it.HasValue {
			sb.WriteByte(valueSep)
			sb.WriteString(it.Value)
		}
	}
	sb.WriteByte(groupSep)

	sumEnd := sb.Len()
	sb.WriteString("XXXX")
	sb.WriteByte(endMarker)

	frame := []byte(sb.String())
	if len(frame) > maxFrameSize {
		return "", fmt.Errorf("%w: %d characters", ErrTooLong, len(frame))
	}
	copy(frame[lengthPos:], fmt.Sprintf("%02X", len(frame)))
	copy(frame[sumEnd:], fmt.Sprintf("%04X", checksum(frame[sumStart:sumEnd])))
	return string(frame), nil
}

// Format returns a multi-line description of p with decoded values.
func (p *Packet) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %d\n", p.Source)
	fmt.Fprintf(&sb, "Destination: %d\n", p.Destination)
	fmt.Fprintf(&sb, "Port: %d\n", p.Port)
	for _, it := range p.Payload {
		f := it.Field
		if !it.HasValue {
			fmt.Fprintf(&sb, "%s (%s): no value\n", f.ID, f.Name)
			continue
		}
		s, err := f.Display(it.Value)
		if err != nil {
			s = fmt.Sprintf("%s (%v)", it.Value, err)
		}
		fmt.Fprintf(&sb, "%s (%s): %s\n", f.ID, f.Name, s)
	}
	return sb.String()
}

// checksum is the 16 bit sum of all bytes of b.
func checksum(b []byte) uint16 {
	var sum uint16
	for _, c := range b {
		sum += uint16(c)
	}
	return sum
}
