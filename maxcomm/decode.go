package maxcomm

import (
	"fmt"
	"strings"
)

// Unmarshal parses a reply consisting of one or more fragments. Fragments
// end with '}' or ')'; their payloads are merged into one packet, later
// fragments overwriting fields of earlier ones. Any failure discards the
// whole reply.
func Unmarshal(reg *Registry, msg string) (*Packet, error) {
	if msg == "" {
		return nil, ErrNoReply
	}
	fragments := strings.Split(strings.ReplaceAll(msg, string(fragmentEnd), string(endMarker)), string(endMarker))
	for len(fragments) > 1 && fragments[len(fragments)-1] == "" {
		fragments = fragments[:len(fragments)-1]
	}

	p := &Packet{}
	for _, fr := range fragments {
		if err := parseFragment(reg, fr+string(endMarker), p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func parseFragment(reg *Registry, fragment string, p *Packet) error {
	buf := newBuffer(fragment)

	if err := buf.Expect(startMarker); err != nil {
		return err
	}
	sumStart := buf.pos

	src, err := buf.ReadHex(2)
	if err != nil {
		return err
	}
	if err := buf.Expect(recordSep); err != nil {
		return err
	}
	dst, err := buf.ReadHex(2)
	if err != nil {
		return err
	}
	if err := buf.Expect(recordSep); err != nil {
		return err
	}

	length, err := buf.ReadHex(2)
	if err != nil {
		return err
	}
	if length != len(fragment) {
		return buf.fail(ErrLength, "declared %d, actual %d", length, len(fragment))
	}

	if err := buf.Expect(groupSep); err != nil {
		return err
	}
	port, err := buf.ReadHexUntil(unitSep)
	if err != nil {
		return err
	}
	if err := buf.Expect(unitSep); err != nil {
		return err
	}

	dataStart := buf.pos
	data, err := buf.ReadUntil(groupSep)
	if err != nil {
		return err
	}
	if err := buf.Expect(groupSep); err != nil {
		return err
	}

	want := checksum([]byte(fragment[sumStart:buf.pos]))
	sumPos := buf.pos
	got, err := buf.ReadHex(4)
	if err != nil {
		return err
	}
	if uint16(got) != want {
		buf.pos = sumPos
		return buf.fail(ErrChecksum, "frame has %04X, calculated %04X", got, want)
	}
	if err := buf.Expect(endMarker); err != nil {
		return err
	}

	items, off, err := parseData(reg, data)
	if err != nil {
		buf.pos = dataStart + off
		return buf.fail(err, "")
	}

	p.Source = src
	p.Destination = dst
	p.Port = port
	for _, it := range items {
		p.Set(it)
	}
	return nil
}

// parseData splits the data segment into items. On failure it also returns
// the offset of the offending item within data.
func parseData(reg *Registry, data string) ([]Item, int, error) {
	if data == "" {
		return nil, 0, nil
	}
	var items []Item
	off := 0
	for _, datum := range strings.Split(data, string(recordSep)) {
		id, value, hasValue := datum, "", false
		if i := strings.IndexByte(datum, valueSep); i >= 0 {
			id, value, hasValue = datum[:i], datum[i+1:], true
		}
		f, ok := reg.Lookup(id)
		if !ok {
			return nil, off, fmt.Errorf("%w: %q", ErrUnknownField, id)
		}
		items = append(items, Item{Field: f, Value: value, HasValue: hasValue})
		off += len(datum) + 1
	}
	return items, 0, nil
}
