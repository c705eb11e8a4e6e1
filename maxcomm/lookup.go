package maxcomm

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupTable converts integer codes to text and back.
// Backward(Forward(i)) yields i, but Forward(Backward(s)) may differ from s
// since the textual form is not unique.
type LookupTable interface {
	Forward(code int) string
	Backward(label string) (int, error)
}

const unknownCode = "unknown-code-"

// EnumTable maps exact codes to labels. Unregistered codes are rendered
// as "unknown-code-<N>", which Backward accepts as well.
type EnumTable struct {
	forward  map[int]string
	backward map[string]int
}

func NewEnumTable() *EnumTable {
	return &EnumTable{
		forward:  map[int]string{},
		backward: map[string]int{},
	}
}

// Add registers a code/label pair. Neither may already be present.
func (t *EnumTable) Add(code int, label string) error {
	if _, ok := t.forward[code]; ok {
		return fmt.Errorf("%w: code %d", ErrDuplicate, code)
	}
	if _, ok := t.backward[label]; ok {
		return fmt.Errorf("%w: label %q", ErrDuplicate, label)
	}
	t.forward[code] = label
	t.backward[label] = code
	return nil
}

func (t *EnumTable) Len() int {
	return len(t.forward)
}

func (t *EnumTable) Forward(code int) string {
	if s, ok := t.forward[code]; ok {
		return s
	}
	return unknownCode + strconv.Itoa(code)
}

func (t *EnumTable) Backward(label string) (int, error) {
	if strings.HasPrefix(label, unknownCode) {
		n, err := strconv.Atoi(label[len(unknownCode):])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, label)
		}
		return n, nil
	}
	code, ok := t.backward[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrLookupMiss, label)
	}
	return code, nil
}

const (
	bitDelimiter = ", "
	unknownBit   = "unknown-bit-"
	maxBits      = 32
)

// BitmaskTable names each bit of a code. Bits are assigned in the order
// they are added, starting at bit 0.
type BitmaskTable struct {
	zero string
	bits []string
}

func NewBitmaskTable(zero string) *BitmaskTable {
	return &BitmaskTable{zero: zero}
}

func (t *BitmaskTable) Add(label string) error {
	if label == t.zero {
		return fmt.Errorf("%w: label %q", ErrDuplicate, label)
	}
	for _, b := range t.bits {
		if b == label {
			return fmt.Errorf("%w: label %q", ErrDuplicate, label)
		}
	}
	t.bits = append(t.bits, label)
	return nil
}

func (t *BitmaskTable) Len() int {
	return len(t.bits)
}

// Forward joins the labels of all set bits in ascending order. Bits without
// a label are rendered as "unknown-bit-<N>".
func (t *BitmaskTable) Forward(code int) string {
	if code == 0 {
		return t.zero
	}
	var set []string
	for bit := 0; bit < maxBits; bit++ {
		if code&(1<<bit) == 0 {
			continue
		}
		if bit < len(t.bits) {
			set = append(set, t.bits[bit])
		} else {
			set = append(set, unknownBit+strconv.Itoa(bit))
		}
	}
	return strings.Join(set, bitDelimiter)
}

func (t *BitmaskTable) Backward(label string) (int, error) {
	if label == t.zero {
		return 0, nil
	}
	code := 0
	for _, s := range strings.Split(label, bitDelimiter) {
		bit := t.indexOf(s)
		if bit < 0 && strings.HasPrefix(s, unknownBit) {
			n, err := strconv.Atoi(s[len(unknownBit):])
			if err != nil || n < 0 || n >= maxBits {
				return 0, fmt.Errorf("%w: bit label %q", ErrMalformedNumber, s)
			}
			bit = n
		}
		if bit < 0 {
			return 0, fmt.Errorf("%w: bit label %q", ErrLookupMiss, s)
		}
		code |= 1 << bit
	}
	return code, nil
}

func (t *BitmaskTable) indexOf(label string) int {
	for i, b := range t.bits {
		if b == label {
			return i
		}
	}
	return -1
}
