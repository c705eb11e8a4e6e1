package maxcomm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind selects how a field's raw payload is encoded on the wire.
type Kind int

const (
	// KindCommand fields carry no data and are only ever sent bare.
	KindCommand Kind = iota
	KindInteger
	KindDecimal
	KindDate
	KindTime
	KindLookup
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindLookup:
		return "lookup"
	case KindRaw:
		return "raw"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field describes one data item the device exposes. Which of the
// parameters are used depends on Kind:
//
//	KindInteger  Offset, Unit
//	KindDecimal  Offset, Factor, Unit
//	KindLookup   Table
//
// Length is the maximum number of characters of the encoded value.
type Field struct {
	ID     string
	Name   string
	Kind   Kind
	Length int
	Offset int
	Factor float64
	Unit   string
	Table  LookupTable
}

// Date is a calendar date as exchanged with the device.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Clock is a time of day as exchanged with the device.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func Command(id, name string) *Field {
	return &Field{ID: id, Name: name, Kind: KindCommand}
}

func Integer(id, name string, length, offset int, unit string) *Field {
	return &Field{ID: id, Name: name, Kind: KindInteger, Length: length, Offset: offset, Unit: unit}
}

func Decimal(id, name string, length, offset int, factor float64, unit string) *Field {
	return &Field{ID: id, Name: name, Kind: KindDecimal, Length: length, Offset: offset, Factor: factor, Unit: unit}
}

func DateField(id, name string, length int) *Field {
	return &Field{ID: id, Name: name, Kind: KindDate, Length: length}
}

func TimeField(id, name string, length int) *Field {
	return &Field{ID: id, Name: name, Kind: KindTime, Length: length}
}

func Lookup(id, name string, length int, table LookupTable) *Field {
	return &Field{ID: id, Name: name, Kind: KindLookup, Length: length, Table: table}
}

func Raw(id, name string, length int) *Field {
	return &Field{ID: id, Name: name, Kind: KindRaw, Length: length}
}

func (f *Field) String() string {
	return f.ID
}

// IsData reports whether the field carries a value.
func (f *Field) IsData() bool {
	return f.Kind != KindCommand
}

// UnitLabel returns the unit of numeric fields and "" for all others.
func (f *Field) UnitLabel() string {
	switch f.Kind {
	case KindInteger, KindDecimal:
		return f.Unit
	}
	return ""
}

// Decimals is the number of fraction digits shown for decimal fields.
func (f *Field) Decimals() int {
	if f.Kind != KindDecimal || f.Factor <= 0 || f.Factor >= 1 {
		return 0
	}
	return int(math.Ceil(-math.Log10(f.Factor) - 1e-9))
}

// Decode converts a raw wire value into its typed form. The empty string
// decodes to nil. The result is an int, float64, Date, Clock or string
// depending on the field kind.
func (f *Field) Decode(raw string) (interface{}, error) {
	if raw == "" {
		return nil, nil
	}
	switch f.Kind {
	case KindCommand:
		return nil, fmt.Errorf("%s: command field carries no value", f.ID)
	case KindInteger:
		n, err := parseHex(raw)
		if err != nil {
			return nil, err
		}
		return n - f.Offset, nil
	case KindDecimal:
		n, err := parseHex(raw)
		if err != nil {
			return nil, err
		}
		return f.round(float64(n-f.Offset) * f.Factor), nil
	case KindDate:
		v, err := parseTriple(raw)
		if err != nil {
			return nil, err
		}
		d := Date{Year: v[0], Month: time.Month(v[1]), Day: v[2]}
		if !validDate(d) {
			return nil, fmt.Errorf("%w: invalid date %q", ErrRange, raw)
		}
		return d, nil
	case KindTime:
		v, err := parseTriple(raw)
		if err != nil {
			return nil, err
		}
		c := Clock{Hour: v[0], Minute: v[1], Second: v[2]}
		if !validClock(c) {
			return nil, fmt.Errorf("%w: invalid time %q", ErrRange, raw)
		}
		return c, nil
	case KindLookup:
		n, err := parseHex(raw)
		if err != nil {
			return nil, err
		}
		return f.Table.Forward(n), nil
	case KindRaw:
		return raw, nil
	}
	return nil, fmt.Errorf("%s: unsupported kind %v", f.ID, f.Kind)
}

// Encode converts a typed value into its raw wire form. nil encodes to the
// empty string.
func (f *Field) Encode(value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	var s string
	switch f.Kind {
	case KindCommand:
		return "", fmt.Errorf("%s: command field carries no value", f.ID)
	case KindInteger:
		v, ok := value.(int)
		if !ok {
			return "", f.typeError(value)
		}
		if v+f.Offset < 0 {
			return "", fmt.Errorf("%w: %s: %d is below the minimum of %d", ErrRange, f.ID, v, -f.Offset)
		}
		s = strconv.FormatInt(int64(v+f.Offset), 16)
	case KindDecimal:
		v, ok := value.(float64)
		if !ok {
			return "", f.typeError(value)
		}
		n := math.Round(v/f.Factor + float64(f.Offset))
		if n < 0 || math.IsNaN(n) {
			return "", fmt.Errorf("%w: %s: %v is below the minimum of %v", ErrRange, f.ID, v, float64(-f.Offset)*f.Factor)
		}
		if n > math.MaxInt64 {
			return "", fmt.Errorf("%w: %s: %v is too large", ErrRange, f.ID, v)
		}
		s = strconv.FormatInt(int64(n), 16)
	case KindDate:
		v, ok := value.(Date)
		if !ok {
			return "", f.typeError(value)
		}
		if !validDate(v) {
			return "", fmt.Errorf("%w: %s: invalid date %v", ErrRange, f.ID, v)
		}
		s = formatTriple(v.Year, int(v.Month), v.Day)
	case KindTime:
		v, ok := value.(Clock)
		if !ok {
			return "", f.typeError(value)
		}
		if !validClock(v) {
			return "", fmt.Errorf("%w: %s: invalid time %v", ErrRange, f.ID, v)
		}
		s = formatTriple(v.Hour, v.Minute, v.Second)
	case KindLookup:
		v, ok := value.(string)
		if !ok {
			return "", f.typeError(value)
		}
		n, err := f.Table.Backward(v)
		if err != nil {
			return "", fmt.Errorf("%s: %w", f.ID, err)
		}
		if n < 0 {
			return "", fmt.Errorf("%w: %s: code %d is negative", ErrRange, f.ID, n)
		}
		s = strconv.FormatInt(int64(n), 16)
	case KindRaw:
		v, ok := value.(string)
		if !ok {
			return "", f.typeError(value)
		}
		s = v
	default:
		return "", fmt.Errorf("%s: unsupported kind %v", f.ID, f.Kind)
	}
	if len(s) > f.Length {
		return "", fmt.Errorf("%w: %s: encoding %v as %q exceeds the maximum length of %d", ErrRange, f.ID, value, s, f.Length)
	}
	return s, nil
}

// Format renders a decoded value for humans, without unit. nil renders as "".
func (f *Field) Format(value interface{}) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', f.Decimals(), 64)
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	}
	return fmt.Sprint(value)
}

// Display decodes raw and formats it together with the unit.
func (f *Field) Display(raw string) (string, error) {
	v, err := f.Decode(raw)
	if err != nil {
		return "", err
	}
	s := f.Format(v)
	if u := f.UnitLabel(); u != "" && v != nil {
		s += " " + u
	}
	return s, nil
}

func (f *Field) typeError(value interface{}) error {
	return fmt.Errorf("%s: cannot encode %T as %v", f.ID, value, f.Kind)
}

func (f *Field) round(v float64) float64 {
	p := math.Pow10(f.Decimals())
	return math.Round(v*p) / p
}

func parseHex(s string) (int, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return int(n), nil
}

func parseTriple(s string) ([3]int, error) {
	var v [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("%w: expected three comma separated values in %q", ErrMalformedNumber, s)
	}
	for i, p := range parts {
		n, err := parseHex(p)
		if err != nil {
			return v, err
		}
		v[i] = n
	}
	return v, nil
}

func formatTriple(a, b, c int) string {
	return strconv.FormatInt(int64(a), 16) + "," +
		strconv.FormatInt(int64(b), 16) + "," +
		strconv.FormatInt(int64(c), 16)
}

func validDate(d Date) bool {
	if d.Year < 0 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

func validClock(c Clock) bool {
	return c.Hour >= 0 && c.Hour < 24 &&
		c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60
}
