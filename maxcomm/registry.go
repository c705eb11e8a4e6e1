package maxcomm

import "fmt"

// Registry is the catalog of known fields. It is not modified after
// construction and may be shared between goroutines.
type Registry struct {
	fields []*Field
	byID   map[string]*Field
}

// NewRegistry builds a registry from fields. Identifiers must be unique.
func NewRegistry(fields ...*Field) (*Registry, error) {
	r := &Registry{
		fields: make([]*Field, 0, len(fields)),
		byID:   make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		if f.ID == "" {
			return nil, fmt.Errorf("field %q has no identifier", f.Name)
		}
		if _, ok := r.byID[f.ID]; ok {
			return nil, fmt.Errorf("%w: field %s", ErrDuplicate, f.ID)
		}
		r.byID[f.ID] = f
		r.fields = append(r.fields, f)
	}
	return r, nil
}

// Lookup returns the field with the given identifier.
func (r *Registry) Lookup(id string) (*Field, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// Fields returns all fields in registration order.
func (r *Registry) Fields() []*Field {
	return append([]*Field(nil), r.fields...)
}

// DataFields returns all fields that carry a value.
func (r *Registry) DataFields() []*Field {
	var out []*Field
	for _, f := range r.fields {
		if f.IsData() {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.fields)
}

// DefaultRegistry returns a newly built catalog of every field known for
// SolarMax inverters.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Catalog()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Catalog returns fresh definitions of all known fields.
func Catalog() []*Field {
	return []*Field{
		Command("CLR", "Clear energy counters"),
		Integer("ADR", "Network address", 4, 0, ""),
		DateField("DATE", "Date", 10),
		Integer("DDY", "Date day", 4, 0, "d"),
		Integer("DMT", "Date month", 4, 0, "m"),
		Integer("DYR", "Date year", 4, 0, "a"),
		Decimal("I1D", "Pulse counter 1 day", 8, 0, 0.1, "kWh"),
		Decimal("I1P", "Pulse counter 1 power", 8, 0, 0.5, "W"),
		Integer("I1S", "Pulse counter 1 scaling", 4, 0, ""),
		Decimal("I1T", "Pulse counter 1 total", 8, 0, 0.1, "kWh"),
		Decimal("I1Y", "Pulse counter 1 year", 8, 0, 0.1, "kWh"),
		Decimal("I2D", "Pulse counter 2 day", 8, 0, 0.1, "kWh"),
		Decimal("I2P", "Pulse counter 2 power", 8, 0, 0.5, "W"),
		Integer("I2S", "Pulse counter 2 scaling", 4, 0, ""),
		Decimal("I2T", "Pulse counter 2 total", 8, 0, 0.1, "kWh"),
		Decimal("I2Y", "Pulse counter 2 year", 8, 0, 0.1, "kWh"),
		Decimal("IDC", "Current DC", 4, 0, 0.01, "A"),
		Decimal("IL1", "Current phase 1", 4, 0, 0.01, "A"),
		Decimal("IL2", "Current phase 2", 4, 0, 0.01, "A"),
		Decimal("IL3", "Current phase 3", 4, 0, 0.01, "A"),
		Decimal("KDY", "Energy day", 8, 0, 0.1, "kWh"),
		Integer("KHR", "Operating hours", 8, 0, ""),
		Integer("KMT", "Energy month", 8, 0, "kWh"),
		Integer("KT0", "Energy total", 8, 0, "kWh"),
		Integer("KYR", "Energy year", 8, 0, "kWh"),
		Decimal("PAC", "AC output", 8, 0, 0.5, "W"),
		Decimal("PIN", "Installed capacity", 8, 0, 0.5, "W"),
		Integer("PRL", "Relative output", 4, 0, "%"),
		Integer("RAD", "Solar radiation", 4, 0, "W/m²"),
		Decimal("RDY", "Solar energy day", 4, 0, 0.1, "kWh/m²"),
		Decimal("RT0", "Solar energy total", 4, 0, 0.1, "kWh/m²"),
		Decimal("RYR", "Solar energy year", 4, 0, 0.1, "kWh/m²"),
		Integer("SWV", "Software version", 4, 0, ""),
		Integer("THR", "Time hour", 4, 0, "h"),
		TimeField("TIME", "Time", 8),
		Integer("TK2", "Temperature power unit 2", 4, 0, "°C"),
		Integer("TK3", "Temperature power unit 3", 4, 0, "°C"),
		Integer("TKK", "Temperature power unit 1", 4, 0, "°C"),
		Integer("TMI", "Time minute", 4, 0, "min"),
		Integer("TNP", "Mains cycle duration", 4, 0, "µs"),
		Integer("TSZ", "Temperature solar cells", 4, 32767, "°C"),
		Decimal("UDC", "Voltage DC", 4, 0, 0.1, "V"),
		Decimal("UL1", "Voltage phase 1", 4, 0, 0.1, "V"),
		Decimal("UL2", "Voltage phase 2", 4, 0, 0.1, "V"),
		Decimal("UL3", "Voltage phase 3", 4, 0, 0.1, "V"),
		Integer("CAC", "Start ups", 8, 0, ""),
		Integer("E11", "Error 1 number", 8, 0, ""),
		Integer("E1D", "Error 1 day", 4, 0, "d"),
		Integer("E1h", "Error 1 hour", 4, 0, "h"),
		Integer("E1M", "Error 1 month", 4, 0, "m"),
		Integer("E1m", "Error 1 minute", 4, 0, "min"),
		Integer("E21", "Error 2 number", 8, 0, ""),
		Integer("E2D", "Error 2 day", 4, 0, "d"),
		Integer("E2h", "Error 2 hour", 4, 0, "h"),
		Integer("E2M", "Error 2 month", 4, 0, "m"),
		Integer("E2m", "Error 2 minute", 4, 0, "min"),
		Integer("E31", "Error 3 number", 8, 0, ""),
		Integer("E3D", "Error 3 day", 4, 0, "d"),
		Integer("E3h", "Error 3 hour", 4, 0, "h"),
		Integer("E3M", "Error 3 month", 4, 0, "m"),
		Integer("E3m", "Error 3 minute", 4, 0, "min"),
		Decimal("KLD", "Energy last day", 8, 0, 0.1, "kWh"),
		Integer("KLM", "Energy last month", 8, 0, "kWh"),
		Integer("KLY", "Energy last year", 8, 0, "kWh"),
		Integer("LAN", "Language", 8, 0, ""),
		Decimal("PDC", "DC input", 8, 0, 0.5, "W"),
		Decimal("TNF", "Generated frequency", 4, 0, 0.1, "Hz"),
		Decimal("UD01", "String 1 voltage", 4, 0, 0.1, "V"),
		Decimal("ID01", "String 1 current", 4, 0, 0.01, "A"),
		Decimal("UD02", "String 2 voltage", 4, 0, 0.1, "V"),
		Decimal("ID02", "String 2 current", 4, 0, 0.01, "A"),
		Decimal("UD03", "String 3 voltage", 4, 0, 0.1, "V"),
		Decimal("ID03", "String 3 current", 4, 0, 0.01, "A"),
		Integer("EC01", "Error code 1", 4, 0, ""),
		Integer("EC02", "Error code 2", 4, 0, ""),
		Integer("EC03", "Error code 3", 4, 0, ""),
		Integer("EC04", "Error code 4", 4, 0, ""),
		Integer("EC05", "Error code 5", 4, 0, ""),
		Integer("EC06", "Error code 6", 4, 0, ""),
		Integer("EC07", "Error code 7", 4, 0, ""),
		Integer("EC08", "Error code 8", 4, 0, ""),
		Integer("BDN", "Build number", 4, 0, ""),
		Lookup("TYP", "Type", 4, NewDeviceTable()),
		Lookup("SYS", "System status", 4, NewStatusTable()),
		Lookup("SAL", "System alarms", 4, NewAlarmTable()),
	}
}
