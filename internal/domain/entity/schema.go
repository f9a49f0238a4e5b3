package entity

// ColumnKind classifies how a source column is parsed and validated.
type ColumnKind int

const (
	ColumnDate ColumnKind = iota
	ColumnStatus
	ColumnCategory
	ColumnNumber
	ColumnGeo
)

// Column describes one expected source column: its canonical field name, how
// it is parsed, and the header spellings it may appear under.
type Column struct {
	Name       string
	Kind       ColumnKind
	Required   bool
	Aliases    []string
	EmptyValue string
}

// Schema is the explicit column contract a loader validates against, checked
// once at load time.
type Schema struct {
	Profile string
	Columns []Column
}

// Column looks up a column by canonical field name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasField reports whether the schema carries the named field.
func (s Schema) HasField(name string) bool {
	_, ok := s.Column(name)
	return ok
}

// DateColumn returns the schema's date column.
func (s Schema) DateColumn() (Column, bool) {
	for _, c := range s.Columns {
		if c.Kind == ColumnDate {
			return c, true
		}
	}
	return Column{}, false
}

// StatusColumn returns the schema's status column.
func (s Schema) StatusColumn() (Column, bool) {
	for _, c := range s.Columns {
		if c.Kind == ColumnStatus {
			return c, true
		}
	}
	return Column{}, false
}

// Flight status values.
const (
	StatusOnTime    = "on_time"
	StatusDelayed   = "delayed"
	StatusCancelled = "cancelled"
	StatusDiverted  = "diverted"
)

// FlightSchema describes per-event flight performance extracts.
func FlightSchema() Schema {
	return Schema{
		Profile: "flight",
		Columns: []Column{
			{Name: "date", Kind: ColumnDate, Required: true, Aliases: []string{"flight_date", "fl_date"}},
			{Name: "status", Kind: ColumnStatus, Required: true, Aliases: []string{"flight_status"}, EmptyValue: "unknown"},
			{Name: "delay_type", Kind: ColumnCategory, Aliases: []string{"delay_cause", "cause"}},
			{Name: "delay_minutes", Kind: ColumnNumber, Aliases: []string{"arr_delay", "delay", "delay_min"}},
			{Name: "airline", Kind: ColumnCategory, Aliases: []string{"carrier", "op_carrier", "carrier_name"}},
			{Name: "origin", Kind: ColumnGeo, Aliases: []string{"origin_state", "state"}},
		},
	}
}

// WildlifeSchema describes the cleaned FAA wildlife strike database extract.
func WildlifeSchema() Schema {
	return Schema{
		Profile: "wildlife",
		Columns: []Column{
			{Name: "incident_date", Kind: ColumnDate, Required: true, Aliases: []string{"date"}},
			{Name: "damage", Kind: ColumnStatus, Aliases: []string{"damage_level", "effect"}, EmptyValue: "None"},
			{Name: "species", Kind: ColumnCategory, Aliases: []string{"species_name", "wildlife_species"}},
			{Name: "phase_of_flight", Kind: ColumnCategory, Aliases: []string{"phase_of_flt", "phase"}},
			{Name: "time_of_day", Kind: ColumnCategory},
			{Name: "aircraft", Kind: ColumnCategory, Aliases: []string{"aircraft_type", "ac_type"}},
			{Name: "airport", Kind: ColumnCategory, Aliases: []string{"airport_name"}},
			{Name: "state", Kind: ColumnGeo, Aliases: []string{"origin_state"}},
			{Name: "height", Kind: ColumnNumber, Aliases: []string{"height_ft"}},
			{Name: "speed", Kind: ColumnNumber, Aliases: []string{"speed_kts"}},
		},
	}
}

// SchemaForProfile resolves a profile name to its schema.
func SchemaForProfile(profile string) (Schema, bool) {
	switch profile {
	case "flight":
		return FlightSchema(), true
	case "wildlife":
		return WildlifeSchema(), true
	}
	return Schema{}, false
}
