package repository

// FilterField is the closed set of student attributes a listing may filter on.
type FilterField string

const (
	FieldID          FilterField = "id"
	FieldUsername    FilterField = "username"
	FieldEmail       FilterField = "email"
	FieldStream      FilterField = "student_stream"
	FieldJoiningYear FilterField = "joining_year"
	FieldPassingYear FilterField = "passing_year"
	FieldPhoneNumber FilterField = "phone_number"
	FieldEnabled     FilterField = "enabled"
)

type Operator int

const (
	OpEqual Operator = iota
	// OpContains is a case-insensitive substring match on a text field.
	OpContains
)

func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "equal"
	case OpContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Condition is one predicate. Value is int64 for id and stream, int for the
// years, bool for enabled and string otherwise.
type Condition struct {
	Field FilterField
	Op    Operator
	Value any
}

// StudentFilter is an ordered conjunction of conditions.
type StudentFilter struct {
	Conditions []Condition
}

func (f *StudentFilter) Equal(field FilterField, v any) {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpEqual, Value: v})
}

func (f *StudentFilter) Contains(field FilterField, s string) {
	f.Conditions = append(f.Conditions, Condition{Field: field, Op: OpContains, Value: s})
}

// Lookup returns the first condition on field.
func (f StudentFilter) Lookup(field FilterField) (Condition, bool) {
	for _, c := range f.Conditions {
		if c.Field == field {
			return c, true
		}
	}
	return Condition{}, false
}
