package main

// CanonicalField is one of the fixed output schema's column names.
type CanonicalField string

const (
	FieldUUID      CanonicalField = "uuid"
	FieldEmail     CanonicalField = "email"
	FieldFullName  CanonicalField = "fullName"
	FieldFirstName CanonicalField = "firstName"
	FieldLastName  CanonicalField = "lastName"
	FieldCompany   CanonicalField = "company"
	FieldDomain    CanonicalField = "domain"
	FieldPlan      CanonicalField = "plan"
	FieldMRR       CanonicalField = "mrr"
	FieldARR       CanonicalField = "arr"
	FieldNPS       CanonicalField = "nps"
	FieldChurnFlag CanonicalField = "churnFlag"
	FieldCreatedAt CanonicalField = "createdAt"
	FieldLastSeen  CanonicalField = "lastSeen"
	FieldPhone     CanonicalField = "phone"
	FieldCountry   CanonicalField = "country"
	FieldState     CanonicalField = "state"
	FieldCity      CanonicalField = "city"
	FieldZip       CanonicalField = "zip"
	FieldNotes     CanonicalField = "notes"
	FieldOther     CanonicalField = "other"
)

// CanonicalOrder fixes the output column positions. Columns classified as
// "other" are appended after these, in their original input order.
var CanonicalOrder = []CanonicalField{
	FieldUUID, FieldEmail, FieldFullName, FieldFirstName, FieldLastName,
	FieldCompany, FieldDomain, FieldPlan, FieldMRR, FieldARR, FieldNPS,
	FieldChurnFlag, FieldCreatedAt, FieldLastSeen, FieldPhone, FieldCountry,
	FieldState, FieldCity, FieldZip, FieldNotes,
}

var fieldOrderIndex = func() map[CanonicalField]int {
	m := make(map[CanonicalField]int, len(CanonicalOrder))
	for i, f := range CanonicalOrder {
		m[f] = i
	}
	return m
}()

// OrderIndex returns the field's position in the canonical output order.
// "other" sorts after every canonical field.
func (f CanonicalField) OrderIndex() int {
	if i, ok := fieldOrderIndex[f]; ok {
		return i
	}
	return len(CanonicalOrder)
}

// canonicalFieldNamed resolves an externally supplied field name against the
// canonical set. Names outside the set are rejected.
func canonicalFieldNamed(name string) (CanonicalField, bool) {
	f := CanonicalField(name)
	if f == FieldOther {
		return f, true
	}
	if _, ok := fieldOrderIndex[f]; ok {
		return f, true
	}
	return "", false
}

// ValueType is the canonical representation a field's values coerce into.
type ValueType int

const (
	TypeIdentifier ValueType = iota
	TypeText
	TypeCurrency
	TypeInteger
	TypeBoolean
	TypeDate
	TypeFreeText
)

var fieldValueTypes = map[CanonicalField]ValueType{
	FieldUUID:      TypeIdentifier,
	FieldEmail:     TypeText,
	FieldFullName:  TypeText,
	FieldFirstName: TypeText,
	FieldLastName:  TypeText,
	FieldCompany:   TypeText,
	FieldDomain:    TypeText,
	FieldPlan:      TypeText,
	FieldMRR:       TypeCurrency,
	FieldARR:       TypeCurrency,
	FieldNPS:       TypeInteger,
	FieldChurnFlag: TypeBoolean,
	FieldCreatedAt: TypeDate,
	FieldLastSeen:  TypeDate,
	FieldPhone:     TypeText,
	FieldCountry:   TypeText,
	FieldState:     TypeText,
	FieldCity:      TypeText,
	FieldZip:       TypeText,
	FieldNotes:     TypeFreeText,
	FieldOther:     TypeFreeText,
}

func (f CanonicalField) ValueType() ValueType {
	if t, ok := fieldValueTypes[f]; ok {
		return t
	}
	return TypeFreeText
}

// InputColumn is one raw column of the source table: header plus the cell
// values in row order. Read-only after construction.
type InputColumn struct {
	Index  int
	Header string
	Values []string
}

// Provenance records why a column was assigned to its field.
type Provenance string

const (
	ProvenancePattern  Provenance = "pattern-match"
	ProvenanceHint     Provenance = "value-hint"
	ProvenanceModel    Provenance = "external-model"
	ProvenanceUnmapped Provenance = "unmapped"
)

// Rank orders provenances by confidence for collision resolution.
func (p Provenance) Rank() int {
	switch p {
	case ProvenancePattern:
		return 3
	case ProvenanceHint:
		return 2
	case ProvenanceModel:
		return 1
	default:
		return 0
	}
}

// ClassificationResult is the classifier's verdict for one input column.
// Pattern carries the matched pattern text for pattern-match provenance;
// Rationale carries the model's explanation for external-model provenance.
type ClassificationResult struct {
	Column     InputColumn
	Field      CanonicalField
	Provenance Provenance
	Pattern    string
	Hint       Hint
	Rationale  string
}

// NormalizedColumn holds one output column: the field it maps to, the
// coerced values (nil = null) in source row order, and how many raw values
// failed coercion. Index preserves the source column position so "other"
// columns keep their input order. OutputName is filled in at assembly once
// name collisions between columns are resolved.
type NormalizedColumn struct {
	Field      CanonicalField
	Header     string
	Index      int
	Values     []any
	Failures   int
	OutputName string
}

// Name is the output column name: the canonical field, or the original
// header for unmapped columns, de-duplicated at assembly.
func (c NormalizedColumn) Name() string {
	if c.OutputName != "" {
		return c.OutputName
	}
	if c.Field == FieldOther {
		return c.Header
	}
	return string(c.Field)
}

// OutputTable is the assembled canonical table.
type OutputTable struct {
	Columns []NormalizedColumn
}

func (t OutputTable) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}
