// Package record holds the card record model shared by the extractors and
// serializers.
package record

// Canonical field names.
const (
	CardName              = "card_name"
	IssuingBank           = "issuing_bank"
	JoiningFee            = "joining_fee"
	AnnualFee             = "annual_fee"
	Rewards               = "rewards"
	Cashback              = "cashback"
	Offers                = "offers"
	TravelBenefits        = "travel_benefits"
	Insurance             = "insurance"
	LoungeAccess          = "lounge_access"
	ForeignTransactionFee = "foreign_transaction_fee"
)

// StandardFields lists the canonical fields in their documented order.
var StandardFields = []string{CardName, IssuingBank, JoiningFee, AnnualFee, Rewards, Cashback, Offers}

// Value is an optional text value. The zero Value is the null marker: the
// field is present on the record but its content is unknown.
type Value struct {
	text  string
	valid bool
}

// Text returns a present value.
func Text(s string) Value { return Value{text: s, valid: true} }

// Null returns the null marker.
func Null() Value { return Value{} }

// IsNull reports whether v is the null marker.
func (v Value) IsNull() bool { return !v.valid }

// String returns the text, or "" for the null marker.
func (v Value) String() string { return v.text }

// Field is a single named value on a record.
type Field struct {
	Name  string
	Value Value
}

// Record is an insertion-ordered set of fields. A name that is not present is
// absent, which is distinct from a field holding the null marker.
type Record struct {
	fields []Field
}

// New builds a record from fields in order. Later duplicates overwrite earlier
// values in place.
func New(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

func (r *Record) index(name string) int {
	for i := range r.fields {
		if r.fields[i].Name == name {
			return i
		}
	}
	return -1
}

// Set stores v under name. An existing field keeps its position.
func (r *Record) Set(name string, v Value) {
	if i := r.index(name); i >= 0 {
		r.fields[i].Value = v
		return
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// SetText is shorthand for Set(name, Text(s)).
func (r *Record) SetText(name, s string) { r.Set(name, Text(s)) }

// SetNullIfAbsent adds the null marker for each name not yet present.
func (r *Record) SetNullIfAbsent(names ...string) {
	for _, n := range names {
		if !r.Has(n) {
			r.Set(n, Null())
		}
	}
}

// Get returns the value stored under name and whether it is present.
func (r Record) Get(name string) (Value, bool) {
	if i := r.index(name); i >= 0 {
		return r.fields[i].Value, true
	}
	return Value{}, false
}

// Has reports whether name is present, null or not.
func (r Record) Has(name string) bool { return r.index(name) >= 0 }

// Text returns the text under name, or "" when absent or null.
func (r Record) Text(name string) string {
	v, _ := r.Get(name)
	return v.String()
}

// Name returns the card name.
func (r Record) Name() string { return r.Text(CardName) }

// Fields returns a copy of the fields in insertion order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns field names in insertion order.
func (r Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Empty reports whether the record has no fields.
func (r Record) Empty() bool { return len(r.fields) == 0 }

// Valid reports whether the record carries a non-empty card name.
func (r Record) Valid() bool { return r.Name() != "" }

// Equal compares field-for-field, ignoring insertion order.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for _, f := range r.fields {
		v, ok := o.Get(f.Name)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}
