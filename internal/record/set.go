package record

// Set accumulates the records of one extraction run.
type Set struct {
	records []Record
}

// Add appends r unless it lacks a card name or an equal record was already
// collected. It reports whether r was appended.
func (s *Set) Add(r Record) bool {
	if !r.Valid() {
		return false
	}
	for _, existing := range s.records {
		if existing.Equal(r) {
			return false
		}
	}
	s.records = append(s.records, r)
	return true
}

// Append appends r without checking for duplicates. Records without a card
// name are still dropped.
func (s *Set) Append(r Record) bool {
	if !r.Valid() {
		return false
	}
	s.records = append(s.records, r)
	return true
}

// Len returns the number of collected records.
func (s *Set) Len() int { return len(s.records) }

// Records returns the collected records in order.
func (s *Set) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Columns returns the union of field names across records, in first-seen
// order.
func Columns(records []Record) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range records {
		for _, f := range r.fields {
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			cols = append(cols, f.Name)
		}
	}
	return cols
}
