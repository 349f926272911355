package features

import (
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
)

// Vector is a dense feature row aligned to a Schema.
type Vector struct {
	Columns []string
	Values  []float64
	// Unmatched holds synthesized keys the schema has no column for.
	// They are not part of Values.
	Unmatched []string
}

// Map returns the vector as column -> value.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.Columns))
	for i, col := range v.Columns {
		out[col] = v.Values[i]
	}
	return out
}

// Build aligns an observation to the schema. Numeric fields are copied
// verbatim, each categorical selection sets {field}_{value} to 1, and every
// other schema column is 0. Keys outside the schema are dropped from Values
// and reported in Unmatched.
func Build(schema Schema, obs clinical.Observation) Vector {
	numeric := obs.Numeric()
	selections := obs.Categorical()

	sparse := make(map[string]float64, len(numeric)+len(selections))
	keys := make([]string, 0, len(numeric)+len(selections))
	for _, n := range numeric {
		sparse[n.Field] = n.Value
		keys = append(keys, n.Field)
	}
	for _, sel := range selections {
		key := sel.Key()
		sparse[key] = 1
		keys = append(keys, key)
	}

	values := make([]float64, schema.Len())
	for i, col := range schema.columns {
		values[i] = sparse[col]
	}

	var unmatched []string
	for _, key := range keys {
		if !schema.Has(key) {
			unmatched = append(unmatched, key)
		}
	}

	return Vector{
		Columns:   schema.Columns(),
		Values:    values,
		Unmatched: unmatched,
	}
}

// DomainGap names a categorical field whose values the schema cannot
// distinguish.
type DomainGap struct {
	Field   string
	Missing []string
}

// CheckDomain reports fields whose values the schema cannot tell apart.
//
// A schema is treated as drop-first when every field lacks at least one of
// its columns; there the single missing value of a field is its reference
// level and encodes as all zeros. In any other schema every value needs a
// column, so a field missing even one value is reported.
func CheckDomain(schema Schema, domains []clinical.Domain) []DomainGap {
	allowed := 0
	if isDropFirst(schema, domains) {
		allowed = 1
	}

	var gaps []DomainGap
	for _, d := range domains {
		if missing := missingKeys(schema, d); len(missing) > allowed {
			gaps = append(gaps, DomainGap{Field: d.Field, Missing: missing})
		}
	}
	return gaps
}

// ReferenceLevels returns the one-hot keys a drop-first schema leaves out on
// purpose: the single missing key of each field. It is empty for any other
// schema.
func ReferenceLevels(schema Schema, domains []clinical.Domain) []string {
	if !isDropFirst(schema, domains) {
		return nil
	}
	var refs []string
	for _, d := range domains {
		if missing := missingKeys(schema, d); len(missing) == 1 {
			refs = append(refs, missing[0])
		}
	}
	return refs
}

func isDropFirst(schema Schema, domains []clinical.Domain) bool {
	if len(domains) == 0 {
		return false
	}
	for _, d := range domains {
		if len(missingKeys(schema, d)) == 0 {
			return false
		}
	}
	return true
}

func missingKeys(schema Schema, d clinical.Domain) []string {
	var missing []string
	for _, key := range d.Keys() {
		if !schema.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
