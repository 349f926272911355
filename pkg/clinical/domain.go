package clinical

// Domain is the closed set of values a categorical field accepts.
type Domain struct {
	Field  string   `json:"field"`
	Values []string `json:"values"`
}

func (d Domain) Contains(value string) bool {
	for _, v := range d.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Keys returns the one-hot column names for every value in the domain.
func (d Domain) Keys() []string {
	keys := make([]string, 0, len(d.Values))
	for _, v := range d.Values {
		keys = append(keys, OneHotKey(d.Field, v))
	}
	return keys
}

var domains = []Domain{
	{Field: FieldSex, Values: []string{"M", "F"}},
	{Field: FieldChestPainType, Values: []string{"ATA", "NAP", "TA", "ASY"}},
	{Field: FieldRestingECG, Values: []string{"Normal", "ST", "LVH"}},
	{Field: FieldExerciseAngina, Values: []string{"Y", "N"}},
	{Field: FieldSTSlope, Values: []string{"Up", "Flat", "Down"}},
}

func CategoricalDomains() []Domain {
	out := make([]Domain, 0, len(domains))
	for _, d := range domains {
		values := append([]string(nil), d.Values...)
		out = append(out, Domain{Field: d.Field, Values: values})
	}
	return out
}

func DomainFor(field string) (Domain, bool) {
	for _, d := range domains {
		if d.Field == field {
			return d, true
		}
	}
	return Domain{Field: field}, false
}
