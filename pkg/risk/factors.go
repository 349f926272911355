package risk

import "github.com/synaptica-ai/heartrisk/pkg/clinical"

const (
	FactorAge              = "Age > 65"
	FactorHighBP           = "High BP"
	FactorHighCholesterol  = "High Cholesterol"
	FactorHighFastingSugar = "High Fasting Sugar"
	FactorExerciseAngina   = "Exercise Angina"
	FactorLowMaxHeartRate  = "Low Max HR"
)

// Rule is a clinical red flag checked independently of the model.
type Rule struct {
	Name  string
	Check func(clinical.Observation) bool
}

var rules = []Rule{
	{Name: FactorAge, Check: func(o clinical.Observation) bool { return o.Age > 65 }},
	{Name: FactorHighBP, Check: func(o clinical.Observation) bool { return o.RestingBP > 140 }},
	{Name: FactorHighCholesterol, Check: func(o clinical.Observation) bool { return o.Cholesterol > 240 }},
	{Name: FactorHighFastingSugar, Check: func(o clinical.Observation) bool { return o.FastingBS == 1 }},
	{Name: FactorExerciseAngina, Check: func(o clinical.Observation) bool { return o.ExerciseAngina == "Y" }},
	{Name: FactorLowMaxHeartRate, Check: func(o clinical.Observation) bool { return o.MaxHR < 100 }},
}

// Evaluate returns the triggered factors in rule order. The result is never nil.
func Evaluate(obs clinical.Observation) []string {
	factors := []string{}
	for _, r := range rules {
		if r.Check(obs) {
			factors = append(factors, r.Name)
		}
	}
	return factors
}
