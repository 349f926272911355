package clinical

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Column names as they appear in the training data.
const (
	FieldAge            = "Age"
	FieldSex            = "Sex"
	FieldChestPainType  = "ChestPainType"
	FieldRestingBP      = "RestingBP"
	FieldCholesterol    = "Cholesterol"
	FieldFastingBS      = "FastingBS"
	FieldRestingECG     = "RestingECG"
	FieldMaxHR          = "MaxHR"
	FieldExerciseAngina = "ExerciseAngina"
	FieldOldpeak        = "Oldpeak"
	FieldSTSlope        = "ST_Slope"
)

var (
	errOutOfRange   = errors.New("value out of range")
	errUnknownValue = errors.New("unknown categorical value")
)

type ValidationError struct {
	Field  string
	reason error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.reason.Error())
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func NewValidationError(field string, reason error) ValidationError {
	return ValidationError{Field: field, reason: reason}
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Observation is one submission of the assessment form.
type Observation struct {
	Age            int     `json:"age"`
	Sex            string  `json:"sex"`
	ChestPainType  string  `json:"chest_pain_type"`
	RestingBP      int     `json:"resting_bp"`
	Cholesterol    int     `json:"cholesterol"`
	FastingBS      int     `json:"fasting_bs"`
	RestingECG     string  `json:"resting_ecg"`
	MaxHR          int     `json:"max_hr"`
	ExerciseAngina string  `json:"exercise_angina"`
	Oldpeak        float64 `json:"oldpeak"`
	STSlope        string  `json:"st_slope"`
}

// DefaultObservation mirrors the initial state of the form controls.
func DefaultObservation() Observation {
	return Observation{
		Age:            40,
		Sex:            "M",
		ChestPainType:  "ATA",
		RestingBP:      120,
		Cholesterol:    200,
		FastingBS:      0,
		RestingECG:     "Normal",
		MaxHR:          150,
		ExerciseAngina: "Y",
		Oldpeak:        1.0,
		STSlope:        "Up",
	}
}

type NumericValue struct {
	Field string
	Value float64
}

type Selection struct {
	Field string
	Value string
}

// Key is the one-hot column name for the selection, e.g. "Sex_M".
func (s Selection) Key() string {
	return OneHotKey(s.Field, s.Value)
}

func OneHotKey(field, value string) string {
	return field + "_" + value
}

// Numeric returns the numeric fields in training column order.
func (o Observation) Numeric() []NumericValue {
	return []NumericValue{
		{Field: FieldAge, Value: float64(o.Age)},
		{Field: FieldRestingBP, Value: float64(o.RestingBP)},
		{Field: FieldCholesterol, Value: float64(o.Cholesterol)},
		{Field: FieldFastingBS, Value: float64(o.FastingBS)},
		{Field: FieldMaxHR, Value: float64(o.MaxHR)},
		{Field: FieldOldpeak, Value: o.Oldpeak},
	}
}

func (o Observation) Categorical() []Selection {
	return []Selection{
		{Field: FieldSex, Value: o.Sex},
		{Field: FieldChestPainType, Value: o.ChestPainType},
		{Field: FieldRestingECG, Value: o.RestingECG},
		{Field: FieldExerciseAngina, Value: o.ExerciseAngina},
		{Field: FieldSTSlope, Value: o.STSlope},
	}
}

// Normalize trims whitespace around categorical values.
func (o Observation) Normalize() Observation {
	o.Sex = strings.TrimSpace(o.Sex)
	o.ChestPainType = strings.TrimSpace(o.ChestPainType)
	o.RestingECG = strings.TrimSpace(o.RestingECG)
	o.ExerciseAngina = strings.TrimSpace(o.ExerciseAngina)
	o.STSlope = strings.TrimSpace(o.STSlope)
	return o
}

func (o Observation) Validate() error {
	for _, r := range numericRanges {
		value := r.get(o)
		if math.IsNaN(value) || value < r.Min || value > r.Max {
			return ValidationError{
				Field:  r.Field,
				reason: fmt.Errorf("%v not in [%v, %v]: %w", value, r.Min, r.Max, errOutOfRange),
			}
		}
	}
	for _, sel := range o.Categorical() {
		domain, _ := DomainFor(sel.Field)
		if !domain.Contains(sel.Value) {
			return ValidationError{
				Field:  sel.Field,
				reason: fmt.Errorf("'%s' not one of %v: %w", sel.Value, domain.Values, errUnknownValue),
			}
		}
	}
	return nil
}

type NumericRange struct {
	Field string
	Min   float64
	Max   float64
	get   func(Observation) float64
}

var numericRanges = []NumericRange{
	{Field: FieldAge, Min: 18, Max: 100, get: func(o Observation) float64 { return float64(o.Age) }},
	{Field: FieldRestingBP, Min: 80, Max: 200, get: func(o Observation) float64 { return float64(o.RestingBP) }},
	{Field: FieldCholesterol, Min: 100, Max: 600, get: func(o Observation) float64 { return float64(o.Cholesterol) }},
	{Field: FieldFastingBS, Min: 0, Max: 1, get: func(o Observation) float64 { return float64(o.FastingBS) }},
	{Field: FieldMaxHR, Min: 60, Max: 220, get: func(o Observation) float64 { return float64(o.MaxHR) }},
	{Field: FieldOldpeak, Min: 0, Max: 6, get: func(o Observation) float64 { return o.Oldpeak }},
}

// NumericRanges lists the accepted bounds, used to render form controls.
func NumericRanges() []NumericRange {
	out := make([]NumericRange, len(numericRanges))
	copy(out, numericRanges)
	return out
}
