package features

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
)

var fullColumns = []string{
	"Age", "RestingBP", "Cholesterol", "FastingBS", "MaxHR", "Oldpeak",
	"Sex_F", "Sex_M",
	"ChestPainType_ASY", "ChestPainType_ATA", "ChestPainType_NAP", "ChestPainType_TA",
	"RestingECG_LVH", "RestingECG_Normal", "RestingECG_ST",
	"ExerciseAngina_N", "ExerciseAngina_Y",
	"ST_Slope_Down", "ST_Slope_Flat", "ST_Slope_Up",
}

// Columns produced by get_dummies(drop_first=True) on the training frame.
var dropFirstColumns = []string{
	"Age", "RestingBP", "Cholesterol", "FastingBS", "MaxHR", "Oldpeak",
	"Sex_M",
	"ChestPainType_ATA", "ChestPainType_NAP", "ChestPainType_TA",
	"RestingECG_Normal", "RestingECG_ST",
	"ExerciseAngina_Y",
	"ST_Slope_Flat", "ST_Slope_Up",
}

func mustSchema(t *testing.T, cols []string) Schema {
	t.Helper()
	s, err := NewSchema(cols)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	return s
}

func exampleObservation() clinical.Observation {
	return clinical.Observation{
		Age:            40,
		Sex:            "M",
		ChestPainType:  "ATA",
		RestingBP:      120,
		Cholesterol:    200,
		FastingBS:      0,
		MaxHR:          150,
		ExerciseAngina: "N",
		Oldpeak:        1.0,
		RestingECG:     "Normal",
		STSlope:        "Up",
	}
}

func TestBuildExampleVector(t *testing.T) {
	schema := mustSchema(t, fullColumns)
	vec := Build(schema, exampleObservation())

	if diff := cmp.Diff(fullColumns, vec.Columns); diff != "" {
		t.Fatalf("columns out of order (-want +got):\n%s", diff)
	}
	if len(vec.Values) != len(fullColumns) {
		t.Fatalf("expected %d values, got %d", len(fullColumns), len(vec.Values))
	}

	want := map[string]float64{
		"Age": 40, "RestingBP": 120, "Cholesterol": 200, "FastingBS": 0, "MaxHR": 150, "Oldpeak": 1.0,
		"Sex_M": 1, "ChestPainType_ATA": 1, "RestingECG_Normal": 1, "ExerciseAngina_N": 1, "ST_Slope_Up": 1,
	}
	for col, got := range vec.Map() {
		if got != want[col] {
			t.Fatalf("column %s: expected %v, got %v", col, want[col], got)
		}
	}
	if len(vec.Unmatched) != 0 {
		t.Fatalf("expected no unmatched keys, got %v", vec.Unmatched)
	}
}

func TestBuildOneHotPerField(t *testing.T) {
	schema := mustSchema(t, fullColumns)
	obs := exampleObservation()
	obs.Sex = "F"
	obs.ChestPainType = "ASY"
	obs.STSlope = "Flat"
	vec := Build(schema, obs).Map()

	for _, d := range clinical.CategoricalDomains() {
		hot := 0
		for _, key := range d.Keys() {
			switch vec[key] {
			case 1:
				hot++
			case 0:
			default:
				t.Fatalf("%s: unexpected value %v", key, vec[key])
			}
		}
		if hot != 1 {
			t.Fatalf("field %s: expected exactly one hot column, got %d", d.Field, hot)
		}
	}
	if vec["Sex_F"] != 1 || vec["ChestPainType_ASY"] != 1 || vec["ST_Slope_Flat"] != 1 {
		t.Fatalf("unexpected selections: %v", vec)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	schema := mustSchema(t, fullColumns)
	a := Build(schema, exampleObservation())
	b := Build(schema, exampleObservation())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("expected identical vectors (-first +second):\n%s", diff)
	}
}

func TestBuildDropsKeysOutsideSchema(t *testing.T) {
	schema := mustSchema(t, dropFirstColumns)
	obs := exampleObservation()
	obs.Sex = "F"

	vec := Build(schema, obs)
	if len(vec.Values) != len(dropFirstColumns) {
		t.Fatalf("expected %d values, got %d", len(dropFirstColumns), len(vec.Values))
	}
	if got := vec.Map()["Sex_M"]; got != 0 {
		t.Fatalf("expected Sex_M=0, got %v", got)
	}
	want := []string{"Sex_F", "ExerciseAngina_N"}
	if diff := cmp.Diff(want, vec.Unmatched); diff != "" {
		t.Fatalf("unmatched keys mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildNumericPassThrough(t *testing.T) {
	schema := mustSchema(t, fullColumns)
	obs := exampleObservation()
	obs.Oldpeak = 2.3
	obs.Cholesterol = 417
	vec := Build(schema, obs)
	if vec.Values[5] != 2.3 || vec.Values[2] != 417 {
		t.Fatalf("numeric values altered: %v", vec.Values[:6])
	}
}

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	_, err := NewSchema([]string{"Age", "Age"})
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("expected duplicate column error, got %v", err)
	}
	if _, err := NewSchema(nil); !errors.Is(err, ErrEmptySchema) {
		t.Fatalf("expected empty schema error, got %v", err)
	}
	if _, err := NewSchema([]string{"Age", " "}); !errors.Is(err, ErrBlankColumn) {
		t.Fatalf("expected blank column error, got %v", err)
	}
}

func TestCheckDomain(t *testing.T) {
	if gaps := CheckDomain(mustSchema(t, fullColumns), clinical.CategoricalDomains()); len(gaps) != 0 {
		t.Fatalf("expected no gaps for full schema, got %v", gaps)
	}
	if gaps := CheckDomain(mustSchema(t, dropFirstColumns), clinical.CategoricalDomains()); len(gaps) != 0 {
		t.Fatalf("expected drop-first schema to pass, got %v", gaps)
	}

	cols := []string{"Age", "RestingBP", "Cholesterol", "FastingBS", "MaxHR", "Oldpeak", "Sex_M",
		"ChestPainType_ATA", "RestingECG_Normal", "RestingECG_ST", "ExerciseAngina_Y", "ST_Slope_Flat", "ST_Slope_Up"}
	gaps := CheckDomain(mustSchema(t, cols), clinical.CategoricalDomains())
	if len(gaps) != 1 || gaps[0].Field != clinical.FieldChestPainType {
		t.Fatalf("expected ChestPainType gap, got %v", gaps)
	}
	if len(gaps[0].Missing) != 3 {
		t.Fatalf("expected three missing keys, got %v", gaps[0].Missing)
	}
}

func TestCheckDomainFullSchemaMissingOneValue(t *testing.T) {
	var cols []string
	for _, c := range fullColumns {
		if c != "ChestPainType_TA" {
			cols = append(cols, c)
		}
	}
	gaps := CheckDomain(mustSchema(t, cols), clinical.CategoricalDomains())
	want := []DomainGap{{Field: clinical.FieldChestPainType, Missing: []string{"ChestPainType_TA"}}}
	if diff := cmp.Diff(want, gaps); diff != "" {
		t.Fatalf("gaps mismatch (-want +got):\n%s", diff)
	}
}

func TestReferenceLevels(t *testing.T) {
	domains := clinical.CategoricalDomains()
	if refs := ReferenceLevels(mustSchema(t, fullColumns), domains); len(refs) != 0 {
		t.Fatalf("expected no reference levels for a full schema, got %v", refs)
	}

	refs := ReferenceLevels(mustSchema(t, dropFirstColumns), domains)
	want := []string{"Sex_F", "ChestPainType_ASY", "RestingECG_LVH", "ExerciseAngina_N", "ST_Slope_Down"}
	if diff := cmp.Diff(want, refs); diff != "" {
		t.Fatalf("reference levels mismatch (-want +got):\n%s", diff)
	}
}

func TestFingerprint(t *testing.T) {
	schema := mustSchema(t, fullColumns)
	a := Build(schema, exampleObservation())
	b := Build(schema, exampleObservation())
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("expected identical fingerprints for identical observations")
	}

	obs := exampleObservation()
	obs.Oldpeak = 1.1
	if Build(schema, obs).Fingerprint() == a.Fingerprint() {
		t.Fatal("expected fingerprint to change with values")
	}
}
