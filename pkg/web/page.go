package web

import (
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
)

type pageData struct {
	Form    clinical.Observation
	Domains domainOptions
	Result  *models.Assessment
	Error   string
}

type domainOptions struct {
	Sex            []string
	ChestPainType  []string
	RestingECG     []string
	ExerciseAngina []string
	STSlope        []string
}

func newDomainOptions() domainOptions {
	values := func(field string) []string {
		d, _ := clinical.DomainFor(field)
		return d.Values
	}
	return domainOptions{
		Sex:            values(clinical.FieldSex),
		ChestPainType:  values(clinical.FieldChestPainType),
		RestingECG:     values(clinical.FieldRestingECG),
		ExerciseAngina: values(clinical.FieldExerciseAngina),
		STSlope:        values(clinical.FieldSTSlope),
	}
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type selectData struct {
	Name    string
	Options []option
}

var optionLabels = map[string]map[string]string{
	"sex":             {"M": "Male", "F": "Female"},
	"exercise_angina": {"Y": "Yes", "N": "No"},
}

func selectOf(name string, values []string, selected string) selectData {
	data := selectData{Name: name}
	for _, v := range values {
		label := v
		if l, ok := optionLabels[name][v]; ok {
			label = l
		}
		data.Options = append(data.Options, option{Value: v, Label: label, Selected: v == selected})
	}
	return data
}
