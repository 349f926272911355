package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/synaptica-ai/heartrisk/pkg/clinical"
	"github.com/synaptica-ai/heartrisk/pkg/common/models"
	"github.com/synaptica-ai/heartrisk/pkg/serving"
	"github.com/synaptica-ai/heartrisk/pkg/serving/artifacts"
)

func newScoreCommand(s *settings) *cobra.Command {
	obs := clinical.DefaultObservation()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Assess one observation",
		Long: `Score builds the feature vector for one observation, runs the model and
prints the risk label, the risk score and any rule-based risk factors.

Example:
  heartctl score --artifacts ./model --age 70 --resting-bp 150 --exercise-angina N
  heartctl score --sex F --chest-pain-type ASY --st-slope Flat --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := artifacts.Load(s.artifactDir())
			if err != nil {
				return fmt.Errorf("load artifacts: %w", err)
			}
			assessor, err := serving.NewAssessor(bundle, serving.Options{Source: "heartctl"})
			if err != nil {
				return err
			}
			result, err := assessor.Assess(cmd.Context(), obs)
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printAssessment(cmd.OutOrStdout(), result)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&obs.Age, "age", obs.Age, "age in years (18-100)")
	f.StringVar(&obs.Sex, "sex", obs.Sex, "sex: M or F")
	f.StringVar(&obs.ChestPainType, "chest-pain-type", obs.ChestPainType, "chest pain type: ATA, NAP, TA or ASY")
	f.IntVar(&obs.RestingBP, "resting-bp", obs.RestingBP, "resting blood pressure in mm Hg (80-200)")
	f.IntVar(&obs.Cholesterol, "cholesterol", obs.Cholesterol, "serum cholesterol in mg/dL (100-600)")
	f.IntVar(&obs.FastingBS, "fasting-bs", obs.FastingBS, "1 if fasting blood sugar > 120 mg/dL, else 0")
	f.StringVar(&obs.RestingECG, "resting-ecg", obs.RestingECG, "resting ECG: Normal, ST or LVH")
	f.IntVar(&obs.MaxHR, "max-hr", obs.MaxHR, "maximum heart rate achieved (60-220)")
	f.StringVar(&obs.ExerciseAngina, "exercise-angina", obs.ExerciseAngina, "exercise-induced angina: Y or N")
	f.Float64Var(&obs.Oldpeak, "oldpeak", obs.Oldpeak, "ST depression (0.0-6.0)")
	f.StringVar(&obs.STSlope, "st-slope", obs.STSlope, "ST slope: Up, Flat or Down")
	f.BoolVar(&asJSON, "json", false, "print the full assessment as JSON")
	return cmd
}

func printAssessment(w io.Writer, a models.Assessment) {
	fmt.Fprintf(w, "%s RISK\n", a.Label)
	fmt.Fprintf(w, "Risk Score: %.1f%%\n", a.RiskPercent)
	if len(a.RiskFactors) == 0 {
		fmt.Fprintln(w, "No major clinical red flags detected.")
	} else {
		fmt.Fprintln(w, "Potential risk factors:")
		for _, f := range a.RiskFactors {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	fmt.Fprintln(w, "Recommended actions:")
	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}
