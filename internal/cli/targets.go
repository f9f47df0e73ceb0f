package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
)

var (
	targetWeight   float64
	targetHeight   float64
	targetAge      int
	targetActivity string
	targetGoals    []string
)

func init() {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Print BMI and daily targets for a body profile",
		RunE:  runTargets,
	}
	cmd.Flags().Float64Var(&targetWeight, "weight", 0, "Weight in kg")
	cmd.Flags().Float64Var(&targetHeight, "height", 0, "Height in cm")
	cmd.Flags().IntVar(&targetAge, "age", 0, "Age in years")
	cmd.Flags().StringVar(&targetActivity, "activity", string(models.ActivitySedentary), "Activity level: sedentary, light, moderate, active, very_active")
	cmd.Flags().StringSliceVar(&targetGoals, "goal", nil, "Health goal, repeatable (e.g. weight_loss)")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("age")

	RootCmd.AddCommand(cmd)
}

func runTargets(cmd *cobra.Command, args []string) error {
	if targetWeight <= 0 || targetHeight <= 0 || targetAge <= 0 {
		return fmt.Errorf("weight, height and age must be positive")
	}

	profile := &models.UserProfile{
		Age:           targetAge,
		Weight:        targetWeight,
		Height:        targetHeight,
		ActivityLevel: models.ActivityLevel(targetActivity),
	}
	for _, g := range targetGoals {
		profile.HealthGoals = append(profile.HealthGoals, models.HealthGoal(g))
	}
	targets := nutrition.TargetsFor(profile)

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		return writeJSON(out, targets)
	}
	fmt.Fprintf(out, "BMI:      %.1f (%s)\n", targets.BMI, targets.BMICategory)
	fmt.Fprintf(out, "Calories: %d kcal\n", targets.Calories)
	fmt.Fprintf(out, "Protein:  %d g\n", targets.Macros.Protein)
	fmt.Fprintf(out, "Carbs:    %d g\n", targets.Macros.Carbs)
	fmt.Fprintf(out, "Fat:      %d g\n", targets.Macros.Fat)
	fmt.Fprintf(out, "Water:    %d ml\n", targets.WaterMl)
	return nil
}
