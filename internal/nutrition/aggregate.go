package nutrition

import (
	"sort"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
)

// DefaultBeverageMl is the volume assumed for a beverage serving with no explicit volume
const DefaultBeverageMl = 250

// SameDay reports calendar-day equality of a and b in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// LogsForDay keeps the logs whose for-date falls on day, in day's location
func LogsForDay(logs []models.FoodLog, day time.Time) []models.FoodLog {
	var out []models.FoodLog
	for _, l := range logs {
		if SameDay(l.ForDate, day, day.Location()) {
			out = append(out, l)
		}
	}
	return out
}

// Aggregate sums the effective nutrition of every log attributed to forDate.
// Each field is summed over sorted values so the result does not depend on
// the order of logs.
func Aggregate(logs []models.FoodLog, forDate time.Time) models.NutritionInfo {
	day := LogsForDay(logs, forDate)
	fields := make([][]float64, 7)
	for _, l := range day {
		n := l.EffectiveNutrition()
		for i, v := range []float64{n.Calories, n.Protein, n.Carbs, n.Fat, n.Fiber, n.Sugar, n.Sodium} {
			fields[i] = append(fields[i], v)
		}
	}
	return models.NutritionInfo{
		Calories: stableSum(fields[0]),
		Protein:  stableSum(fields[1]),
		Carbs:    stableSum(fields[2]),
		Fat:      stableSum(fields[3]),
		Fiber:    stableSum(fields[4]),
		Sugar:    stableSum(fields[5]),
		Sodium:   stableSum(fields[6]),
	}
}

// WaterIntakeMl totals beverage volume for forDate. Foods without an
// explicit volume count DefaultBeverageMl per unit of quantity.
func WaterIntakeMl(logs []models.FoodLog, forDate time.Time) float64 {
	var volumes []float64
	for _, l := range LogsForDay(logs, forDate) {
		if l.Food.Category != models.CategoryBeverages {
			continue
		}
		unit := l.Food.VolumeMl
		if unit <= 0 {
			unit = DefaultBeverageMl
		}
		volumes = append(volumes, unit*l.Quantity)
	}
	return stableSum(volumes)
}

func stableSum(values []float64) float64 {
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Progress is an observed amount against its target
type Progress struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Percent  float64 `json:"percent"`
}

func progressOf(consumed, target float64) Progress {
	p := Progress{Consumed: consumed, Target: target}
	if target > 0 {
		p.Percent = consumed / target * 100
	}
	return p
}

// DailySummary compares a day's totals with the profile targets
type DailySummary struct {
	Date     time.Time            `json:"date"`
	Totals   models.NutritionInfo `json:"totals"`
	WaterMl  float64              `json:"water_ml"`
	Calories Progress             `json:"calories"`
	Protein  Progress             `json:"protein"`
	Carbs    Progress             `json:"carbs"`
	Fat      Progress             `json:"fat"`
	Water    Progress             `json:"water"`
	Entries  int                  `json:"entries"`
}

// Summarize aggregates the day's logs and compares them with targets
func Summarize(logs []models.FoodLog, forDate time.Time, targets Targets) DailySummary {
	totals := Aggregate(logs, forDate)
	water := WaterIntakeMl(logs, forDate)
	return DailySummary{
		Date:     forDate,
		Totals:   totals,
		WaterMl:  water,
		Calories: progressOf(totals.Calories, float64(targets.Calories)),
		Protein:  progressOf(totals.Protein, float64(targets.Macros.Protein)),
		Carbs:    progressOf(totals.Carbs, float64(targets.Macros.Carbs)),
		Fat:      progressOf(totals.Fat, float64(targets.Macros.Fat)),
		Water:    progressOf(water, float64(targets.WaterMl)),
		Entries:  len(LogsForDay(logs, forDate)),
	}
}

// MacrosBalanced reports whether protein, carbs and fat are each within
// tolerance (a fraction, e.g. 0.1) of their targets.
func MacrosBalanced(totals models.NutritionInfo, macros models.MacroTargets, tolerance float64) bool {
	within := func(got float64, want int) bool {
		if want <= 0 {
			return false
		}
		w := float64(want)
		return got >= w*(1-tolerance) && got <= w*(1+tolerance)
	}
	return within(totals.Protein, macros.Protein) &&
		within(totals.Carbs, macros.Carbs) &&
		within(totals.Fat, macros.Fat)
}
