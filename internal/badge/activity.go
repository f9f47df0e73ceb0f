package badge

import (
	"math"
	"time"

	"github.com/pageza/nutripal/backend/internal/models"
	"github.com/pageza/nutripal/backend/internal/nutrition"
)

const (
	calorieAccuracyKcal = 100
	earlyBreakfastHour  = 9
	macroTolerance      = 0.10
)

// Activity is the history a badge evaluation reads from. Streaks count
// consecutive qualifying days ending today; Totals count qualifying days or
// events; Achievements hold one-shot conditions for the current day.
type Activity struct {
	Streaks      map[string]int
	Totals       map[string]float64
	Achievements map[string]bool
}

// NewActivity returns an empty activity context
func NewActivity() Activity {
	return Activity{
		Streaks:      map[string]int{},
		Totals:       map[string]float64{},
		Achievements: map[string]bool{},
	}
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// keyOf reads the calendar date t carries in its own location. For-dates
// are stored as midnight of a calendar day, so they are never converted.
func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

func (k dayKey) noon() time.Time {
	return time.Date(k.year, k.month, k.day, 12, 0, 0, 0, time.UTC)
}

var dailyMetrics = []string{
	MetricDailyLogging,
	MetricCompleteLogging,
	MetricWaterGoal,
	MetricProteinGoal,
	MetricCalorieAccuracy,
	MetricEarlyBreakfast,
}

// BuildActivity derives streaks, totals and today's achievements from the
// food-log history. recipesTried is the number of saved generated recipes.
// today's location is the user's: it decides the current date and whether a
// breakfast was logged before 9 AM.
func BuildActivity(logs []models.FoodLog, today time.Time, targets nutrition.Targets, recipesTried int) Activity {
	loc := today.Location()
	byDay := map[dayKey][]models.FoodLog{}
	for _, l := range logs {
		k := keyOf(l.ForDate)
		byDay[k] = append(byDay[k], l)
	}

	qualifying := map[string]map[dayKey]bool{}
	for _, m := range dailyMetrics {
		qualifying[m] = map[dayKey]bool{}
	}

	vegetableMeals := 0
	for k, dayLogs := range byDay {
		date := k.noon()
		totals := nutrition.Aggregate(dayLogs, date)
		water := nutrition.WaterIntakeMl(dayLogs, date)

		meals := map[models.MealType]bool{}
		vegMeals := map[models.MealType]bool{}
		early := false
		for _, l := range dayLogs {
			meals[l.MealType] = true
			if l.Food.Category == models.CategoryVegetables {
				vegMeals[l.MealType] = true
			}
			if l.MealType == models.MealBreakfast && l.LoggedAt.In(loc).Hour() < earlyBreakfastHour {
				early = true
			}
		}
		vegetableMeals += len(vegMeals)

		set := func(metric string, ok bool) {
			if ok {
				qualifying[metric][k] = true
			}
		}
		set(MetricDailyLogging, len(dayLogs) > 0)
		set(MetricCompleteLogging, meals[models.MealBreakfast] && meals[models.MealLunch] && meals[models.MealDinner])
		set(MetricWaterGoal, targets.WaterMl > 0 && water >= float64(targets.WaterMl))
		set(MetricProteinGoal, targets.Macros.Protein > 0 && totals.Protein >= float64(targets.Macros.Protein))
		set(MetricCalorieAccuracy, totals.Calories > 0 && math.Abs(totals.Calories-float64(targets.Calories)) <= calorieAccuracyKcal)
		set(MetricEarlyBreakfast, early)
	}

	activity := NewActivity()
	todayKey := keyOf(today)
	for _, m := range dailyMetrics {
		activity.Totals[m] = float64(len(qualifying[m]))
		activity.Streaks[m] = streak(qualifying[m], todayKey)
	}
	activity.Totals[MetricVegetableMeals] = float64(vegetableMeals)
	activity.Totals[MetricRecipesTried] = float64(recipesTried)

	todayTotals := nutrition.Aggregate(byDay[todayKey], todayKey.noon())
	activity.Achievements[MetricMacroBalance] = nutrition.MacrosBalanced(todayTotals, targets.Macros, macroTolerance)
	return activity
}

func streak(days map[dayKey]bool, from dayKey) int {
	n := 0
	d := from.noon()
	for days[keyOf(d)] {
		n++
		d = d.AddDate(0, 0, -1)
	}
	return n
}
