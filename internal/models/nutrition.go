package models

// NutritionInfo holds nutrient amounts for a serving, a meal or a whole day.
// Sugar and sodium are optional and read as zero when the source omits them.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar,omitempty"`
	Sodium   float64 `json:"sodium,omitempty"`
}

// Add returns the pointwise sum of n and o
func (n NutritionInfo) Add(o NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    n.Fiber + o.Fiber,
		Sugar:    n.Sugar + o.Sugar,
		Sodium:   n.Sodium + o.Sodium,
	}
}

// Scale multiplies every field by q
func (n NutritionInfo) Scale(q float64) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories * q,
		Protein:  n.Protein * q,
		Carbs:    n.Carbs * q,
		Fat:      n.Fat * q,
		Fiber:    n.Fiber * q,
		Sugar:    n.Sugar * q,
		Sodium:   n.Sodium * q,
	}
}

// MacroTargets are daily gram targets for the three macros
type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}
