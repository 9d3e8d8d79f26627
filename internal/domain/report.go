package domain

// IncomeFlow is the monthly income in money and hours with a per-source breakdown
type IncomeFlow struct {
	Money    MonthlySeries            `json:"money"`
	Hours    HourSeries               `json:"hours"`
	BySource map[string]MonthlySeries `json:"bySource"`
}

// ExpenseFlow is the monthly expense cost with per-category breakdowns
type ExpenseFlow struct {
	Money         MonthlySeries           `json:"money"`
	Hours         HourSeries              `json:"hours"`
	CategoryMoney map[int32]MonthlySeries `json:"categoryMoney"`
	CategoryHours map[int32]HourSeries    `json:"categoryHours"`
}

// AssetMetrics is the static time economics of one durable asset
type AssetMetrics struct {
	AssetID            int32    `json:"assetId"`
	Name               string   `json:"name"`
	CapexHours         *float64 `json:"capexHours"`
	MaintHoursPerMonth *float64 `json:"maintHoursPerMonth"`
	NetHoursPerMonth   *float64 `json:"netHoursPerMonth"`
	PaybackMonths      *float64 `json:"paybackMonths"`
	LifetimeROIHours   *float64 `json:"lifetimeRoiHours"`
}

type AssetFlow struct {
	Metrics         []AssetMetrics          `json:"metrics"`
	SavedHours      MonthlySeries           `json:"savedHours"`
	MaintHours      HourSeries              `json:"maintHours"`
	MaintMoney      MonthlySeries           `json:"maintMoney"`
	CapexAmortHours HourSeries              `json:"capexAmortHours"`
	CategorySaved   map[int32]MonthlySeries `json:"categorySaved"`
	CategoryCost    map[int32]HourSeries    `json:"categoryCost"`
}

// ActivityROI is the per-occurrence return of an activity valued today
type ActivityROI struct {
	ActivityID        int32    `json:"activityId"`
	Name              string   `json:"name"`
	TimeCostHours     float64  `json:"timeCostHours"`
	MoneyCostHours    *float64 `json:"moneyCostHours"`
	TotalCostHours    *float64 `json:"totalCostHours"`
	BenefitHours      float64  `json:"benefitHours"`
	ROI               *float64 `json:"roi"`
	NetPerOccurrence  *float64 `json:"netPerOccurrence"`
	MonthlyOccurrence float64  `json:"monthlyOccurrence"`
}

// ActivityFlow books saved hours from minutes, so they are always known; the cost side needs an
// hourly rate and is nil in months it cannot be valued.
type ActivityFlow struct {
	ROI           []ActivityROI           `json:"roi"`
	SavedHours    MonthlySeries           `json:"savedHours"`
	ExtraHours    HourSeries              `json:"extraHours"`
	NetHours      HourSeries              `json:"netHours"`
	CategorySaved map[int32]MonthlySeries `json:"categorySaved"`
	CategoryExtra map[int32]HourSeries    `json:"categoryExtra"`
}

type BudgetFlow struct {
	Money            MonthlySeries           `json:"money"`
	Hours            HourSeries              `json:"hours"`
	CategoryMoney    map[int32]MonthlySeries `json:"categoryMoney"`
	CategoryHours    map[int32]HourSeries    `json:"categoryHours"`
	VarianceHours    HourSeries              `json:"varianceHours,omitempty"`
	CategoryVariance map[int32]HourSeries    `json:"categoryVariance,omitempty"`
}

type GoalProgress struct {
	GoalID          int32    `json:"goalId"`
	Name            string   `json:"name"`
	TargetHours     *float64 `json:"targetHours"`
	ProgressHours   float64  `json:"progressHours"`
	RemainingHours  *float64 `json:"remainingHours"`
	PercentComplete *float64 `json:"percentComplete"`
	ETAMonths       *float64 `json:"etaMonths"`
	NeedsHourlyRate bool     `json:"needsHourlyRate"`
}

type ForecastPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// Forecast is a straight-line projection of net burn
type Forecast struct {
	Slope          float64         `json:"slope"`
	Intercept      float64         `json:"intercept"`
	Points         []ForecastPoint `json:"points"`
	BreakevenMonth *string         `json:"breakevenMonth"`
}

// TimeValueReport is the full aggregation over a month range
type TimeValueReport struct {
	From       string       `json:"from"`
	To         string       `json:"to"`
	Months     []string     `json:"months"`
	Currency   string       `json:"currency"`
	HourlyRate *float64     `json:"hourlyRate"`
	Income     IncomeFlow   `json:"income"`
	Expenses   ExpenseFlow  `json:"expenses"`
	Assets     AssetFlow    `json:"assets"`
	Activities ActivityFlow `json:"activities"`
	Budget     BudgetFlow   `json:"budget"`

	TimeCostHours           HourSeries              `json:"timeCostHours"`
	TimeSavingsHours        MonthlySeries           `json:"timeSavingsHours"`
	TimeBurnNet             HourSeries              `json:"timeBurnNet"`
	NetSavingsHoursPerMonth *float64                `json:"netSavingsHoursPerMonth"`
	CategoryCostHours       map[int32]HourSeries    `json:"categoryCostHours"`
	CategorySavingsHours    map[int32]MonthlySeries `json:"categorySavingsHours"`
	CategoryExpenseMoney    map[int32]MonthlySeries `json:"categoryExpenseMoney"`

	Goals    []GoalProgress `json:"goals"`
	Forecast *Forecast      `json:"forecast"`

	InsufficientData    bool     `json:"insufficientData"`
	FXDegraded          bool     `json:"fxDegraded"`
	DegradedConversions []string `json:"degradedConversions,omitempty"`
}
