package health

import (
	"strconv"

	"healthadvisor.app/internal/ports"
)

const (
	// DefaultAQI stands in for a city without samples and for a sample without an AQI
	DefaultAQI = 50.0
	// DefaultQualityLevel is used when the first sample carries no label
	DefaultQualityLevel = "Good"
	// DefaultTemperature and DefaultHumidity replace absent weather fields
	DefaultTemperature = 20.0
	DefaultHumidity    = 50.0

	heatThreshold     = 30.0
	coldThreshold     = 5.0
	humidityThreshold = 80.0
)

// Inclusive upper AQI bounds of each level below extreme
var alertThresholds = []struct {
	upper float64
	level AlertLevel
}{
	{50, AlertLevelLow},
	{100, AlertLevelModerate},
	{150, AlertLevelHigh},
	{200, AlertLevelVeryHigh},
}

// Classify maps an AQI onto an alert level. Bounds are inclusive, so 50
// is low and 50.01 is moderate.
func Classify(aqi float64) AlertLevel {
	for _, t := range alertThresholds {
		if aqi <= t.upper {
			return t.level
		}
	}
	return AlertLevelExtreme
}

// AggregateAQI averages the sample AQIs and takes the quality label of the
// first sample. Labels of later samples are ignored.
func AggregateAQI(samples []AirQualitySample) (float64, string) {
	if len(samples) == 0 {
		return DefaultAQI, DefaultQualityLevel
	}

	sum := 0.0
	for _, s := range samples {
		sum += valueOr(s.AQI, DefaultAQI)
	}

	label := DefaultQualityLevel
	if samples[0].QualityLevel != nil {
		label = *samples[0].QualityLevel
	}

	return sum / float64(len(samples)), label
}

// RoundAQI rounds to one decimal place for display. Ties on the exact binary
// value go to the even digit, so 100.25 becomes 100.2.
func RoundAQI(aqi float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(aqi, 'f', 1, 64), 64)
	if err != nil {
		return aqi
	}
	return rounded
}

// Derive builds the recommendation for the given readings. It has no side
// effects and never fails; missing data falls back to the package defaults.
func Derive(samples []AirQualitySample, weather WeatherReading) HealthRecommendation {
	aqi, qualityLevel := AggregateAQI(samples)
	level := Classify(aqi)
	advice := bracketAdvisories[level]

	recommendations := make([]string, 0, len(advice.recommendations)+2)
	recommendations = append(recommendations, advice.recommendations...)

	atRiskGroups := make([]string, 0, len(advice.atRiskGroups))
	atRiskGroups = append(atRiskGroups, advice.atRiskGroups...)

	temperature := valueOr(weather.Temperature, DefaultTemperature)
	humidity := valueOr(weather.Humidity, DefaultHumidity)

	if temperature > heatThreshold {
		recommendations = append(recommendations, HeatAdvisory)
	} else if temperature < coldThreshold {
		recommendations = append(recommendations, ColdAdvisory)
	}
	if humidity > humidityThreshold {
		recommendations = append(recommendations, HumidityAdvisory)
	}

	return HealthRecommendation{
		AlertLevel:          level,
		AQI:                 RoundAQI(aqi),
		QualityLevel:        qualityLevel,
		Recommendations:     recommendations,
		AtRiskGroups:        atRiskGroups,
		SuggestedActivities: []string{advice.activity},
		Temperature:         temperature,
		Humidity:            humidity,
		Timestamp:           weather.Timestamp,
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Engine wraps Derive and counts every recommendation by alert level
type Engine struct {
	metrics ports.MetricsSink
}

func NewEngine(metrics ports.MetricsSink) *Engine {
	return &Engine{metrics: metrics}
}

func (e *Engine) Derive(samples []AirQualitySample, weather WeatherReading) HealthRecommendation {
	recommendation := Derive(samples, weather)
	if e.metrics != nil {
		e.metrics.RecordRecommendation(recommendation.AlertLevel.String())
	}
	return recommendation
}
