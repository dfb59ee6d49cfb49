package health

import (
	"fmt"

	"healthadvisor.app/pkg/validation"
)

// AlertLevel is the severity of an air-quality alert. The zero value is
// AlertLevelLow and the constants are declared in increasing severity, so
// levels compare with the usual integer operators.
type AlertLevel int

const (
	AlertLevelLow AlertLevel = iota
	AlertLevelModerate
	AlertLevelHigh
	AlertLevelVeryHigh
	AlertLevelExtreme
)

// String returns the wire tag of the level
func (l AlertLevel) String() string {
	switch l {
	case AlertLevelLow:
		return "low"
	case AlertLevelModerate:
		return "moderate"
	case AlertLevelHigh:
		return "high"
	case AlertLevelVeryHigh:
		return "very_high"
	case AlertLevelExtreme:
		return "extreme"
	default:
		return fmt.Sprintf("AlertLevel(%d)", int(l))
	}
}

// IsValid checks if the level is one of the five known levels
func (l AlertLevel) IsValid() bool {
	return l >= AlertLevelLow && l <= AlertLevelExtreme
}

// MarshalText implements encoding.TextMarshaler
func (l AlertLevel) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid alert level %d", int(l))
	}
	return []byte(l.String()), nil
}

// AirQualitySample is one reading from one monitoring station.
// Nil fields were absent in the provider payload.
type AirQualitySample struct {
	AQI          *float64
	QualityLevel *string
}

// WeatherReading is a single weather snapshot for a city.
// Nil fields were absent in the provider payload.
type WeatherReading struct {
	Temperature *float64
	Humidity    *float64
	Timestamp   string
}

// HealthRecommendation is the outcome of combining air quality and weather
type HealthRecommendation struct {
	AlertLevel          AlertLevel `json:"alert_level"`
	AQI                 float64    `json:"aqi"`
	QualityLevel        string     `json:"quality_level"`
	Recommendations     []string   `json:"recommendations"`
	AtRiskGroups        []string   `json:"at_risk_groups"`
	SuggestedActivities []string   `json:"suggested_activities"`
	Temperature         float64    `json:"temperature"`
	Humidity            float64    `json:"humidity"`
	Timestamp           string     `json:"timestamp"`
}

// AlertStatus is the reduced view returned by the alert-status endpoint
type AlertStatus struct {
	City       string     `json:"city"`
	Country    string     `json:"country"`
	AlertLevel AlertLevel `json:"alert_level"`
	AQI        float64    `json:"aqi"`
}

// RecommendationRequest represents a request for a health recommendation
type RecommendationRequest struct {
	City    string
	Country string
}

// AlertStatusRequest represents a request for the alert level only
type AlertStatusRequest struct {
	City    string
	Country string
}

// IsValid validates the recommendation request
func (r *RecommendationRequest) IsValid() error {
	return validateLocation(r.City)
}

// IsValid validates the alert status request
func (r *AlertStatusRequest) IsValid() error {
	return validateLocation(r.City)
}

func validateLocation(city string) error {
	if _, ok := validation.TrimAndValidate(city); !ok {
		return fmt.Errorf("city cannot be empty")
	}
	return nil
}
