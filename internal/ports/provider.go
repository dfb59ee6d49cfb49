package ports

import "context"

// Service names used for logging, metrics labels and upstream errors
const (
	ServiceAirQuality = "air-quality"
	ServiceWeather    = "weather"
)

// AirQualityData is one station reading as returned by the air-quality provider.
// AQI and QualityLevel are pointers because the provider may omit them.
type AirQualityData struct {
	City         string   `json:"city,omitempty"`
	Country      string   `json:"country,omitempty"`
	Latitude     float64  `json:"latitude,omitempty"`
	Longitude    float64  `json:"longitude,omitempty"`
	Parameter    string   `json:"parameter,omitempty"`
	Value        float64  `json:"value,omitempty"`
	Unit         string   `json:"unit,omitempty"`
	LastUpdated  string   `json:"lastUpdated,omitempty"`
	AQI          *float64 `json:"aqi,omitempty"`
	QualityLevel *string  `json:"qualityLevel,omitempty"`
}

// WeatherData is the current weather snapshot returned by the weather provider
type WeatherData struct {
	City          string   `json:"city,omitempty"`
	Country       string   `json:"country,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	FeelsLike     *float64 `json:"feelsLike,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	Description   string   `json:"description,omitempty"`
	Icon          string   `json:"icon,omitempty"`
	WindSpeed     *float64 `json:"windSpeed,omitempty"`
	WindDirection *float64 `json:"windDirection,omitempty"`
	Clouds        *float64 `json:"clouds,omitempty"`
	Visibility    *float64 `json:"visibility,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
}

// AirQualityProvider fetches per-station air-quality readings for a city
type AirQualityProvider interface {
	GetAirQuality(ctx context.Context, city, country string) ([]AirQualityData, error)
	GetProviderName() string
}

// WeatherProvider fetches the current weather for a city
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, city, country string) (*WeatherData, error)
	GetProviderName() string
}
