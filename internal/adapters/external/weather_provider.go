package external

import (
	"context"

	"github.com/go-resty/resty/v2"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

const weatherCityPath = "/api/weather/city"

// WeatherProviderAdapter implements WeatherProvider port over the weather service
type WeatherProviderAdapter struct {
	client *resty.Client
}

func NewWeatherProviderAdapter(params ClientParams) ports.WeatherProvider {
	return &WeatherProviderAdapter{client: newRestyClient(params)}
}

// GetCurrentWeather returns the current conditions for a city
func (p *WeatherProviderAdapter) GetCurrentWeather(ctx context.Context, city, country string) (*ports.WeatherData, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	var data ports.WeatherData
	err := getJSON(ctx, p.client, ports.ServiceWeather, weatherCityPath, map[string]string{
		"city":    city,
		"country": country,
	}, &data)
	if err != nil {
		return nil, err
	}

	return &data, nil
}

func (p *WeatherProviderAdapter) GetProviderName() string {
	return ports.ServiceWeather
}
