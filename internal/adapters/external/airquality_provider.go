package external

import (
	"context"

	"github.com/go-resty/resty/v2"
	"healthadvisor.app/internal/ports"
	"healthadvisor.app/pkg/errors"
)

const airQualityCityPath = "/api/air-quality/city"

// AirQualityProviderAdapter implements AirQualityProvider port over the air-quality service
type AirQualityProviderAdapter struct {
	client *resty.Client
}

func NewAirQualityProviderAdapter(params ClientParams) ports.AirQualityProvider {
	return &AirQualityProviderAdapter{client: newRestyClient(params)}
}

// GetAirQuality returns the latest station readings for a city
func (p *AirQualityProviderAdapter) GetAirQuality(ctx context.Context, city, country string) ([]ports.AirQualityData, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	var data []ports.AirQualityData
	err := getJSON(ctx, p.client, ports.ServiceAirQuality, airQualityCityPath, map[string]string{
		"city":    city,
		"country": country,
	}, &data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (p *AirQualityProviderAdapter) GetProviderName() string {
	return ports.ServiceAirQuality
}
