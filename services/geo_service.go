package services

import (
	"math"

	"github.com/yaseeradam/smartlink-backend/models"
)

// Delivery fee parameters: flat base fee within 2km, per-km rate beyond.
const (
	baseDeliveryFee = 500.0
	perKmRate       = 100.0
	freeDistanceKm  = 2.0
)

// Average in-city speeds (km/h) per vehicle type, used for ETA estimates.
var vehicleSpeeds = map[string]float64{
	models.VehicleMotorcycle: 25,
	models.VehicleBicycle:    15,
	models.VehicleCar:        20,
}

// Distance returns the haversine distance between two points in kilometers.
func Distance(a, b models.Coordinates) float64 {
	const earthRadiusKm = 6371

	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// DeliveryFee returns the fee for a delivery distance in kilometers.
func DeliveryFee(distanceKm float64) float64 {
	if distanceKm <= freeDistanceKm {
		return baseDeliveryFee
	}
	return baseDeliveryFee + (distanceKm-freeDistanceKm)*perKmRate
}

// EstimateDeliveryMinutes returns a rough ETA in minutes for the distance
// and vehicle type, with a fixed buffer for pickup and traffic.
func EstimateDeliveryMinutes(distanceKm float64, vehicleType string) int {
	speed, ok := vehicleSpeeds[vehicleType]
	if !ok {
		speed = vehicleSpeeds[models.VehicleMotorcycle]
	}
	minutes := int(math.Ceil(distanceKm / speed * 60))
	return minutes + 15
}
