package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaseeradam/smartlink-backend/models"
)

func TestDistance(t *testing.T) {
	ikeja := models.Coordinates{Latitude: 6.6018, Longitude: 3.3515}
	lekki := models.Coordinates{Latitude: 6.4478, Longitude: 3.4723}

	d := Distance(ikeja, lekki)
	assert.InDelta(t, 21.6, d, 0.5)

	assert.Zero(t, Distance(ikeja, ikeja))
	assert.InDelta(t, Distance(ikeja, lekki), Distance(lekki, ikeja), 1e-9)
}

func TestDeliveryFee(t *testing.T) {
	// Flat base fee up to 2km, then 100 per extra km.
	assert.Equal(t, 500.0, DeliveryFee(0))
	assert.Equal(t, 500.0, DeliveryFee(2))
	assert.Equal(t, 600.0, DeliveryFee(3))
	assert.Equal(t, 1300.0, DeliveryFee(10))
}

func TestEstimateDeliveryMinutes(t *testing.T) {
	// 10km at 25km/h is 24min travel plus the 15min buffer.
	assert.Equal(t, 39, EstimateDeliveryMinutes(10, models.VehicleMotorcycle))
	// Bicycles are slower.
	assert.Equal(t, 55, EstimateDeliveryMinutes(10, models.VehicleBicycle))
	// Unknown vehicles fall back to motorcycle speed.
	assert.Equal(t, 39, EstimateDeliveryMinutes(10, "hoverboard"))
}
