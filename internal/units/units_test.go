package units

import (
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"meters to km", MetersToKilometers(1500), 1.5},
		{"years to Ma", YearsToMa(2.5e6), 2.5},
		{"1 cm/yr in m/s round trips", MetersPerSecondToCmPerYear(1.0 / (CentimetersPerMeter * SecondsPerYear)), 1.0},
		{"plate speed", MetersPerSecondToCmPerYear(3.17e-9), 3.17e-9 * 100 * SecondsPerYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-9 {
				t.Errorf("got %g, want %g", tt.got, tt.expected)
			}
		})
	}
}

func TestForQuantity(t *testing.T) {
	tests := []struct {
		quantity string
		want     string
	}{
		{"temperature", "K"},
		{"density", "kg/m^3"},
		{"radiogenic_heat", "W/m^3"},
		{"pressure", "Pa"},
		{"viscosity", "Pa s"},
		{"velocity_x", "m/s"},
		{"velocity_z", "m/s"},
		{"strain", "dimensionless"},
		{"viscosity_factor", "dimensionless"},
	}
	for _, tt := range tests {
		if got := ForQuantity(tt.quantity); got != tt.want {
			t.Errorf("ForQuantity(%s) = %q, want %q", tt.quantity, got, tt.want)
		}
	}
}
