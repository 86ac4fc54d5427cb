// Package units provides shared constants and conversions for the
// quantities carried in MANDYOC output files.
//
// Files on disk store SI values: coordinates in meters, velocities in m/s
// and times in years. Plots and reports use km, cm/yr and Ma, which are
// the scales geodynamic models are discussed in.
package units

// Conversion factors.
const (
	MetersPerKilometer  = 1000.0
	YearsPerMa          = 1e6
	SecondsPerYear      = 365.25 * 24 * 3600
	CentimetersPerMeter = 100.0
)

// MetersToKilometers converts a length from m to km.
func MetersToKilometers(m float64) float64 {
	return m / MetersPerKilometer
}

// YearsToMa converts a time from years to mega-annums.
func YearsToMa(years float64) float64 {
	return years / YearsPerMa
}

// MetersPerSecondToCmPerYear converts a velocity from m/s to cm/yr, the
// customary unit for plate motion.
func MetersPerSecondToCmPerYear(v float64) float64 {
	return v * CentimetersPerMeter * SecondsPerYear
}

// ForQuantity returns the unit string for a MANDYOC output quantity as
// stored on disk. Unknown quantities report as dimensionless.
func ForQuantity(name string) string {
	switch name {
	case "temperature":
		return "K"
	case "density":
		return "kg/m^3"
	case "radiogenic_heat":
		return "W/m^3"
	case "pressure":
		return "Pa"
	case "viscosity":
		return "Pa s"
	case "velocity_x", "velocity_y", "velocity_z", "velocity":
		return "m/s"
	default:
		return "dimensionless"
	}
}
