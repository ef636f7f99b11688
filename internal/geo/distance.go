package geo

import "math"

// EarthRadiusMiles é o raio médio da Terra em milhas, usado pelo haversine.
const EarthRadiusMiles = 3958.8

// Haversine calcula a distância de grande círculo entre dois pontos
// (latitude/longitude em graus), em milhas.
// É uma função total: não valida faixas de entrada. Simétrica e zero
// para pontos idênticos.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}
