package matchmaking

import "math"

const earthRadiusKm = 6371.0

// HaversineKm calcula a distância de círculo máximo entre dois pontos
// (aproximação de terra esférica). Suficiente pra filtro de raio de matching;
// ninguém aqui precisa de precisão geodésica.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
