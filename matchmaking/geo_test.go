package matchmaking

import (
	"math"
	"testing"
)

func TestHaversineKmSaoPauloRio(t *testing.T) {
	// São Paulo (Sé) -> Rio (centro): ~360 km em linha reta
	d := HaversineKm(-23.5505, -46.6333, -22.9068, -43.1729)
	if d < 330 || d > 390 {
		t.Fatalf("distância SP-Rio fora do esperado: %.1f km", d)
	}
}

func TestHaversineKmSamePoint(t *testing.T) {
	d := HaversineKm(-23.5505, -46.6333, -23.5505, -46.6333)
	if math.Abs(d) > 0.001 {
		t.Fatalf("mesmo ponto deveria dar 0, deu %.6f", d)
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := HaversineKm(-23.5505, -46.6333, -22.9068, -43.1729)
	b := HaversineKm(-22.9068, -43.1729, -23.5505, -46.6333)
	if math.Abs(a-b) > 0.0001 {
		t.Fatalf("haversine não simétrica: %.6f vs %.6f", a, b)
	}
}
