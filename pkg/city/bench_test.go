package city

import (
	"fmt"
	"testing"

	"github.com/ChicagoDave/citygen/pkg/spec"
)

// configForSide creates a square city of the given side length.
func configForSide(side float64) spec.Config {
	cfg := spec.Defaults()
	cfg.Width = side
	cfg.Height = side
	return cfg
}

func BenchmarkGenerate(b *testing.B) {
	for _, side := range []float64{1000, 4000, 10000} {
		cfg := configForSide(side)
		b.Run(fmt.Sprintf("%.0fm", side), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Generate(cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCheck(b *testing.B) {
	m, err := Generate(configForSide(4000))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Check(m)
	}
}

func TestGenerateLargeCity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large city in short mode")
	}
	m, err := Generate(configForSide(6000))
	if err != nil {
		t.Fatal(err)
	}
	s := m.Stats()
	if s.CitySize != "metropolis" {
		t.Errorf("size = %s, want metropolis", s.CitySize)
	}
	if report := Check(m); !report.Valid {
		t.Errorf("large city failed checks: %s", report.Summary)
	}
	t.Logf("6km city: %d zones, %d roads, %d buildings", s.TotalZones, s.TotalRoads, s.TotalBuildings)
}
