package sim

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/worldgen"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/testutil"
)

func BenchmarkAdvance(b *testing.B) {
	for _, population := range []int{900, 9000} {
		for _, strategy := range strategies {
			b.Run(fmt.Sprintf("%s/pop=%d", strategy, population), func(b *testing.B) {
				rng := testutil.NewTestRNG(1)
				base, err := worldgen.Generate(rng, population, 0.25, 0.25)
				if err != nil {
					b.Fatal(err)
				}
				stepper := NewStepper(rng, strategy, testutil.NopLogger())

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					b.StopTimer()
					grid := base.Clone()
					b.StartTimer()
					if _, err := stepper.Advance(grid, 0.75); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkComputeStats(b *testing.B) {
	grid, err := worldgen.Generate(testutil.NewTestRNG(1), 9000, 0.25, 0.25)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeStats(grid, 0.75)
	}
}
