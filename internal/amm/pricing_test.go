package amm

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPriceHarmonyReferenceTrade(t *testing.T) {
	// k = 42,700,000; newRin = 1010; newRout ~ 42,277.23; out ~ 422.77
	out, impact := PriceHarmony(1000, 42700, 10)

	if !almostEqual(out, 422.7722772277, 1e-6) {
		t.Fatalf("output mismatch: got %v", out)
	}
	if impact <= 0 {
		t.Fatalf("expected positive price impact, got %v", impact)
	}
}

func TestPriceHarmonyConservesProduct(t *testing.T) {
	reserveIn, reserveOut := 1000.0, 42700.0
	out, _ := PriceHarmony(reserveIn, reserveOut, 10)

	kBefore := reserveIn * reserveOut
	kAfter := (reserveIn + 10) * (reserveOut - out)
	if math.Abs(kAfter-kBefore)/kBefore > 1e-12 {
		t.Fatalf("product not conserved: %v != %v", kAfter, kBefore)
	}
}

func TestPriceHarmonyBounded(t *testing.T) {
	// Even an absurdly large trade cannot drain the receiving reserve.
	out, _ := PriceHarmony(1000, 42700, 1e12)
	if out >= 42700 {
		t.Fatalf("output %v must stay below receiving reserve", out)
	}
}

func TestPriceHarmonySubLinear(t *testing.T) {
	out1, _ := PriceHarmony(1000, 42700, 10)
	out2, _ := PriceHarmony(1000, 42700, 100)

	rate1 := out1 / 10
	rate2 := out2 / 100
	if rate2 >= rate1 {
		t.Fatalf("expected diminishing returns: rate(100)=%v >= rate(10)=%v", rate2, rate1)
	}
}

func TestPriceBeatDropLinear(t *testing.T) {
	out, impact := PriceBeatDrop(1000, 42700, 10)

	if !almostEqual(out, 427, 1e-9) {
		t.Fatalf("output mismatch: got %v, want 427", out)
	}
	if impact != beatDropPriceImpact {
		t.Fatalf("impact mismatch: got %v, want %v", impact, beatDropPriceImpact)
	}

	// Linearity: doubling the input doubles the output.
	out2, _ := PriceBeatDrop(1000, 42700, 20)
	if !almostEqual(out2, 2*out, 1e-9) {
		t.Fatalf("expected linear output: got %v, want %v", out2, 2*out)
	}
}

func TestPriceBeatDropDrainCap(t *testing.T) {
	// The frozen rate would pay out more than exists; output is capped at the
	// receiving reserve.
	out, _ := PriceBeatDrop(1000, 42700, 1e6)
	if out != 42700 {
		t.Fatalf("expected full drain cap 42700, got %v", out)
	}
}

func TestPriceMixedConvergesToHarmony(t *testing.T) {
	cfg := DefaultConfig()

	harmonyOut, harmonyImpact := PriceHarmony(1000, 42700, 10)
	mixedOut, mixedImpact := PriceMixed(cfg, 1000, 42700, 10, 0)

	if !almostEqual(mixedOut, harmonyOut, 1e-9) {
		t.Fatalf("zero volatility: mixed output %v != harmony %v", mixedOut, harmonyOut)
	}
	if !almostEqual(mixedImpact, harmonyImpact, 1e-9) {
		t.Fatalf("zero volatility: mixed impact %v != harmony %v", mixedImpact, harmonyImpact)
	}
}

func TestPriceMixedConvergesToBeatDrop(t *testing.T) {
	cfg := DefaultConfig()

	beatDropOut, beatDropImpact := PriceBeatDrop(1000, 42700, 10)

	// At and above the volatility threshold the blend weight saturates at 1.
	for _, volatility := range []float64{cfg.VolatilityThreshold, cfg.VolatilityThreshold * 2} {
		mixedOut, mixedImpact := PriceMixed(cfg, 1000, 42700, 10, volatility)
		if !almostEqual(mixedOut, beatDropOut, 1e-9) {
			t.Fatalf("volatility %v: mixed output %v != beat drop %v", volatility, mixedOut, beatDropOut)
		}
		if !almostEqual(mixedImpact, beatDropImpact, 1e-9) {
			t.Fatalf("volatility %v: mixed impact %v != beat drop %v", volatility, mixedImpact, beatDropImpact)
		}
	}
}

func TestPriceMixedMidpoint(t *testing.T) {
	cfg := DefaultConfig()

	harmonyOut, _ := PriceHarmony(1000, 42700, 10)
	beatDropOut, _ := PriceBeatDrop(1000, 42700, 10)
	mixedOut, _ := PriceMixed(cfg, 1000, 42700, 10, cfg.VolatilityThreshold/2)

	want := harmonyOut*0.5 + beatDropOut*0.5
	if !almostEqual(mixedOut, want, 1e-9) {
		t.Fatalf("midpoint blend mismatch: got %v, want %v", mixedOut, want)
	}
}
