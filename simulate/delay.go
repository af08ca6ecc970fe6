package simulate

import (
	"math"
	"math/rand/v2"
	"time"
)

// NetworkDelay samples round-trip delays from a Pareto distribution,
// grounded on original_source/src/network/network_delay.rs's
// NetworkConnection (rand_distr::Pareto driving scheduled-delivery
// events, seeded for deterministic replay). That crate isn't available in
// Go's ecosystem under this name; rather than adding an unfamiliar stats
// dependency for one distribution, this samples Pareto(scale, shape)
// directly from math/rand/v2 via inverse-CDF (X = scale / U^(1/shape),
// U ~ Uniform(0,1)), the standard closed-form sampling technique for the
// Pareto distribution (see SPEC_FULL.md §12).
type NetworkDelay struct {
	scale float64 // minimum possible delay, in milliseconds
	shape float64 // tail heaviness; higher = delays cluster closer to scale
	rng   *rand.Rand
}

// NewNetworkDelay builds a delay model with the given average RTT and
// Pareto shape parameter, matching NetworkConnection::new(avg_rtt, shape).
// seed deterministically seeds the sampler so a simulation run's delays
// (and so its --log output, apart from the random run id stamped on every
// record) are reproducible, matching the original's seeded RNG.
func NewNetworkDelay(avgRTTMillis, shape float64, seed uint64) NetworkDelay {
	// For a Pareto(scale, shape) with shape > 1, mean = scale*shape/(shape-1).
	// Solve for scale given the desired mean to match the Rust
	// constructor's (avg_rtt, shape) parameterization.
	scale := avgRTTMillis
	if shape > 1 {
		scale = avgRTTMillis * (shape - 1) / shape
	}
	return NetworkDelay{
		scale: scale,
		shape: shape,
		rng:   rand.New(rand.NewPCG(seed, seed)),
	}
}

// Sample draws one delay duration, rounded to the nearest millisecond the
// way the original implementation rounds its sampled float.
func (d NetworkDelay) Sample() time.Duration {
	u := d.rng.Float64()
	if u <= 0 {
		u = 1e-9
	}
	millis := d.scale / math.Pow(u, 1/d.shape)
	return time.Duration(millis+0.5) * time.Millisecond
}
