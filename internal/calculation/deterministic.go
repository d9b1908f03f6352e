package calculation

import "time"

// nowFunc supplies "now" for cache expiry and the projection's month-zero
// anchor. Tests freeze it so reconstructed history lands on fixed months.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc supplies the PRNG seed for a projection run when the Generator
// has no explicit Seed. The life-event, windfall and history-noise draws
// all flow from this one seed, so pinning it reproduces a series exactly.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }
