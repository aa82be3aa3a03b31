package util

import "time"

// Taipei is the fixed UTC+8 civil zone used for every forecast decision.
// Taiwan does not observe daylight saving time.
var Taipei = time.FixedZone("Asia/Taipei", 8*60*60)

// NowTaipei exposes time.Now in the civil zone for deterministic testing.
func NowTaipei() time.Time {
	return time.Now().In(Taipei)
}
