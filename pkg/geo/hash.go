package geo

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Salts separate independent hash streams drawn from the same cell.
const (
	SaltZone uint64 = iota + 1
	SaltFootprintWidth
	SaltFootprintDepth
	SaltFloors
)

// CellHash deterministically hashes integer cell coordinates, a seed and
// a salt. The same inputs always yield the same value on every platform.
func CellHash(cellX, cellZ, seed int64, salt uint64) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(cellX))
	binary.LittleEndian.PutUint64(buf[8:], uint64(cellZ))
	binary.LittleEndian.PutUint64(buf[16:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[24:], salt)
	return xxhash.Sum64(buf[:])
}

// PointHash hashes a real-valued position by its Epsilon-quantized
// coordinates.
func PointHash(p Point2D, seed int64, salt uint64) uint64 {
	k := p.Key()
	return CellHash(k[0], k[1], seed, salt)
}

// UnitFloat maps a hash onto [0,1).
func UnitFloat(h uint64) float64 {
	return float64(h>>11) / float64(uint64(1)<<53)
}

// IntRange maps a hash onto the closed integer range [lo, hi].
func IntRange(h uint64, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo + 1)
	return lo + int(h%span)
}

// FloatRange maps a hash onto [lo, hi], snapped to whole metres.
func FloatRange(h uint64, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return math.Min(hi, lo+math.Floor(UnitFloat(h)*(hi-lo+1)))
}
