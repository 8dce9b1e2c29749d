package dao

import (
	"errors"
	"math/rand"
)

var ErrIDSpaceExhausted = errors.New("no free id left in range")

const (
	IDMin     = 100
	IDMax     = 999
	TicketMin = 10000
	TicketMax = 99999
)

// randomAttempts bounds the random probing before falling back to a scan.
const randomAttempts = 64

// NextKey picks a key in [lo, hi] that is not in taken, the way the console
// process allocates ids: random first, then the lowest free value.
func NextKey(taken []int32, lo, hi int32, rnd *rand.Rand) (int32, error) {
	used := make(map[int32]struct{}, len(taken))
	for _, k := range taken {
		used[k] = struct{}{}
	}
	span := int(hi - lo + 1)
	if len(used) < span {
		for i := 0; i < randomAttempts; i++ {
			var n int
			if rnd != nil {
				n = rnd.Intn(span)
			} else {
				n = rand.Intn(span)
			}
			k := lo + int32(n)
			if _, ok := used[k]; !ok {
				return k, nil
			}
		}
	}
	for k := lo; k <= hi; k++ {
		if _, ok := used[k]; !ok {
			return k, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}
