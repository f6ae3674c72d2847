package wordlist

import "math/rand"

// Shuffle returns a copy of words in an order fixed by seed. A zero seed
// keeps the original order so saved word positions stay meaningful.
func Shuffle(words []string, seed int64) []string {
	out := append([]string(nil), words...)
	if seed == 0 {
		return out
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
