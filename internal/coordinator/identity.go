package coordinator

import "math/rand/v2"

// Issuer mints anonymous display ids within a fixed range. There is no
// uniqueness guarantee: two live sessions may draw the same id. The label is
// purely cosmetic; routing always keys on connection ids.
type Issuer struct {
	min, max int
}

func NewIssuer(min, max int) *Issuer {
	if max < min {
		min, max = max, min
	}
	return &Issuer{min: min, max: max}
}

func (i *Issuer) Issue() int {
	return i.min + rand.IntN(i.max-i.min+1)
}
