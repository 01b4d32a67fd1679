package ledger

// accountStorageOverhead is the space every account is charged for on top of
// its data.
const accountStorageOverhead = 128

// DefaultRent is the rent configuration of a fresh ledger.
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionThreshold:  2,
}

// Rent defines how many lamports an account must hold to be exempt from rent.
type Rent struct {
	LamportsPerByteYear uint64
	// ExemptionThreshold is the number of years worth of rent an account must
	// hold to be exempt.
	ExemptionThreshold uint64
}

// MinimumBalance returns the minimum balance for an account with the given
// data length to be rent exempt.
func (r Rent) MinimumBalance(space uint64) uint64 {
	return (accountStorageOverhead + space) *
		r.LamportsPerByteYear * r.ExemptionThreshold
}

// IsExempt returns whether lamports cover the minimum balance for space.
func (r Rent) IsExempt(lamports uint64, space uint64) bool {
	return lamports >= r.MinimumBalance(space)
}

func (r Rent) isZero() bool {
	return r.LamportsPerByteYear == 0 && r.ExemptionThreshold == 0
}
