package sortutil

// Counters records what a sort did. All methods accept a nil receiver so
// uninstrumented calls pay a single nil check per event.
type Counters struct {
	Comparisons     int64 `json:"comparisons"`
	Moves           int64 `json:"moves"`
	AuxAcquisitions int64 `json:"aux_acquisitions"`
	AuxElements     int64 `json:"aux_elements"`
	PeakAuxLive     int64 `json:"peak_aux_live"`

	auxLive int64
}

// Compare counts one element comparison.
func (c *Counters) Compare() {
	if c != nil {
		c.Comparisons++
	}
}

// Move counts n element writes into the sequence or an auxiliary buffer.
func (c *Counters) Move(n int) {
	if c != nil {
		c.Moves += int64(n)
	}
}

// AcquireAux records an auxiliary buffer of n elements becoming live.
func (c *Counters) AcquireAux(n int) {
	if c == nil {
		return
	}
	c.AuxAcquisitions++
	c.AuxElements += int64(n)
	c.auxLive += int64(n)
	if c.auxLive > c.PeakAuxLive {
		c.PeakAuxLive = c.auxLive
	}
}

// ReleaseAux records an auxiliary buffer of n elements going out of scope.
func (c *Counters) ReleaseAux(n int) {
	if c != nil {
		c.auxLive -= int64(n)
	}
}

// AuxLive returns the number of auxiliary element slots currently held.
func (c *Counters) AuxLive() int64 {
	if c == nil {
		return 0
	}
	return c.auxLive
}

// Reset zeroes every counter.
func (c *Counters) Reset() {
	if c != nil {
		*c = Counters{}
	}
}

// Add accumulates other into c.
func (c *Counters) Add(other Counters) {
	if c == nil {
		return
	}
	c.Comparisons += other.Comparisons
	c.Moves += other.Moves
	c.AuxAcquisitions += other.AuxAcquisitions
	c.AuxElements += other.AuxElements
	if other.PeakAuxLive > c.PeakAuxLive {
		c.PeakAuxLive = other.PeakAuxLive
	}
}
