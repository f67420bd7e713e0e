package permission

// Mask128 is a 128-bit permission bitmask, used once a table has more than
// 64 distinct resource:action pairs.
type Mask128 struct {
	A uint64
	B uint64
}

// Has reports whether the given bit is set.
func (m *Mask128) Has(bit int) bool {
	if bit < 0 || bit >= 128 {
		return false
	}
	if bit < 64 {
		return (m.A & (1 << bit)) != 0
	}
	return (m.B & (1 << (bit - 64))) != 0
}

// Set sets the given bit in the mask.
func (m *Mask128) Set(bit int) {
	if bit < 0 || bit >= 128 {
		return
	}
	if bit < 64 {
		m.A |= (1 << bit)
	} else {
		m.B |= (1 << (bit - 64))
	}
}

// Clear clears the given bit in the mask.
func (m *Mask128) Clear(bit int) {
	if bit < 0 || bit >= 128 {
		return
	}
	if bit < 64 {
		m.A &^= (1 << bit)
	} else {
		m.B &^= (1 << (bit - 64))
	}
}

// mask is satisfied by *Mask64 and *Mask128.
type mask interface {
	Has(bit int) bool
	Set(bit int)
}

func newMask(maxBits int) mask {
	if maxBits == 64 {
		m := Mask64(0)
		return &m
	}
	return &Mask128{}
}
