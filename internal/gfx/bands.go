package gfx

// Bands maps a screen row to its priority band.
type Bands struct {
	table  [Height]uint8
	custom bool
}

// NewBands returns the default band table: rows above 48 are band 4,
// then a new band every 12 rows.
func NewBands() *Bands {
	b := &Bands{}
	b.Default()
	return b
}

// Default restores the default table.
func (b *Bands) Default() {
	for y := range b.table {
		if y < 48 {
			b.table[y] = 4
		} else {
			b.table[y] = uint8(y/12 + 1)
		}
	}
	b.custom = false
}

// SetBase rebuilds the table so that band 4 covers the rows above base
// and the remaining rows are split evenly between bands 5 to 15.
func (b *Bands) SetBase(base int) {
	if base < 0 {
		base = 0
	}
	if base >= Height {
		base = Height - 1
	}
	x := (Height - base) * Height / 10
	for y := range b.table {
		if y < base {
			b.table[y] = 4
			continue
		}
		p := (y-base)*Height/x + 5
		if p > 15 {
			p = 15
		}
		b.table[y] = uint8(p)
	}
	b.custom = true
}

// FromY returns the band of row y.
func (b *Bands) FromY(y int) uint8 {
	if y < 0 {
		y = 0
	}
	if y >= Height {
		y = Height - 1
	}
	return b.table[y]
}

// RowFor returns the row a sprite of fixed priority p sorts at.
func (b *Bands) RowFor(p uint8) int {
	if !b.custom {
		return (int(p)-5)*12 + 48
	}
	y := Height - 1
	for y >= 0 && b.table[y] >= p {
		y--
	}
	return y
}
