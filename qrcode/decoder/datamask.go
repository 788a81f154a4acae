package decoder

// DataMask reports whether mask pattern mask inverts the module at the
// given row and column.
func DataMask(mask, row, col int) bool {
	i, j := row, col
	switch mask {
	case 0:
		return (i+j)&0x01 == 0
	case 1:
		return i&0x01 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return ((i/2)+(j/3))&0x01 == 0
	case 5:
		return (i*j)%6 == 0
	case 6:
		return (i*j)%6 < 3
	case 7:
		return (i+j+(i*j)%3)&0x01 == 0
	}
	return false
}
