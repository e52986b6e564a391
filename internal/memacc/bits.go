package memacc

// Field extracts width bits of word starting at bit shift.
func Field(word uint32, shift, width uint) uint32 {
	return (word >> shift) & (1<<width - 1)
}

// Bit reports whether bit n of word is set.
func Bit(word uint32, n uint) bool {
	return (word>>n)&1 != 0
}
