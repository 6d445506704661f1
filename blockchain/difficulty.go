package blockchain

// HashMeetsDifficulty reports whether hash starts with difficulty '0' characters.
func HashMeetsDifficulty(hash string, difficulty uint) bool {
	if difficulty > uint(len(hash)) {
		return false
	}
	return LeadingZeros(hash) >= difficulty
}

// LeadingZeros counts the leading '0' characters of a hex digest, i.e. the
// highest difficulty the hash satisfies.
func LeadingZeros(hash string) uint {
	var n uint
	for n < uint(len(hash)) && hash[n] == '0' {
		n++
	}
	return n
}
