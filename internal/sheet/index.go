package sheet

import "strconv"

// Index identifies a single cell by zero-based column (X) and row (Y).
// Column 0 displays as "A", row 0 displays as "1".
type Index struct {
	X uint32
	Y uint32
}

// IndexToString renders i using the bijective base-26 column convention
// (A..Z, AA..AZ, BA..) followed by the 1-based row number.
func IndexToString(i Index) string {
	col := i.X + 1 // switch to the "no zero digit" base-26 domain
	var letters []byte
	for col > 0 {
		col--
		letters = append(letters, byte('A'+col%26))
		col /= 26
	}
	for l, r := 0, len(letters)-1; l < r; l, r = l+1, r-1 {
		letters[l], letters[r] = letters[r], letters[l]
	}
	return string(letters) + strconv.FormatUint(uint64(i.Y+1), 10)
}

// StringToIndex parses the bijective base-26-letters-then-digits form
// produced by IndexToString. It returns ok=false for anything that does
// not match [A-Z]+[0-9]+ with a strictly positive row number.
func StringToIndex(s string) (Index, bool) {
	n := len(s)
	letterEnd := 0
	for letterEnd < n && s[letterEnd] >= 'A' && s[letterEnd] <= 'Z' {
		letterEnd++
	}
	if letterEnd == 0 || letterEnd == n {
		return Index{}, false
	}
	for i := letterEnd; i < n; i++ {
		if s[i] < '0' || s[i] > '9' {
			return Index{}, false
		}
	}

	var col uint64
	for i := 0; i < letterEnd; i++ {
		digit := uint64(s[i]-'A') + 1
		col = col*26 + digit
	}
	if col == 0 {
		return Index{}, false
	}

	row, err := strconv.ParseUint(s[letterEnd:], 10, 32)
	if err != nil || row == 0 {
		return Index{}, false
	}

	return Index{X: uint32(col - 1), Y: uint32(row - 1)}, true
}
