package upcean

import "errors"

var (
	// ErrNotFound is returned when no guard or digit pattern matched within
	// tolerance: the row probably does not hold this symbology.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when a plausible digit string fails its check digit.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a decoded string violates structural rules,
	// such as a non-digit character or the wrong length.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a barcode cannot be encoded.
	ErrWriter = errors.New("writer error")
)

// severity ranks decode failures by how much they say about the row.
func severity(err error) int {
	switch {
	case err == nil:
		return -1
	case errors.Is(err, ErrChecksum):
		return 3
	case errors.Is(err, ErrFormat):
		return 2
	case errors.Is(err, ErrNotFound):
		return 1
	default:
		return 0
	}
}

// MostSevere returns whichever of a and b is the more informative failure:
// a checksum error beats a format error, which beats not found. On a tie the
// first argument wins.
func MostSevere(a, b error) error {
	if severity(b) > severity(a) {
		return b
	}
	return a
}
