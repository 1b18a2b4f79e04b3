package oned

import (
	"fmt"

	"github.com/ericlevine/upcean"
)

// ChecksumChecker is implemented by readers whose symbology needs more than
// the standard check before it: a length rule, or expanding a compressed
// form. Readers that don't implement it get CheckStandardUPCEANChecksum.
type ChecksumChecker interface {
	CheckChecksum(s string) error
}

// CheckStandardUPCEANChecksum verifies the UPC/EAN check digit, the last
// character of s. It returns upcean.ErrFormat when s is empty or holds a
// non-digit and upcean.ErrChecksum when the check digit is wrong.
func CheckStandardUPCEANChecksum(s string) error {
	length := len(s)
	if length == 0 {
		return fmt.Errorf("empty digit string: %w", upcean.ErrFormat)
	}
	check := int(s[length-1]) - '0'
	if check < 0 || check > 9 {
		return fmt.Errorf("non-digit check character %q: %w", s[length-1], upcean.ErrFormat)
	}
	expected, err := GetStandardUPCEANChecksum(s[:length-1])
	if err != nil {
		return err
	}
	if expected != check {
		return upcean.ErrChecksum
	}
	return nil
}

// GetStandardUPCEANChecksum computes the UPC/EAN check digit for a string of
// digits without the check digit itself. Digits are weighted 3 and 1
// alternately, starting with 3 on the rightmost one.
func GetStandardUPCEANChecksum(s string) (int, error) {
	if err := checkDigits(s); err != nil {
		return 0, err
	}
	length := len(s)
	sum := 0
	for i := length - 1; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	sum *= 3
	for i := length - 2; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	return (10 - sum%10) % 10, nil
}

func checkDigits(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("non-digit character %q at %d: %w", s[i], i, upcean.ErrFormat)
		}
	}
	return nil
}

// checkLengthAndChecksum applies a symbology's fixed length before the
// standard checksum.
func checkLengthAndChecksum(s string, format upcean.Format, length int) error {
	if len(s) != length {
		return fmt.Errorf("%s needs %d digits, got %d: %w", format, length, len(s), upcean.ErrFormat)
	}
	return CheckStandardUPCEANChecksum(s)
}
