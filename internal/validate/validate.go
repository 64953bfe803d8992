// Package validate holds the pure input validators shared by the record
// services. All functions are side-effect free.
package validate

import "time"

const dateLayout = "2006-01-02"

// CalendarDate reports whether s is a real calendar date in strict
// YYYY-MM-DD form. time.Parse with a zero-padded layout rejects both
// malformed strings ("2025-1-1", "2025-13-01") and dates that do not exist
// on the calendar ("2023-02-30"), so no normalization can slip through.
func CalendarDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// NormalizeCPF strips every non-digit character from s. The result is what
// gets persisted and compared for uniqueness.
func NormalizeCPF(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// CPF reports whether s is a valid 11-digit CPF number. Formatting
// characters are ignored. Sequences of a single repeated digit carry a
// technically correct checksum but are not issued, so they are rejected.
func CPF(s string) bool {
	norm := NormalizeCPF(s)
	if len(norm) != 11 {
		return false
	}

	digits := make([]int, 11)
	repeated := true
	for i := 0; i < 11; i++ {
		digits[i] = int(norm[i] - '0')
		if digits[i] != digits[0] {
			repeated = false
		}
	}
	if repeated {
		return false
	}

	return checkDigit(digits[:9], 10) == digits[9] &&
		checkDigit(digits[:10], 11) == digits[10]
}

// checkDigit computes one CPF verification digit over ds using descending
// weights starting at startWeight. A remainder of 10 or 11 maps to 0.
func checkDigit(ds []int, startWeight int) int {
	sum := 0
	for i, d := range ds {
		sum += d * (startWeight - i)
	}
	d := 11 - sum%11
	if d >= 10 {
		d = 0
	}
	return d
}
