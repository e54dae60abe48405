package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/decrypto-backend/internal/apperror"
)

const (
	CodeLength = 3
	MinDigit   = 1
	MaxDigit   = 4
)

// Code is an ordered choice of 3 distinct digits from 1..4.
type Code [CodeLength]int

// ParseCode validates a code received from a client.
func ParseCode(digits []int) (Code, error) {
	var code Code

	if len(digits) != CodeLength {
		return code, fmt.Errorf("%w: got %d digits", apperror.ErrInvalidCode, len(digits))
	}

	copy(code[:], digits)

	if !code.IsValid() {
		return Code{}, fmt.Errorf("%w: %v", apperror.ErrInvalidCode, digits)
	}

	return code, nil
}

func (that Code) IsValid() bool {
	var seen [MaxDigit + 1]bool

	for _, digit := range that {
		if digit < MinDigit || digit > MaxDigit || seen[digit] {
			return false
		}
		seen[digit] = true
	}

	return true
}

func (that Code) String() string {
	return fmt.Sprintf("%d-%d-%d", that[0], that[1], that[2])
}

// AllCodes returns every possible code in lexicographic order.
func AllCodes() []Code {
	codes := make([]Code, 0, 24)

	for a := MinDigit; a <= MaxDigit; a++ {
		for b := MinDigit; b <= MaxDigit; b++ {
			for c := MinDigit; c <= MaxDigit; c++ {
				code := Code{a, b, c}
				if code.IsValid() {
					codes = append(codes, code)
				}
			}
		}
	}

	return codes
}

// codePicker draws round codes. With unique set, no code repeats until all
// of them have been used, after which the cycle starts over.
type codePicker struct {
	rng    *rand.Rand
	unique bool
	used   map[Code]struct{}
	all    []Code
}

func newCodePicker(rng *rand.Rand, unique bool) *codePicker {
	return &codePicker{
		rng:    rng,
		unique: unique,
		used:   make(map[Code]struct{}),
		all:    AllCodes(),
	}
}

// next returns a fresh code and whether the used set was reset before drawing.
func (that *codePicker) next() (Code, bool) {
	if !that.unique {
		return that.all[that.rng.IntN(len(that.all))], false
	}

	cycleReset := false
	if len(that.used) >= len(that.all) {
		clear(that.used)
		cycleReset = true
	}

	available := make([]Code, 0, len(that.all)-len(that.used))
	for _, code := range that.all {
		if _, ok := that.used[code]; !ok {
			available = append(available, code)
		}
	}

	code := available[that.rng.IntN(len(available))]
	that.used[code] = struct{}{}

	return code, cycleReset
}
