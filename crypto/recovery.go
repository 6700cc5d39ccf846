package crypto

import (
	"fmt"
	"strings"
)

// needleLength is how many leading plaintext letters are searched for in the
// derived keystream to find where the key ends.
const needleLength = 5

// Alignment selects how plaintext and ciphertext symbols are paired up
type Alignment int

const (
	// AlignPositions pairs the normalized inputs symbol by symbol, so both
	// texts must have their spaces and punctuation in the same places.
	AlignPositions Alignment = iota
	// AlignLetters pairs the letters-only projections of both inputs.
	AlignLetters
)

func (a Alignment) String() string {
	switch a {
	case AlignPositions:
		return "positions"
	case AlignLetters:
		return "letters"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment accepts "positions", "letters" or an empty string (positions)
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "positions", "position":
		return AlignPositions, nil
	case "letters", "letter":
		return AlignLetters, nil
	default:
		return AlignPositions, fmt.Errorf("unknown alignment %q", s)
	}
}

// Recovery is the outcome of a known-plaintext attack
type Recovery struct {
	Key       string     `json:"key"`
	Keystream string     `json:"keystream"`
	Matched   bool       `json:"matched"`
	Trace     TraceTable `json:"trace"`
}

// RecoverKey derives the Autokey key from a plaintext/ciphertext pair aligned by position.
func RecoverKey(plaintext, ciphertext string) (string, TraceTable) {
	rec := Recover(plaintext, ciphertext, AlignPositions)
	return rec.Key, rec.Trace
}

// Recover runs the known-plaintext attack. The keystream of an Autokey
// encryption is key followed by the plaintext, so the derived keystream is
// cut right before the first occurrence of the plaintext's first letters.
// When they never show up (short sample or misaligned input) the whole
// derived keystream is returned with Matched set to false.
func Recover(plaintext, ciphertext string, align Alignment) Recovery {
	var pt, ct []rune
	switch align {
	case AlignLetters:
		pt = []rune(LettersOnlyUpper(plaintext))
		ct = []rune(LettersOnlyUpper(ciphertext))
	default:
		pt = []rune(toUpper(Normalize(plaintext)))
		ct = []rune(toUpper(Normalize(ciphertext)))
	}

	n := min(len(pt), len(ct))
	trace := make(TraceTable, 0, n)
	snapshots := make([]int, 0, n)

	var derived strings.Builder
	derived.Grow(n)

	for i := 0; i < n; i++ {
		p, c := pt[i], ct[i]
		if !IsLetter(p) || !IsLetter(c) {
			trace = append(trace, passThroughRow(string(p), " ", string(c)))
			snapshots = append(snapshots, derived.Len())
			continue
		}

		kn := mod(CharToNum(byte(c))-CharToNum(byte(p)), alphabetSize)
		k := NumToChar(kn)
		derived.WriteByte(k)

		trace = append(trace, TraceRow{
			Input:      string(p),
			InputCode:  intPtr(CharToNum(byte(p))),
			Key:        string(k),
			KeyCode:    intPtr(kn),
			Result:     intPtr(kn),
			Output:     string(c),
			OutputCode: intPtr(CharToNum(byte(c))),
		})
		snapshots = append(snapshots, derived.Len())
	}

	keystream := derived.String()
	trace.shareKeystream(keystream, snapshots)
	rec := Recovery{
		Key:       keystream,
		Keystream: keystream,
		Trace:     trace,
	}

	needle := LettersOnlyUpper(plaintext)
	if len(needle) > needleLength {
		needle = needle[:needleLength]
	}
	switch idx := strings.Index(keystream, needle); {
	case needle == "":
		// nothing to anchor on, the key cannot be told apart from the plaintext
		rec.Key = ""
	case idx != -1:
		rec.Key = keystream[:idx]
		rec.Matched = true
	}

	return rec
}
