package crypto

import "strings"

type direction int

const (
	encrypt direction = iota
	decrypt
)

// EncryptText encrypts letters with the Autokey cipher (mod 26). Spaces are
// kept in place, any other non-letter is dropped. The key is reduced to its
// letters, and every consumed plaintext letter is appended to the keystream.
func EncryptText(plaintext, key string) (string, TraceTable, error) {
	return processText(plaintext, key, encrypt)
}

// DecryptText reverses EncryptText. The recovered plaintext letters extend the
// keystream exactly as they did during encryption.
func DecryptText(ciphertext, key string) (string, TraceTable, error) {
	return processText(ciphertext, key, decrypt)
}

func processText(input, key string, dir direction) (string, TraceTable, error) {
	reducedKey := LettersOnlyUpper(key)
	if reducedKey == "" {
		return "", nil, ErrEmptyKey
	}

	text := toUpper(Normalize(input))
	keystream := NewKeystream([]byte(reducedKey), len(text))
	trace := make(TraceTable, 0, len(text))
	snapshots := make([]int, 0, len(text))

	var out strings.Builder
	out.Grow(len(text))

	cursor := 0
	for _, r := range text {
		if r == ' ' {
			out.WriteByte(' ')
			trace = append(trace, passThroughRow(" ", "", " "))
			snapshots = append(snapshots, keystream.Len())
			continue
		}
		if !IsLetter(r) {
			continue
		}

		c := byte(r)
		// the key is never empty and every letter appends one symbol, so the
		// cursor always stays inside the keystream
		k, _ := keystream.At(cursor)

		var result int
		var plain byte
		switch dir {
		case encrypt:
			result = mod(CharToNum(c)+CharToNum(k), alphabetSize)
			plain = c
		case decrypt:
			result = mod(CharToNum(c)-CharToNum(k), alphabetSize)
			plain = NumToChar(result)
		}

		o := NumToChar(result)
		out.WriteByte(o)
		cursor++
		keystream.Append(plain)

		trace = append(trace, letterRow(c, k, result, o))
		snapshots = append(snapshots, keystream.Len())
	}

	trace.shareKeystream(keystream.String(), snapshots)
	return out.String(), trace, nil
}
