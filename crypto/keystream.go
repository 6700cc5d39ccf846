package crypto

// Keystream is the growing key material of a single cipher run. It starts as
// the key and only ever grows by appending, one symbol per processed input symbol.
type Keystream struct {
	symbols []byte
}

func NewKeystream(seed []byte, capacityHint int) *Keystream {
	symbols := make([]byte, len(seed), len(seed)+capacityHint)
	copy(symbols, seed)
	return &Keystream{symbols: symbols}
}

// At returns the symbol at index i and whether i is in bounds
func (ks *Keystream) At(i int) (byte, bool) {
	if i < 0 || i >= len(ks.symbols) {
		return 0, false
	}
	return ks.symbols[i], true
}

func (ks *Keystream) Append(symbol byte) {
	ks.symbols = append(ks.symbols, symbol)
}

func (ks *Keystream) Len() int {
	return len(ks.symbols)
}

// String joins the current content, used for trace snapshots in text mode
func (ks *Keystream) String() string {
	return string(ks.symbols)
}
