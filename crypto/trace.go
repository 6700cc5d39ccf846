package crypto

// TraceRow records one processed input symbol. Numeric fields are nil for
// pass-through symbols such as spaces.
//
// For encryption Input is the plaintext and Output the ciphertext, for
// decryption it is the other way round. In key recovery Input is the
// plaintext, Output the ciphertext and Key the derived key letter.
type TraceRow struct {
	Input      string `json:"input"`
	InputCode  *int   `json:"input_code"`
	Key        string `json:"key"`
	KeyCode    *int   `json:"key_code"`
	Result     *int   `json:"result"`
	Output     string `json:"output"`
	OutputCode *int   `json:"output_code"`
	Keystream  string `json:"keystream"`
}

// TraceTable lists rows in processing order
type TraceTable []TraceRow

// IsPassThrough reports whether the row did not take part in the cipher arithmetic
func (r TraceRow) IsPassThrough() bool {
	return r.Result == nil
}

// Head returns at most n leading rows, n <= 0 means all of them
func (t TraceTable) Head(n int) TraceTable {
	if n <= 0 || n >= len(t) {
		return t
	}
	return t[:n]
}

func intPtr(v int) *int {
	return &v
}

// shareKeystream sets every row's snapshot to a prefix of final. The keystream
// only grows by appending, so all rows can point into the same string.
func (t TraceTable) shareKeystream(final string, lengths []int) {
	for i := range t {
		t[i].Keystream = final[:lengths[i]]
	}
}

func passThroughRow(input, key, output string) TraceRow {
	return TraceRow{
		Input:  input,
		Key:    key,
		Output: output,
	}
}

func letterRow(in byte, key byte, result int, out byte) TraceRow {
	return TraceRow{
		Input:      string(in),
		InputCode:  intPtr(CharToNum(in)),
		Key:        string(key),
		KeyCode:    intPtr(CharToNum(key)),
		Result:     intPtr(result),
		Output:     string(out),
		OutputCode: intPtr(CharToNum(out)),
	}
}
