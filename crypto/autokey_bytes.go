package crypto

// ExtendedAutokey is the byte-oriented Autokey cipher: (P + K) mod 256 where the
// keystream is the UTF-8 key followed by the plaintext bytes themselves.
type ExtendedAutokey struct {
	key []byte
}

func NewExtendedAutokey(key string) (*ExtendedAutokey, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return &ExtendedAutokey{
		key: []byte(key),
	}, nil
}

func (ea *ExtendedAutokey) Encrypt(plaintext []byte) []byte {
	keystream := NewKeystream(ea.key, len(plaintext))
	ciphertext := make([]byte, len(plaintext))

	for i, b := range plaintext {
		// keystream always holds at least i+1 symbols here, byte addition wraps mod 256
		k, _ := keystream.At(i)
		ciphertext[i] = b + k
		keystream.Append(b)
	}

	return ciphertext
}

func (ea *ExtendedAutokey) Decrypt(ciphertext []byte) []byte {
	keystream := NewKeystream(ea.key, len(ciphertext))
	plaintext := make([]byte, len(ciphertext))

	for i, b := range ciphertext {
		k, _ := keystream.At(i)
		plaintext[i] = b - k
		keystream.Append(plaintext[i])
	}

	return plaintext
}

// EncryptBytes encrypts data with key, failing with ErrEmptyKey on an empty key
func EncryptBytes(data []byte, key string) ([]byte, error) {
	cipher, err := NewExtendedAutokey(key)
	if err != nil {
		return nil, err
	}
	return cipher.Encrypt(data), nil
}

// DecryptBytes decrypts data with key, failing with ErrEmptyKey on an empty key
func DecryptBytes(data []byte, key string) ([]byte, error) {
	cipher, err := NewExtendedAutokey(key)
	if err != nil {
		return nil, err
	}
	return cipher.Decrypt(data), nil
}
