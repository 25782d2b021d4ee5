package ibe

import "errors"

// ErrInvalidCiphertext is returned for a malformed ciphertext: wrong
// lengths, a point not on the curve, a point outside the prime-order
// subgroup, or a zero scalar r derived during encryption.
var ErrInvalidCiphertext = errors.New("ibe: invalid ciphertext")

// ErrDecryption is returned when the correctness check (U == r'*G) fails
// after recovering sigma and the message.
var ErrDecryption = errors.New("ibe: decryption failed")
