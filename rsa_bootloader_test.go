// rsa_bootloader_test.go - RSA bootloader round-trip and invariant tests

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRsaValidateRejectsShortPayload(t *testing.T) {
	require.False(t, Validate(nil))
	require.False(t, Validate([]byte{0xFF}))
}

func TestRsaValidateRejectsOutOfRangeBlockCount(t *testing.T) {
	// header 0x00 => N = 256, far outside [1,15].
	payload := make([]byte, 1+rsaBlockSize)
	payload[0] = 0x00
	require.False(t, Validate(payload))
}

func TestRsaValidateAcceptsWellFormedPayload(t *testing.T) {
	payload := make([]byte, 1+rsaBlockSize)
	payload[0] = byte(256 - 1) // N=1
	require.True(t, Validate(payload))
	require.Equal(t, 1, GetBlockCount(payload))
	require.Equal(t, rsaOutputBytes, GetDecryptedSize(payload))
}

func TestRsaEncryptDecryptRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0x01},
		{0x00, 0x01, 0x02, 0x03, 0x04},
		make([]byte, rsaOutputBytes),  // exactly one block
		make([]byte, rsaOutputBytes+1), // spills into a second block
	}
	for _, plain := range cases {
		for i := range plain {
			plain[i] = byte(i*7 + 3)
		}
		enc, err := Encrypt(plain)
		require.NoError(t, err)

		dec := Decrypt(enc.Data)
		require.True(t, dec.Valid, "round-tripped payload must checksum clean")
		require.Equal(t, enc.BlockCount, dec.BlockCount)
		require.Equal(t, plain, dec.Data[:len(plain)])
	}
}

func TestRsaEncryptRejectsEmptyAndOversizedInput(t *testing.T) {
	_, err := Encrypt(nil)
	require.Error(t, err)

	_, err = Encrypt(make([]byte, rsaMaxBlocks*rsaOutputBytes+1))
	require.Error(t, err)
}

func TestMontgomeryMultiplyIsCommutative(t *testing.T) {
	a := PublicModulus
	a[0] = 0x05
	b := PrivateExponent

	var ab, ba [rsaBlockSize]byte
	montgomeryMultiply(&ab, &a, &b, &PublicModulus)
	montgomeryMultiply(&ba, &b, &a, &PublicModulus)
	require.Equal(t, ab, ba)
}

func TestMontgomeryMultiplyAbsorbsZero(t *testing.T) {
	var zero, a, result [rsaBlockSize]byte
	a = PrivateExponent
	montgomeryMultiply(&result, &a, &zero, &PublicModulus)
	require.Equal(t, zero, result)
}

func TestMontgomeryMultiplyIsDeterministic(t *testing.T) {
	a := PublicModulus
	b := PrivateExponent
	var r1, r2 [rsaBlockSize]byte
	montgomeryMultiply(&r1, &a, &b, &PublicModulus)
	montgomeryMultiply(&r2, &a, &b, &PublicModulus)
	require.Equal(t, r1, r2)
}

func TestSubtractIfNoBorrowLeavesValueUnchangedWhenSmaller(t *testing.T) {
	var a [rsaBlockSize]byte
	a[rsaBlockSize-1] = 1
	b := PublicModulus // much larger than a

	before := a
	ok := subtractIfNoBorrow(&a, &b)
	require.False(t, ok)
	require.Equal(t, before, a)
}
