// Copyright 2019 The Nuclear Core Authors
// This file is part of the Nuclear Core library.
//
// The Nuclear Core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The Nuclear Core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the Nuclear Core library. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEmptyStringIsCanonical pins the encoding of nil and the zero big.Int,
// since the trie's empty-root hash is keccak256 of exactly this byte.
func TestEmptyStringIsCanonical(t *testing.T) {
	enc, err := EncodeToBytes([]byte(nil))
	require.NoError(t, err)
	assert.Equal(t, EmptyString, enc)

	enc, err = EncodeToBytes(new(big.Int))
	require.NoError(t, err)
	assert.Equal(t, EmptyString, enc)
}

// TestSingleByteBelow0x80EncodesAsItself is the RLP short-string special
// case: a one-byte string whose value is below 0x80 has no length prefix.
func TestSingleByteBelow0x80EncodesAsItself(t *testing.T) {
	enc, err := EncodeToBytes([]byte{0x7f})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7f}, enc)
}

func TestLongStringUsesLengthOfLengthHeader(t *testing.T) {
	b := make([]byte, 56)
	for i := range b {
		b[i] = byte(i)
	}
	enc, err := EncodeToBytes(b)
	require.NoError(t, err)
	assert.Equal(t, byte(0xb8), enc[0])
	assert.Equal(t, byte(56), enc[1])

	var out []byte
	require.NoError(t, DecodeBytes(enc, &out))
	assert.Equal(t, b, out)
}

type nested struct {
	A uint64
	B []byte
	C *big.Int
}

type withSlice struct {
	Items []nested
	Name  string
}

// TestStructRoundTrip exercises the reflection-based struct codec used by
// every consensus type (Header, txdata, Receipt): nested structs, a byte
// slice, a *big.Int, and a slice of structs all round-trip exactly.
func TestStructRoundTrip(t *testing.T) {
	in := withSlice{
		Items: []nested{
			{A: 1, B: []byte("hello"), C: big.NewInt(1000000)},
			{A: 0, B: []byte{}, C: new(big.Int)},
			{A: 1 << 40, B: []byte{0xff}, C: big.NewInt(255)},
		},
		Name: "block",
	}
	enc, err := EncodeToBytes(in)
	require.NoError(t, err)

	var out withSlice
	require.NoError(t, DecodeBytes(enc, &out))
	assert.Equal(t, in, out)
}

type addr20 [20]byte

// TestNilPointerRoundTripsToNil covers the contract-creation transaction
// case: a nil *common.Address-shaped pointer field (a pointer to a
// fixed-size byte array, not a struct) must decode back to nil rather than
// a zero-valued array.
func TestNilPointerRoundTripsToNil(t *testing.T) {
	type withPtr struct {
		To *addr20
	}
	in := withPtr{To: nil}
	enc, err := EncodeToBytes(in)
	require.NoError(t, err)

	var out withPtr
	require.NoError(t, DecodeBytes(enc, &out))
	assert.Nil(t, out.To)

	var a addr20
	a[19] = 0x07
	in2 := withPtr{To: &a}
	enc2, err := EncodeToBytes(in2)
	require.NoError(t, err)
	var out2 withPtr
	require.NoError(t, DecodeBytes(enc2, &out2))
	require.NotNil(t, out2.To)
	assert.Equal(t, *in2.To, *out2.To)
}

// TestNilBigIntPointerRoundTripsToZero covers the other nil-pointer case:
// *big.Int decodes a nil/empty encoding back to zero rather than nil,
// matching Encode's treatment of a nil *big.Int as value zero.
func TestNilBigIntPointerRoundTripsToZero(t *testing.T) {
	type withBig struct {
		V *big.Int
	}
	enc, err := EncodeToBytes(withBig{V: nil})
	require.NoError(t, err)

	var out withBig
	require.NoError(t, DecodeBytes(enc, &out))
	require.NotNil(t, out.V)
	assert.Equal(t, 0, out.V.Sign())
}

// TestEncodeNegativeBigIntFails matches go-ethereum's rule that negative
// big.Int values have no canonical RLP form.
func TestEncodeNegativeBigIntFails(t *testing.T) {
	_, err := EncodeToBytes(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrNegativeBigInt)
}

func TestUint64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 255, 256, 1 << 32, ^uint64(0)} {
		enc, err := EncodeToBytes(v)
		require.NoError(t, err)
		var out uint64
		require.NoError(t, DecodeBytes(enc, &out))
		assert.Equal(t, v, out, "value %d", v)
	}
}

// TestRawValuePreservesEncodedBytes lets a caller defer decoding a list
// element, as the trie does for opaque node references.
func TestRawValuePreservesEncodedBytes(t *testing.T) {
	type wrapper struct {
		Body RawValue
	}
	inner, err := EncodeToBytes([]byte("node-ref"))
	require.NoError(t, err)

	enc, err := EncodeToBytes(wrapper{Body: RawValue(inner)})
	require.NoError(t, err)

	var out wrapper
	require.NoError(t, DecodeBytes(enc, &out))
	assert.Equal(t, RawValue(inner), out.Body)
}

func TestDecodeBytesRejectsTrailingData(t *testing.T) {
	enc, err := EncodeToBytes(uint64(1))
	require.NoError(t, err)
	var out uint64
	err = DecodeBytes(append(enc, 0x00), &out)
	assert.Error(t, err)
}
