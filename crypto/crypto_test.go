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

package crypto

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPrivateKey() []byte {
	b := make([]byte, 32)
	b[31] = 0x01
	for i := 0; i < 31; i++ {
		b[i] = byte(i + 1)
	}
	return b
}

// TestSignEcrecoverRoundTrip signs a digest and checks that Ecrecover and
// SigToAddress both reconstruct the original signer from the signature
// alone, the property the header/transaction signer package relies on.
func TestSignEcrecoverRoundTrip(t *testing.T) {
	priv := NewPrivateKeyFromBytes(testPrivateKey())
	pub := priv.PubKey().SerializeUncompressed()
	wantAddr := PubkeyToAddress(pub)

	hash := Keccak256([]byte("block header preimage"))
	sig, err := Sign(hash, priv)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.LessOrEqual(t, sig[64], byte(3))

	recoveredPub, err := Ecrecover(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, pub, recoveredPub)

	addr, err := SigToAddress(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, wantAddr, addr)
}

func TestSignRejectsShortHash(t *testing.T) {
	priv := NewPrivateKeyFromBytes(testPrivateKey())
	_, err := Sign([]byte{1, 2, 3}, priv)
	assert.Error(t, err)
}

func TestEcrecoverRejectsInvalidRecoveryID(t *testing.T) {
	priv := NewPrivateKeyFromBytes(testPrivateKey())
	hash := Keccak256([]byte("x"))
	sig, err := Sign(hash, priv)
	require.NoError(t, err)
	sig[64] = 4 // only 0..3 are valid recovery ids
	_, err = Ecrecover(hash, sig)
	assert.ErrorIs(t, err, ErrInvalidRecoveryID)
}

func TestValidateSignatureValues(t *testing.T) {
	oneLSB := big.NewInt(1)
	assert.True(t, ValidateSignatureValues(0, oneLSB, oneLSB, false))
	assert.False(t, ValidateSignatureValues(2, oneLSB, oneLSB, false), "v must be 0 or 1")
	assert.False(t, ValidateSignatureValues(0, new(big.Int), oneLSB, false), "r must be positive")
	assert.False(t, ValidateSignatureValues(0, secp256k1N, oneLSB, false), "r must be below the curve order")

	highS := new(big.Int).Rsh(secp256k1N, 1)
	highS.Add(highS, big.NewInt(1))
	assert.True(t, ValidateSignatureValues(0, oneLSB, highS, false), "high s allowed pre-Homestead")
	assert.False(t, ValidateSignatureValues(0, oneLSB, highS, true), "high s rejected by EIP-2 (homestead=true)")
}

func TestCreateAddressIsDeterministic(t *testing.T) {
	var sender [20]byte
	sender[19] = 0xaa
	a1 := CreateAddress(sender, 0)
	a2 := CreateAddress(sender, 0)
	a3 := CreateAddress(sender, 1)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, a3, "address must depend on nonce")
}
