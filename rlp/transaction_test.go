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

// This file lives in package rlp_test (not rlp) so it can import
// core/types, which itself imports rlp; an in-package test file can't do
// that without an import cycle.
package rlp_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/rlp"
)

// TestTransactionRoundTrip is spec.md §8's rlp_decode(rlp_encode(x)) == x
// property for *Transaction: Transaction has only unexported fields and
// relies on the rlp.Encoder/rlp.Decoder dispatch (EncodeRLP/DecodeRLP)
// rather than reflection over its fields, so this has to be checked
// explicitly rather than falling out of the generic struct round trip.
func TestTransactionRoundTrip(t *testing.T) {
	to := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	tx := types.NewTransaction(7, to, big.NewInt(1000), 21000, big.NewInt(1), []byte("payload"))
	signed, err := tx.WithSignature(types.FrontierSigner{}, append(make([]byte, 64), 0x1b))
	require.NoError(t, err)

	enc, err := rlp.EncodeToBytes(signed)
	require.NoError(t, err)

	var out types.Transaction
	require.NoError(t, rlp.DecodeBytes(enc, &out))

	assert.Equal(t, signed.Hash(), out.Hash())
	assert.Equal(t, signed.Nonce(), out.Nonce())
	assert.Equal(t, signed.To(), out.To())
	assert.Equal(t, signed.Value(), out.Value())
	assert.Equal(t, signed.Data(), out.Data())
	v1, r1, s1 := signed.RawSignatureValues()
	v2, r2, s2 := out.RawSignatureValues()
	assert.Equal(t, v1, v2)
	assert.Equal(t, 0, r1.Cmp(r2))
	assert.Equal(t, 0, s1.Cmp(s2))
}

// TestTransactionSliceRoundTrip mirrors how Block actually decodes
// transactions: as a list of *Transaction, the shape cmd/validator-core's
// "validate" command feeds into rlp.DecodeBytes.
func TestTransactionSliceRoundTrip(t *testing.T) {
	to := common.HexToAddress("0x222222222222222222222222222222222222bbbb")
	tx1 := types.NewTransaction(0, to, big.NewInt(1), 21000, big.NewInt(1), nil)
	tx2 := types.NewContractCreation(1, big.NewInt(0), 53000, big.NewInt(1), []byte{0x60, 0x00})
	in := types.Transactions{tx1, tx2}

	enc, err := rlp.EncodeToBytes(in)
	require.NoError(t, err)

	var out types.Transactions
	require.NoError(t, rlp.DecodeBytes(enc, &out))

	require.Len(t, out, 2)
	assert.Equal(t, tx1.Hash(), out[0].Hash())
	assert.Equal(t, tx2.Hash(), out[1].Hash())
	assert.Nil(t, out[1].To(), "contract-creation transaction must decode To back to nil")
}
