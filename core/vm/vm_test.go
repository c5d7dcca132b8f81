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

package vm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/core/state"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/crypto"
	"github.com/hardentoo/etclient/ethdb"
)

func newStateDB(t *testing.T) *state.StateDB {
	t.Helper()
	db := state.NewDatabase(ethdb.NewMemDatabase())
	sdb, err := state.New(common.Hash{}, db)
	require.NoError(t, err)
	return sdb
}

func TestToValidRejectsInsufficientBalance(t *testing.T) {
	sdb := newStateDB(t)
	from := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	to := common.HexToAddress("0x222222222222222222222222222222222222bbbb")
	sdb.AddBalance(from, big.NewInt(100))

	msg := types.NewMessage(from, &to, 0, big.NewInt(1000), TxGas, big.NewInt(1), nil, true)
	_, err := ToValid(sdb, msg)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestToValidRejectsNonceMismatch(t *testing.T) {
	sdb := newStateDB(t)
	from := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	to := common.HexToAddress("0x222222222222222222222222222222222222bbbb")
	sdb.AddBalance(from, big.NewInt(1e18))
	sdb.SetNonce(from, 5)

	msg := types.NewMessage(from, &to, 0, big.NewInt(1), TxGas, big.NewInt(1), nil, true)
	_, err := ToValid(sdb, msg)
	assert.ErrorIs(t, err, ErrNonceMismatch)
}

func TestToValidRejectsBelowIntrinsicGasFloor(t *testing.T) {
	sdb := newStateDB(t)
	from := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	to := common.HexToAddress("0x222222222222222222222222222222222222bbbb")
	sdb.AddBalance(from, big.NewInt(1e18))

	msg := types.NewMessage(from, &to, 0, big.NewInt(1), TxGas-1, big.NewInt(1), nil, true)
	_, err := ToValid(sdb, msg)
	assert.ErrorIs(t, err, ErrIntrinsicGas)
}

func TestToValidAcceptsWellFormedMessage(t *testing.T) {
	sdb := newStateDB(t)
	from := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	to := common.HexToAddress("0x222222222222222222222222222222222222bbbb")
	sdb.AddBalance(from, big.NewInt(1e18))

	msg := types.NewMessage(from, &to, 0, big.NewInt(1000), TxGas, big.NewInt(1), nil, true)
	valid, err := ToValid(sdb, msg)
	require.NoError(t, err)
	assert.Equal(t, from, *valid.Caller)
	assert.Equal(t, to, *valid.To)
}

func TestExecuteTransfersValueAndFeesBeneficiary(t *testing.T) {
	sdb := newStateDB(t)
	from := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	to := common.HexToAddress("0x222222222222222222222222222222222222bbbb")
	beneficiary := common.HexToAddress("0x333333333333333333333333333333333333cccc")
	sdb.AddBalance(from, big.NewInt(1e18))

	hp := HeaderParams{Beneficiary: beneficiary, Difficulty: big.NewInt(1), Number: big.NewInt(1), Timestamp: 1, GasLimit: 5000}
	v := Valid{Caller: &from, To: &to, Value: big.NewInt(1000), GasLimit: TxGas, GasPrice: big.NewInt(1)}
	res := Execute(sdb, v, hp, nil)

	assert.Equal(t, uint64(TxGas), res.RealUsedGas)
	assert.Equal(t, big.NewInt(1000), sdb.GetBalance(to))
	assert.Equal(t, uint64(1), sdb.GetNonce(from))
	assert.Equal(t, big.NewInt(TxGas), sdb.GetBalance(beneficiary))

	want := new(big.Int).Sub(big.NewInt(1e18), big.NewInt(1000))
	want.Sub(want, big.NewInt(TxGas))
	assert.Equal(t, want, sdb.GetBalance(from))
}

// TestExecuteContractCreationDerivesAddressAndAttachesCode covers the nil-To
// branch: the recipient is crypto.CreateAddress(caller, nonce), and non-empty
// call data becomes the account's code.
func TestExecuteContractCreationDerivesAddressAndAttachesCode(t *testing.T) {
	sdb := newStateDB(t)
	from := common.HexToAddress("0x111111111111111111111111111111111111aaaa")
	beneficiary := common.HexToAddress("0x333333333333333333333333333333333333cccc")
	sdb.AddBalance(from, big.NewInt(1e18))

	hp := HeaderParams{Beneficiary: beneficiary, Difficulty: big.NewInt(1), Number: big.NewInt(1), Timestamp: 1, GasLimit: 5000}
	data := []byte{0x60, 0x00}
	v := Valid{Caller: &from, To: nil, Value: big.NewInt(0), GasLimit: TxGasContractCreation + 100, GasPrice: big.NewInt(1), Data: data, Nonce: 0}
	Execute(sdb, v, hp, nil)

	addr := crypto.CreateAddress(from, 0)
	assert.Equal(t, data, sdb.GetCode(addr))
}

func TestExecuteRewardPseudoTransactionHasNoCaller(t *testing.T) {
	sdb := newStateDB(t)
	beneficiary := common.HexToAddress("0x333333333333333333333333333333333333cccc")
	hp := HeaderParams{Beneficiary: beneficiary, Difficulty: big.NewInt(1), Number: big.NewInt(1), Timestamp: 1, GasLimit: 5000}

	reward := big.NewInt(5e18)
	v := Valid{Caller: nil, To: &beneficiary, Value: reward, GasLimit: 1000000, GasPrice: new(big.Int)}
	res := Execute(sdb, v, hp, nil)

	assert.Equal(t, reward, sdb.GetBalance(beneficiary))
	assert.Empty(t, res.Logs)
}
