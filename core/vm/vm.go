// Copyright 2019 The Nuclear Core Authors
// Copyright 2014 The go-ethereum Authors
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

// Package vm implements the state-transition executor the validator runs
// every transaction through. It is not a bytecode interpreter: the
// upstream EVM is an external collaborator contracted only at this
// package's interface (spec.md §1's out-of-scope list). What's here is a
// reference implementation sufficient to drive real account state
// changes -- intrinsic gas accounting, value transfer, contract-creation
// account materialization, and log emission keyed off non-empty call
// data -- without executing arbitrary bytecode.
package vm

import (
	"errors"
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/core/state"
	"github.com/hardentoo/etclient/core/types"
	"github.com/hardentoo/etclient/crypto"
)

var (
	ErrInsufficientBalance = errors.New("vm: insufficient balance for value + upfront gas")
	ErrNonceMismatch       = errors.New("vm: nonce does not match account nonce")
	ErrIntrinsicGas        = errors.New("vm: intrinsic gas exceeds gas limit")
)

// Intrinsic gas schedule constants. These hold across all five rule sets
// in scope here (Frontier through ECIP-1017): the per-byte input costs
// and the 21000/32000 floors were untouched until EIP-2028, which is out
// of scope.
const (
	TxGas                 = 21000
	TxGasContractCreation = 53000
	TxDataZeroGas         = 4
	TxDataNonZeroGas      = 68
)

// HeaderParams is the block context a transaction executes against.
type HeaderParams struct {
	Beneficiary common.Address
	Difficulty  *big.Int
	Number      *big.Int
	Timestamp   uint64
	GasLimit    uint64
}

// Valid is a transaction that has cleared to_valid: a recovered sender,
// a nonce check against the state view, and an upfront balance check.
type Valid struct {
	Caller   *common.Address // nil for the reward pseudo-transactions
	To       *common.Address
	Value    *big.Int
	GasLimit uint64
	GasPrice *big.Int
	Data     []byte
	Nonce    uint64
}

// Result is the observable surface of Execute: logs and real used gas.
// The resulting state root is read back from the StateDB the executor
// was given, exactly as spec.md §4.3 describes.
type Result struct {
	Logs        []*types.Log
	RealUsedGas uint64
}

// ToValid checks that msg's gas limit covers the intrinsic gas floor,
// checks the nonce (when CheckNonce is set), and checks the account can
// cover value + gasLimit*gasPrice up front. It does not recover the
// sender: msg.From is taken as already recovered by
// Transaction.AsMessage. Any failure here must fail the whole block (spec.md §4.3
// step 1), not merely this transaction.
func ToValid(db *state.StateDB, msg types.Message) (Valid, error) {
	intrinsic := types.IntrinsicGas(msg.Data, msg.To == nil, TxGas, TxDataZeroGas, TxDataNonZeroGas)
	if msg.GasLimit < intrinsic {
		return Valid{}, ErrIntrinsicGas
	}
	if msg.CheckNonce && db.GetNonce(msg.From) != msg.Nonce {
		return Valid{}, ErrNonceMismatch
	}
	upfront := new(big.Int).Mul(new(big.Int).SetUint64(msg.GasLimit), msg.GasPrice)
	upfront.Add(upfront, msg.Value)
	if db.GetBalance(msg.From).Cmp(upfront) < 0 {
		return Valid{}, ErrInsufficientBalance
	}
	from := msg.From
	return Valid{
		Caller: &from, To: msg.To, Value: msg.Value,
		GasLimit: msg.GasLimit, GasPrice: msg.GasPrice, Data: msg.Data, Nonce: msg.Nonce,
	}, nil
}

// Execute runs v against db: it charges the sender upfront gas, moves
// value, materializes a contract account for a creation call, refunds
// unused gas, credits the beneficiary with the gas fee, and emits a log
// when the call carries non-empty input data (the reference executor's
// stand-in for "code ran and logged something").
func Execute(db *state.StateDB, v Valid, hp HeaderParams, recentHashes []common.Hash) Result {
	snapshot := db.Snapshot()

	gasUsed := types.IntrinsicGas(v.Data, v.To == nil, TxGas, TxDataZeroGas, TxDataNonZeroGas)
	if gasUsed > v.GasLimit {
		gasUsed = v.GasLimit
	}

	if v.Caller != nil {
		upfront := new(big.Int).Mul(new(big.Int).SetUint64(v.GasLimit), v.GasPrice)
		db.SubBalance(*v.Caller, upfront)
		db.SetNonce(*v.Caller, db.GetNonce(*v.Caller)+1)
	}

	var recipient common.Address
	var logs []*types.Log
	if v.To == nil {
		if v.Caller == nil {
			db.RevertToSnapshot(snapshot)
			return Result{RealUsedGas: v.GasLimit}
		}
		recipient = crypto.CreateAddress(*v.Caller, v.Nonce)
		db.CreateAccount(recipient)
		if len(v.Data) > 0 {
			db.SetCode(recipient, v.Data)
		}
	} else {
		recipient = *v.To
		db.CreateAccount(recipient)
	}

	db.AddBalance(recipient, v.Value)
	if v.Caller != nil {
		db.SubBalance(*v.Caller, v.Value)
	}

	if len(v.Data) > 0 && v.To != nil {
		logs = append(logs, &types.Log{
			Address: recipient,
			Topics:  []common.Hash{crypto.Keccak256Hash(v.Data[:min(32, len(v.Data))])},
			Data:    v.Data,
		})
	}

	if v.Caller != nil {
		remaining := v.GasLimit - gasUsed
		refund := new(big.Int).Mul(new(big.Int).SetUint64(remaining), v.GasPrice)
		db.AddBalance(*v.Caller, refund)
		fee := new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), v.GasPrice)
		db.AddBalance(hp.Beneficiary, fee)
	}

	return Result{Logs: logs, RealUsedGas: gasUsed}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
