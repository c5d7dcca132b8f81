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

package state

import (
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
)

// Account is the RLP-encoded value stored in the state trie under
// keccak256(address). Root and CodeHash point into the same trie
// database: Root at a per-account storage trie (always empty here, since
// this core has no bytecode interpreter to populate storage slots), and
// CodeHash at a raw code blob keyed by its own hash.
type Account struct {
	Nonce    uint64
	Balance  *big.Int
	Root     common.Hash
	CodeHash []byte
}

var emptyCodeHash = crypto.Keccak256(nil)

func newAccount() Account {
	return Account{Balance: new(big.Int), CodeHash: emptyCodeHash}
}

// stateObject is the in-memory, possibly-dirty view of one account plus
// its contract code. Dirty objects are flushed to the trie by
// StateDB.IntermediateRoot/Commit.
type stateObject struct {
	address common.Address
	account Account
	code    []byte

	dirty bool
}

func newObject(address common.Address) *stateObject {
	return &stateObject{address: address, account: newAccount(), dirty: true}
}

func (s *stateObject) empty() bool {
	hasCode := len(s.account.CodeHash) > 0 && string(s.account.CodeHash) != string(emptyCodeHash)
	return s.account.Nonce == 0 && s.account.Balance.Sign() == 0 && !hasCode
}

func (s *stateObject) setBalance(amount *big.Int) {
	s.account.Balance = amount
	s.dirty = true
}

func (s *stateObject) addBalance(amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.setBalance(new(big.Int).Add(s.account.Balance, amount))
}

func (s *stateObject) subBalance(amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.setBalance(new(big.Int).Sub(s.account.Balance, amount))
}

func (s *stateObject) setNonce(nonce uint64) {
	s.account.Nonce = nonce
	s.dirty = true
}

func (s *stateObject) setCode(code []byte) {
	s.code = code
	if len(code) == 0 {
		s.account.CodeHash = emptyCodeHash
	} else {
		s.account.CodeHash = crypto.Keccak256(code)
	}
	s.dirty = true
}

func (s *stateObject) deepCopy() *stateObject {
	cp := &stateObject{
		address: s.address,
		account: Account{
			Nonce:    s.account.Nonce,
			Balance:  new(big.Int).Set(s.account.Balance),
			Root:     s.account.Root,
			CodeHash: common.CopyBytes(s.account.CodeHash),
		},
		code:  common.CopyBytes(s.code),
		dirty: s.dirty,
	}
	return cp
}
