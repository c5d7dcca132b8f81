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
	"github.com/hardentoo/etclient/rlp"
	"github.com/hardentoo/etclient/trie"
)

// StateDB is the world-state view a single block's transactions are
// executed against. Like go-ethereum's StateDB it keeps a dirty object
// cache in front of the trie and supports nested Snapshot/RevertToSnapshot
// so a failing call can be unwound without reopening the trie.
type StateDB struct {
	db   *Database
	trie *trie.Trie

	objects      map[common.Address]*stateObject
	objectsDirty map[common.Address]struct{}

	journal        []journalEntry
	validRevisions []revision
	nextRevisionID int
}

type journalEntry func(s *StateDB)

type revision struct {
	id          int
	journalSize int
}

// New opens the state view rooted at root.
func New(root common.Hash, db *Database) (*StateDB, error) {
	tr, err := db.OpenTrie(root)
	if err != nil {
		return nil, err
	}
	return &StateDB{
		db:           db,
		trie:         tr,
		objects:      make(map[common.Address]*stateObject),
		objectsDirty: make(map[common.Address]struct{}),
	}, nil
}

func (s *StateDB) getObject(addr common.Address) *stateObject {
	if obj, ok := s.objects[addr]; ok {
		return obj
	}
	enc, ok := s.trie.Get(addr.Bytes())
	if !ok {
		return nil
	}
	var acc Account
	if err := rlp.DecodeBytes(enc, &acc); err != nil {
		return nil
	}
	obj := &stateObject{address: addr, account: acc}
	s.objects[addr] = obj
	return obj
}

func (s *StateDB) getOrNewObject(addr common.Address) *stateObject {
	obj := s.getObject(addr)
	if obj == nil {
		obj = newObject(addr)
		s.objects[addr] = obj
		s.journal = append(s.journal, func(s *StateDB) { delete(s.objects, addr) })
	}
	return obj
}

// Exist reports whether addr has ever been touched (has a non-empty
// account record), mirroring EIP-161 "exists" semantics.
func (s *StateDB) Exist(addr common.Address) bool {
	return s.getObject(addr) != nil
}

// Empty reports whether addr's account is the EIP-161 empty account
// (zero nonce, zero balance, no code) -- relevant to EIP-161 state
// clearing under EIP-160 and later rule sets.
func (s *StateDB) Empty(addr common.Address) bool {
	obj := s.getObject(addr)
	return obj == nil || obj.empty()
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if obj := s.getObject(addr); obj != nil {
		return obj.account.Balance
	}
	return new(big.Int)
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj := s.getObject(addr); obj != nil {
		return obj.account.Nonce
	}
	return 0
}

func (s *StateDB) GetCode(addr common.Address) []byte {
	obj := s.getObject(addr)
	if obj == nil {
		return nil
	}
	if obj.code != nil {
		return obj.code
	}
	code, _ := s.db.getCode(obj.account.CodeHash)
	obj.code = code
	return code
}

func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	if obj := s.getObject(addr); obj != nil {
		return common.BytesToHash(obj.account.CodeHash)
	}
	return common.Hash{}
}

// AddBalance credits amount to addr, materializing the account if it
// doesn't exist yet (this is how both ordinary value transfers and the
// block/uncle reward pseudo-transactions land funds on a beneficiary).
func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewObject(addr)
	prev := new(big.Int).Set(obj.account.Balance)
	s.journal = append(s.journal, func(s *StateDB) {
		if o := s.objects[addr]; o != nil {
			o.setBalance(prev)
		}
	})
	obj.addBalance(amount)
}

func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewObject(addr)
	prev := new(big.Int).Set(obj.account.Balance)
	s.journal = append(s.journal, func(s *StateDB) {
		if o := s.objects[addr]; o != nil {
			o.setBalance(prev)
		}
	})
	obj.subBalance(amount)
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	obj := s.getOrNewObject(addr)
	prev := obj.account.Nonce
	s.journal = append(s.journal, func(s *StateDB) {
		if o := s.objects[addr]; o != nil {
			o.setNonce(prev)
		}
	})
	obj.setNonce(nonce)
}

// SetCode materializes addr's account (if needed) and attaches code to
// it: the contract-creation path of a transaction whose recipient is nil.
func (s *StateDB) SetCode(addr common.Address, code []byte) {
	obj := s.getOrNewObject(addr)
	prevCode, prevHash := obj.code, obj.account.CodeHash
	s.journal = append(s.journal, func(s *StateDB) {
		if o := s.objects[addr]; o != nil {
			o.code, o.account.CodeHash = prevCode, prevHash
		}
	})
	obj.setCode(code)
}

// CreateAccount materializes addr with a zero balance/nonce if it
// doesn't already exist; it is a no-op for an address already touched
// this block (matching go-ethereum's account-creation semantics for
// CREATE when the target address happens to collide with an existing,
// funded-but-not-yet-deployed account).
func (s *StateDB) CreateAccount(addr common.Address) {
	s.getOrNewObject(addr)
}

// Snapshot returns an identifier that RevertToSnapshot can later roll
// back to, undoing every state mutation recorded since.
func (s *StateDB) Snapshot() int {
	id := s.nextRevisionID
	s.nextRevisionID++
	s.validRevisions = append(s.validRevisions, revision{id: id, journalSize: len(s.journal)})
	return id
}

func (s *StateDB) RevertToSnapshot(revid int) {
	idx := -1
	for i, r := range s.validRevisions {
		if r.id == revid {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic("state: no such snapshot")
	}
	snapshot := s.validRevisions[idx].journalSize
	for i := len(s.journal) - 1; i >= snapshot; i-- {
		s.journal[i](s)
	}
	s.journal = s.journal[:snapshot]
	s.validRevisions = s.validRevisions[:idx]
}

// IntermediateRoot flushes every dirty object into the trie and returns
// the resulting root; hashing the trie also writes its new nodes to the
// database.
// The validator calls this once per transaction to populate that
// transaction's receipt state root.
func (s *StateDB) IntermediateRoot() common.Hash {
	for addr, obj := range s.objects {
		if !obj.dirty {
			continue
		}
		if obj.code != nil {
			hash, err := s.db.putCode(obj.code)
			if err == nil {
				obj.account.CodeHash = hash
			}
		}
		enc, err := rlp.EncodeToBytes(&obj.account)
		if err != nil {
			panic("state: account is not RLP-encodable: " + err.Error())
		}
		if err := s.trie.Update(addr.Bytes(), enc); err != nil {
			panic(err)
		}
		obj.dirty = false
	}
	return s.trie.Hash()
}

// Commit flushes dirty objects and persists every newly created trie
// node to the backing database, returning the new state root.
func (s *StateDB) Commit() (common.Hash, error) {
	root := s.IntermediateRoot()
	return root, nil
}
