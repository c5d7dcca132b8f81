// Copyright 2019 The Nuclear Core Authors
// Copyright 2015 The go-ethereum Authors
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

// Package state implements the world-state view the validator re-executes
// transactions against: account balances, nonces, and contract code,
// backed by the trie package.
package state

import (
	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
	"github.com/hardentoo/etclient/ethdb"
	"github.com/hardentoo/etclient/trie"
)

// Database is the trie-backed store a StateDB is opened against.
type Database struct {
	triedb *trie.Database
}

func NewDatabase(db ethdb.Database) *Database {
	return &Database{triedb: trie.NewDatabase(db)}
}

func (db *Database) OpenTrie(root common.Hash) (*trie.Trie, error) {
	return trie.New(root, db.triedb)
}

func (db *Database) putCode(code []byte) ([]byte, error) {
	if len(code) == 0 {
		return emptyCodeHash, nil
	}
	hash := crypto.Keccak256(code)
	if err := db.triedb.Raw().Put(hash, code); err != nil {
		return nil, err
	}
	return hash, nil
}

func (db *Database) getCode(hash []byte) ([]byte, error) {
	if len(hash) == 0 || string(hash) == string(emptyCodeHash) {
		return nil, nil
	}
	return db.triedb.Raw().Get(hash)
}
