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

package trie

import (
	"fmt"

	"github.com/hashicorp/golang-lru"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/ethdb"
)

// nodeCacheSize bounds the number of decoded trie nodes Database keeps
// around between Trie instances opened at different roots.
const nodeCacheSize = 2048

// Database is the node-level storage layer beneath a Trie. It is a thin,
// content-addressed wrapper around an ethdb.Database: trie nodes are
// immutable once written, so a plain LRU read cache in front of the
// key/value store is all that's needed.
type Database struct {
	diskdb ethdb.Database
	cache  *lru.Cache
}

// NewDatabase wraps diskdb for use by one or more Tries.
func NewDatabase(diskdb ethdb.Database) *Database {
	cache, err := lru.New(nodeCacheSize)
	if err != nil {
		panic(err)
	}
	return &Database{diskdb: diskdb, cache: cache}
}

// Node returns the raw RLP encoding stored under hash. Nothing is ever
// stored under the metaroot (the zero hash), so fetching it always fails.
func (db *Database) Node(hash common.Hash) ([]byte, error) {
	if v, ok := db.cache.Get(hash); ok {
		return v.([]byte), nil
	}
	enc, err := db.diskdb.Get(hash.Bytes())
	if err != nil {
		return nil, fmt.Errorf("trie: node %x not found: %w", hash, err)
	}
	db.cache.Add(hash, enc)
	return enc, nil
}

func (db *Database) put(hash common.Hash, enc []byte) error {
	db.cache.Add(hash, enc)
	return db.diskdb.Put(hash.Bytes(), enc)
}

// Raw exposes the underlying key/value store for callers (contract code
// storage, chiefly) that need content-addressed blobs alongside the trie
// but aren't themselves trie nodes.
func (db *Database) Raw() ethdb.Database {
	return db.diskdb
}
