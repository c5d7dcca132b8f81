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

// Package ethdb defines the key/value store interface the trie and state
// packages are built on, plus an in-memory implementation.
package ethdb

import (
	"errors"
	"sync"

	"github.com/golang/snappy"
)

var ErrNotFound = errors.New("ethdb: not found")

// Database is the authenticated key/value store backing the world-state
// trie. The core only ever needs Get/Put/Has; there is no Delete because
// the trie and chain index are both append-only (spec.md §3, §5).
type Database interface {
	Has(key []byte) (bool, error)
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
}

// MemDatabase is an in-memory Database. Values are snappy-compressed on the
// way in and decompressed on the way out, mirroring go-ethereum's on-disk
// backends (which always snappy-compress trie node blobs) even though an
// in-memory map has no real I/O cost to amortize.
type MemDatabase struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemDatabase() *MemDatabase {
	return &MemDatabase{data: make(map[string][]byte)}
}

func (db *MemDatabase) Has(key []byte) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.data[string(key)]
	return ok, nil
}

func (db *MemDatabase) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	v, ok := db.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out, err := snappy.Decode(nil, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (db *MemDatabase) Put(key, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data[string(key)] = snappy.Encode(nil, value)
	return nil
}

func (db *MemDatabase) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data)
}
