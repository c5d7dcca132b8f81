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

// Package chain holds the in-memory header index the processor appends
// to on every accepted block: a header-hash-keyed map of TotalHeader plus
// the ordered ring of most recent hashes the VM uses as its BLOCKHASH
// context.
package chain

import (
	"math/big"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/core/types"
)

// TotalHeader pairs a header with its cumulative ("total") difficulty:
// the sum of the header's own difficulty and its parent's TotalHeader.
// Genesis is its own total.
type TotalHeader struct {
	Header *types.Header
	Total  *big.Int
}

// FromParent builds the TotalHeader for header given its already-indexed
// parent.
func FromParent(header *types.Header, parent TotalHeader) TotalHeader {
	return TotalHeader{
		Header: header,
		Total:  new(big.Int).Add(header.Difficulty, parent.Total),
	}
}

// maxRecentHashes bounds the ring of most-recent hashes kept for the
// VM's BLOCKHASH context: spec.md §4.1 caps it at 256, mirroring the
// EVM's own BLOCKHASH window.
const maxRecentHashes = 256

// Index is the append-only header-hash-keyed chain index. It is not safe
// for concurrent use; the processor serializes all access through Put.
type Index struct {
	byHash map[common.Hash]TotalHeader
	recent []common.Hash // most recent first
}

// NewIndex builds a chain index seeded with genesis, whose cumulative
// difficulty equals its own difficulty.
func NewIndex(genesis *types.Header) *Index {
	idx := &Index{byHash: make(map[common.Hash]TotalHeader)}
	idx.Put(TotalHeader{Header: genesis, Total: new(big.Int).Set(genesis.Difficulty)})
	return idx
}

// Fetch returns the TotalHeader stored under hash, or false if absent.
func (idx *Index) Fetch(hash common.Hash) (TotalHeader, bool) {
	th, ok := idx.byHash[hash]
	return th, ok
}

// Put inserts th under its header hash and pushes the hash onto the
// recent-hash ring. The index is append-only: Put never removes or
// overwrites an existing entry's key space, it only adds to it.
func (idx *Index) Put(th TotalHeader) {
	hash := th.Header.Hash()
	idx.byHash[hash] = th
	idx.recent = append([]common.Hash{hash}, idx.recent...)
	if len(idx.recent) > maxRecentHashes {
		idx.recent = idx.recent[:maxRecentHashes]
	}
}

// LastHashes returns up to n of the most recently inserted header
// hashes, most recent first, exactly as fed to the EVM's recent-block-
// hashes context.
func (idx *Index) LastHashes(n int) []common.Hash {
	if n > len(idx.recent) {
		n = len(idx.recent)
	}
	out := make([]common.Hash, n)
	copy(out, idx.recent[:n])
	return out
}
