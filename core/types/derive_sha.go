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

package types

import (
	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/ethdb"
	"github.com/hardentoo/etclient/rlp"
	"github.com/hardentoo/etclient/trie"
)

// DeriveSha builds a throwaway trie keyed by RLP-encoded index and valued
// by the RLP encoding of each item, and returns its root. It is how both
// the transactions root and the receipts root are computed (spec.md
// §4.1, §4.3): neither is the hash of a flat concatenation, each is a
// small Merkle-Patricia trie over its own ordered list.
func DeriveSha(items interface{ Len() int; GetRlp(i int) []byte }) common.Hash {
	t, err := trie.New(common.Hash{}, trie.NewDatabase(ethdb.NewMemDatabase()))
	if err != nil {
		panic(err)
	}
	for i := 0; i < items.Len(); i++ {
		key, err := rlp.EncodeToBytes(uint(i))
		if err != nil {
			panic(err)
		}
		if err := t.Update(key, items.GetRlp(i)); err != nil {
			panic(err)
		}
	}
	return t.Hash()
}

func (txs Transactions) Len() int { return len(txs) }

func (txs Transactions) GetRlp(i int) []byte {
	enc, err := rlp.EncodeToBytes(txs[i])
	if err != nil {
		panic(err)
	}
	return enc
}

func (rs Receipts) Len() int { return len(rs) }

func (rs Receipts) GetRlp(i int) []byte {
	enc, err := rlp.EncodeToBytes(rs[i])
	if err != nil {
		panic(err)
	}
	return enc
}
