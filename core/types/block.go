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

import "github.com/hardentoo/etclient/common"

// Block is a header together with its ordered transactions and uncles.
type Block struct {
	Header       *Header
	Transactions Transactions
	Uncles       []*Header
}

func NewBlock(header *Header, txs Transactions, uncles []*Header) *Block {
	return &Block{Header: header, Transactions: txs, Uncles: uncles}
}

func (b *Block) Hash() common.Hash       { return b.Header.Hash() }
func (b *Block) NumberU64() uint64       { return b.Header.Number.Uint64() }
func (b *Block) ParentHash() common.Hash { return b.Header.ParentHash }
