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

package trie

// node is one of: nil, valueNode, hashNode, *shortNode, *fullNode.
type node interface{}

// valueNode is a raw leaf value stored inline in its parent.
type valueNode []byte

// hashNode is a reference to a node stored in the database under its
// Keccak256 hash, used wherever a child hasn't been resolved yet.
type hashNode []byte

// shortNode represents either an extension (Val is another shortNode or
// fullNode) or a leaf (Val is a valueNode), distinguished by whether Key
// carries the 0x10 terminator nibble.
type shortNode struct {
	Key []byte
	Val node
}

// fullNode is a 16-way branch plus a value slot for keys that terminate
// exactly at this node.
type fullNode struct {
	Children [17]node
}

func (n *fullNode) copy() *fullNode {
	cp := *n
	return &cp
}
