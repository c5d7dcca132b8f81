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

// Package trie implements a Merkle-Patricia trie: the authenticated
// key/value structure used for both the world-state root and the per-block
// transaction and receipt roots (spec.md §3, §4.1, §4.3).
package trie

import (
	"errors"

	"github.com/hardentoo/etclient/common"
	"github.com/hardentoo/etclient/crypto"
	"github.com/hardentoo/etclient/rlp"
)

// emptyRoot is the hash of an empty trie, i.e. keccak256(rlp("")).
var emptyRoot = crypto.Keccak256Hash(rlp.EmptyString)

// Trie is a single Merkle-Patricia trie rooted at a possibly-unresolved
// node. It is not safe for concurrent use.
type Trie struct {
	db   *Database
	root node
}

// New opens the trie rooted at root. A zero root opens an empty trie.
func New(root common.Hash, db *Database) (*Trie, error) {
	if db == nil {
		return nil, errors.New("trie: nil db")
	}
	t := &Trie{db: db}
	if root != emptyRoot && root != (common.Hash{}) {
		t.root = hashNode(root.Bytes())
	}
	return t, nil
}

// Get returns the value stored for key, and whether it was found.
func (t *Trie) Get(key []byte) ([]byte, bool) {
	v, newroot, didResolve, err := t.get(t.root, keybytesToHex(key), 0)
	if err != nil {
		return nil, false
	}
	if didResolve {
		t.root = newroot
	}
	if v == nil {
		return nil, false
	}
	return []byte(v.(valueNode)), true
}

func (t *Trie) get(n node, key []byte, pos int) (value node, newnode node, didResolve bool, err error) {
	switch n := n.(type) {
	case nil:
		return nil, nil, false, nil
	case valueNode:
		return n, n, false, nil
	case *shortNode:
		if len(key)-pos < len(n.Key) || !bytesEqual(n.Key, key[pos:pos+len(n.Key)]) {
			return nil, n, false, nil
		}
		value, newnode, didResolve, err = t.get(n.Val, key, pos+len(n.Key))
		if err == nil && didResolve {
			n = n.copyWith(newnode)
		}
		return value, n, didResolve, err
	case *fullNode:
		value, newnode, didResolve, err = t.get(n.Children[key[pos]], key, pos+1)
		if err == nil && didResolve {
			n = n.copy()
			n.Children[key[pos]] = newnode
		}
		return value, n, didResolve, err
	case hashNode:
		child, err := t.resolveHash(n)
		if err != nil {
			return nil, n, true, err
		}
		value, newnode, _, err := t.get(child, key, pos)
		return value, newnode, true, err
	default:
		return nil, nil, false, errors.New("trie: invalid node type")
	}
}

func (n *shortNode) copyWith(val node) *shortNode {
	return &shortNode{Key: n.Key, Val: val}
}

func (t *Trie) resolveHash(h hashNode) (node, error) {
	enc, err := t.db.Node(common.BytesToHash(h))
	if err != nil {
		return nil, err
	}
	return decodeNode(enc)
}

// Update associates key with value, inserting or overwriting as needed.
// An empty value deletes the key.
func (t *Trie) Update(key, value []byte) error {
	k := keybytesToHex(key)
	if len(value) == 0 {
		newroot, _, err := t.delete(t.root, k)
		if err != nil {
			return err
		}
		t.root = newroot
		return nil
	}
	newroot, _, err := t.insert(t.root, k, valueNode(value))
	if err != nil {
		return err
	}
	t.root = newroot
	return nil
}

func (t *Trie) insert(n node, key []byte, value node) (node, bool, error) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok {
			return value, !bytesEqual(v, value.(valueNode)), nil
		}
		return value, true, nil
	}
	switch n := n.(type) {
	case *shortNode:
		match := prefixLen(key, n.Key)
		if match == len(n.Key) {
			newVal, dirty, err := t.insert(n.Val, key[match:], value)
			if err != nil {
				return nil, false, err
			}
			return &shortNode{Key: n.Key, Val: newVal}, dirty, nil
		}
		branch := &fullNode{}
		var err error
		branch.Children[n.Key[match]], _, err = t.insert(nil, n.Key[match+1:], n.Val)
		if err != nil {
			return nil, false, err
		}
		branch.Children[key[match]], _, err = t.insert(nil, key[match+1:], value)
		if err != nil {
			return nil, false, err
		}
		if match == 0 {
			return branch, true, nil
		}
		return &shortNode{Key: key[:match], Val: branch}, true, nil

	case *fullNode:
		newChild, dirty, err := t.insert(n.Children[key[0]], key[1:], value)
		if err != nil {
			return nil, false, err
		}
		cp := n.copy()
		cp.Children[key[0]] = newChild
		return cp, dirty, nil

	case hashNode:
		resolved, err := t.resolveHash(n)
		if err != nil {
			return nil, false, err
		}
		return t.insert(resolved, key, value)

	case nil:
		return &shortNode{Key: key, Val: value}, true, nil

	default:
		return nil, false, errors.New("trie: invalid node type")
	}
}

func (t *Trie) delete(n node, key []byte) (node, bool, error) {
	switch n := n.(type) {
	case nil:
		return nil, false, nil
	case valueNode:
		return nil, true, nil
	case *shortNode:
		match := prefixLen(key, n.Key)
		if match < len(n.Key) {
			return n, false, nil
		}
		if match == len(key) {
			return nil, true, nil
		}
		newVal, dirty, err := t.delete(n.Val, key[match:])
		if err != nil || !dirty {
			return n, dirty, err
		}
		if newVal == nil {
			return nil, true, nil
		}
		return &shortNode{Key: n.Key, Val: newVal}, true, nil
	case *fullNode:
		cp := n.copy()
		newChild, dirty, err := t.delete(n.Children[key[0]], key[1:])
		if err != nil || !dirty {
			return n, dirty, err
		}
		cp.Children[key[0]] = newChild
		return cp, true, nil
	case hashNode:
		resolved, err := t.resolveHash(n)
		if err != nil {
			return nil, false, err
		}
		return t.delete(resolved, key)
	default:
		return nil, false, errors.New("trie: invalid node type")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hash commits every dirty node to the backing database and returns the
// trie's root hash. It is cheap to call repeatedly: already-committed
// subtrees are represented as hashNode and are not re-encoded.
func (t *Trie) Hash() common.Hash {
	if t.root == nil {
		return emptyRoot
	}
	h, err := t.commit(t.root)
	if err != nil {
		return emptyRoot
	}
	t.root = hashNode(h.Bytes())
	return h
}

// commit recursively encodes n, stores the encoding, and returns its hash.
func (t *Trie) commit(n node) (common.Hash, error) {
	switch n := n.(type) {
	case hashNode:
		return common.BytesToHash(n), nil
	case valueNode:
		return crypto.Keccak256Hash(n), nil
	case *shortNode:
		ref, err := t.childRef(n.Val)
		if err != nil {
			return common.Hash{}, err
		}
		enc, err := rlp.EncodeToBytes([]interface{}{hexToCompact(n.Key), ref})
		if err != nil {
			return common.Hash{}, err
		}
		h := crypto.Keccak256Hash(enc)
		if err := t.db.put(h, enc); err != nil {
			return common.Hash{}, err
		}
		return h, nil
	case *fullNode:
		parts := make([]interface{}, 17)
		for i := 0; i < 17; i++ {
			ref, err := t.childRef(n.Children[i])
			if err != nil {
				return common.Hash{}, err
			}
			parts[i] = ref
		}
		enc, err := rlp.EncodeToBytes(parts)
		if err != nil {
			return common.Hash{}, err
		}
		h := crypto.Keccak256Hash(enc)
		if err := t.db.put(h, enc); err != nil {
			return common.Hash{}, err
		}
		return h, nil
	case nil:
		return emptyRoot, nil
	default:
		return common.Hash{}, errors.New("trie: invalid node type")
	}
}

// childRef returns the RLP-embeddable representation of a child: a raw
// value for leaves, or the 32-byte hash of a freshly committed subtree.
func (t *Trie) childRef(n node) ([]byte, error) {
	switch n := n.(type) {
	case nil:
		return nil, nil
	case valueNode:
		return []byte(n), nil
	case hashNode:
		return []byte(n), nil
	default:
		h, err := t.commit(n)
		if err != nil {
			return nil, err
		}
		return h.Bytes(), nil
	}
}

// decodeNode parses the RLP encoding of a single stored node.
func decodeNode(enc []byte) (node, error) {
	var raw []rlp.RawValue
	if err := rlp.DecodeBytes(enc, &raw); err != nil {
		return nil, err
	}
	switch len(raw) {
	case 2:
		var compact []byte
		if err := rlp.DecodeBytes(raw[0], &compact); err != nil {
			return nil, err
		}
		key := compactToHex(compact)
		if hasTerm(key) {
			var val []byte
			if err := rlp.DecodeBytes(raw[1], &val); err != nil {
				return nil, err
			}
			return &shortNode{Key: key, Val: valueNode(val)}, nil
		}
		var childHash []byte
		if err := rlp.DecodeBytes(raw[1], &childHash); err != nil {
			return nil, err
		}
		return &shortNode{Key: key, Val: hashNode(childHash)}, nil
	case 17:
		n := &fullNode{}
		for i := 0; i < 17; i++ {
			var child []byte
			if err := rlp.DecodeBytes(raw[i], &child); err != nil {
				return nil, err
			}
			if len(child) == 0 {
				continue
			}
			if i == 16 {
				n.Children[i] = valueNode(child)
			} else {
				n.Children[i] = hashNode(child)
			}
		}
		return n, nil
	default:
		return nil, errors.New("trie: invalid node encoding")
	}
}

// compactToHex is the inverse of hexToCompact.
func compactToHex(compact []byte) []byte {
	if len(compact) == 0 {
		return nil
	}
	base := make([]byte, 0, len(compact)*2)
	odd := compact[0]&(1<<4) != 0
	if odd {
		base = append(base, compact[0]&0x0f)
	}
	for _, b := range compact[1:] {
		base = append(base, b>>4, b&0x0f)
	}
	if compact[0]&(1<<5) != 0 {
		base = append(base, 16)
	}
	return base
}
