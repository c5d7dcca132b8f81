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

package rlp

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

var (
	ErrUnexpectedEOF = errors.New("rlp: unexpected EOF")
	ErrExpectedList  = errors.New("rlp: expected list")
	ErrExpectedString = errors.New("rlp: expected string")
)

// item is a parsed RLP value: either a byte string or an ordered list of items.
type item struct {
	str    []byte
	list   []*item
	isList bool
	raw    []byte // the exact encoded bytes (header + content) this item came from
}

// RawValue holds an RLP value in its still-encoded form, letting callers
// defer decoding a list element (a node reference, an opaque sub-list)
// until its structure is known.
type RawValue []byte

// Decoder is implemented by types that know how to decode their own RLP
// encoding (the counterpart to Encoder). raw is the exact encoded bytes
// of the value, header included, as captured by parseItem.
type Decoder interface {
	DecodeRLP(raw []byte) error
}

var rawValueType = reflect.TypeOf(RawValue{})

// Decode reads the RLP encoding of an object from r into val, which must be a pointer.
func Decode(r io.Reader, val interface{}) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return DecodeBytes(b, val)
}

// DecodeBytes parses RLP data from b into val, which must be a pointer.
func DecodeBytes(b []byte, val interface{}) error {
	it, rest, err := parseItem(b)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errors.New("rlp: trailing data after value")
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("rlp: Decode requires a non-nil pointer")
	}
	return decodeInto(it, rv.Elem())
}

func parseItem(b []byte) (*item, []byte, error) {
	if len(b) == 0 {
		return nil, nil, ErrUnexpectedEOF
	}
	h := b[0]
	switch {
	case h < 0x80:
		return &item{str: b[:1], raw: b[:1]}, b[1:], nil
	case h < 0xb8:
		size := int(h - 0x80)
		if len(b) < 1+size {
			return nil, nil, ErrUnexpectedEOF
		}
		return &item{str: b[1 : 1+size], raw: b[:1+size]}, b[1+size:], nil
	case h < 0xc0:
		lensize := int(h - 0xb7)
		if len(b) < 1+lensize {
			return nil, nil, ErrUnexpectedEOF
		}
		size := bytesToInt(b[1 : 1+lensize])
		start := 1 + lensize
		if len(b) < start+size {
			return nil, nil, ErrUnexpectedEOF
		}
		return &item{str: b[start : start+size], raw: b[:start+size]}, b[start+size:], nil
	case h < 0xf8:
		size := int(h - 0xc0)
		if len(b) < 1+size {
			return nil, nil, ErrUnexpectedEOF
		}
		items, err := parseList(b[1 : 1+size])
		if err != nil {
			return nil, nil, err
		}
		return &item{list: items, isList: true, raw: b[:1+size]}, b[1+size:], nil
	default:
		lensize := int(h - 0xf7)
		if len(b) < 1+lensize {
			return nil, nil, ErrUnexpectedEOF
		}
		size := bytesToInt(b[1 : 1+lensize])
		start := 1 + lensize
		if len(b) < start+size {
			return nil, nil, ErrUnexpectedEOF
		}
		items, err := parseList(b[start : start+size])
		if err != nil {
			return nil, nil, err
		}
		return &item{list: items, isList: true, raw: b[:start+size]}, b[start+size:], nil
	}
}

func parseList(b []byte) ([]*item, error) {
	var items []*item
	for len(b) > 0 {
		it, rest, err := parseItem(b)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		b = rest
	}
	return items, nil
}

func bytesToInt(b []byte) int {
	n := 0
	for _, c := range b {
		n = n<<8 | int(c)
	}
	return n
}

func decodeInto(it *item, v reflect.Value) error {
	if v.Type() == rawValueType {
		raw := make([]byte, len(it.raw))
		copy(raw, it.raw)
		v.Set(reflect.ValueOf(RawValue(raw)))
		return nil
	}
	switch v.Kind() {
	case reflect.Ptr:
		elemKind := v.Type().Elem().Kind()
		if !it.isList && len(it.str) == 0 && elemKind != reflect.Struct {
			// An empty string decodes to a nil pointer for non-numeric
			// pointer fields (e.g. *common.Address for contract-creation
			// transactions). *big.Int instead decodes to zero, matching
			// encode's treatment of a nil *big.Int as value zero.
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		if dec, ok := v.Interface().(Decoder); ok {
			return dec.DecodeRLP(it.raw)
		}
		return decodeInto(it, v.Elem())

	case reflect.String:
		if it.isList {
			return ErrExpectedString
		}
		v.SetString(string(it.str))
		return nil

	case reflect.Bool:
		if it.isList {
			return ErrExpectedString
		}
		v.SetBool(len(it.str) == 1 && it.str[0] == 0x01)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if it.isList {
			return ErrExpectedString
		}
		v.SetUint(uint64(bytesToInt(it.str)))
		return nil

	case reflect.Struct:
		if _, ok := v.Interface().(big.Int); ok {
			if it.isList {
				return ErrExpectedString
			}
			var bi big.Int
			bi.SetBytes(it.str)
			v.Set(reflect.ValueOf(bi))
			return nil
		}
		if v.CanAddr() {
			if dec, ok := v.Addr().Interface().(Decoder); ok {
				return dec.DecodeRLP(it.raw)
			}
		}
		if !it.isList {
			return ErrExpectedList
		}
		t := v.Type()
		fi := 0
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue
			}
			if fi >= len(it.list) {
				return fmt.Errorf("rlp: too few elements for struct %s", t.Name())
			}
			if err := decodeInto(it.list[fi], v.Field(i)); err != nil {
				return err
			}
			fi++
		}
		return nil

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			if it.isList {
				return ErrExpectedString
			}
			b := make([]byte, len(it.str))
			copy(b, it.str)
			v.SetBytes(b)
			return nil
		}
		if !it.isList {
			return ErrExpectedList
		}
		s := reflect.MakeSlice(v.Type(), len(it.list), len(it.list))
		for i, sub := range it.list {
			if err := decodeInto(sub, s.Index(i)); err != nil {
				return err
			}
		}
		v.Set(s)
		return nil

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			if it.isList {
				return ErrExpectedString
			}
			b := it.str
			if len(b) > v.Len() {
				return fmt.Errorf("rlp: byte array too long for %s", v.Type())
			}
			reflect.Copy(v, reflect.ValueOf(padLeft(b, v.Len())))
			return nil
		}
		if !it.isList {
			return ErrExpectedList
		}
		for i := 0; i < v.Len() && i < len(it.list); i++ {
			if err := decodeInto(it.list[i], v.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		if v.NumMethod() == 0 {
			if it.isList {
				out := make([]interface{}, len(it.list))
				for i, sub := range it.list {
					var x interface{}
					if err := decodeInto(sub, reflect.ValueOf(&x).Elem()); err != nil {
						return err
					}
					out[i] = x
				}
				v.Set(reflect.ValueOf(out))
			} else {
				v.Set(reflect.ValueOf(append([]byte{}, it.str...)))
			}
			return nil
		}
		return fmt.Errorf("rlp: cannot decode into interface %s", v.Type())

	default:
		return fmt.Errorf("rlp: unsupported kind %s", v.Kind())
	}
}

func padLeft(b []byte, n int) []byte {
	if len(b) == n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}
