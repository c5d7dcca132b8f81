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

// Package rlp implements the canonical Ethereum RLP (Recursive Length
// Prefix) encoding. go-ethereum never reaches for a third-party codec
// for this; neither do we.
package rlp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
)

var ErrNegativeBigInt = errors.New("rlp: cannot encode negative big.Int")

// EmptyString is the canonical RLP encoding of an empty byte string, used
// as the preimage for the empty-trie root hash.
var EmptyString = []byte{0x80}

// Encoder is implemented by types that know how to RLP-encode themselves.
type Encoder interface {
	EncodeRLP(io.Writer) error
}

// Encode writes the RLP encoding of val to w.
func Encode(w io.Writer, val interface{}) error {
	b, err := EncodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val.
func EncodeToBytes(val interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(val)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	if !v.IsValid() {
		writeString(buf, nil)
		return nil
	}

	if v.Type() == rawValueType {
		buf.Write(v.Bytes())
		return nil
	}

	if enc, ok := v.Interface().(Encoder); ok {
		return enc.EncodeRLP(buf)
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			if bi, ok := v.Interface().(*big.Int); ok {
				_ = bi
				writeString(buf, nil)
				return nil
			}
			writeString(buf, nil)
			return nil
		}
		return encodeValue(buf, v.Elem())

	case reflect.String:
		writeString(buf, []byte(v.String()))
		return nil

	case reflect.Bool:
		if v.Bool() {
			writeString(buf, []byte{0x01})
		} else {
			writeString(buf, nil)
		}
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		writeString(buf, uintToMinimalBytes(v.Uint()))
		return nil

	case reflect.Struct:
		if bi, ok := v.Interface().(big.Int); ok {
			return encodeBigInt(buf, &bi)
		}
		return encodeStruct(buf, v)

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			writeString(buf, v.Bytes())
			return nil
		}
		return encodeList(buf, v)

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			writeString(buf, b)
			return nil
		}
		return encodeList(buf, v)

	case reflect.Interface:
		return encodeValue(buf, v.Elem())

	default:
		return fmt.Errorf("rlp: unsupported kind %s", v.Kind())
	}
}

func encodeBigInt(buf *bytes.Buffer, bi *big.Int) error {
	if bi.Sign() < 0 {
		return ErrNegativeBigInt
	}
	if bi.Sign() == 0 {
		writeString(buf, nil)
		return nil
	}
	writeString(buf, bi.Bytes())
	return nil
}

func encodeStruct(buf *bytes.Buffer, v reflect.Value) error {
	var inner bytes.Buffer
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue // unexported
		}
		if err := encodeValue(&inner, v.Field(i)); err != nil {
			return err
		}
	}
	writeListHeader(buf, inner.Len())
	buf.Write(inner.Bytes())
	return nil
}

func encodeList(buf *bytes.Buffer, v reflect.Value) error {
	var inner bytes.Buffer
	for i := 0; i < v.Len(); i++ {
		if err := encodeValue(&inner, v.Index(i)); err != nil {
			return err
		}
	}
	writeListHeader(buf, inner.Len())
	buf.Write(inner.Bytes())
	return nil
}

func uintToMinimalBytes(x uint64) []byte {
	if x == 0 {
		return nil
	}
	var b [8]byte
	n := 8
	for i := 7; i >= 0; i-- {
		b[i] = byte(x)
		x >>= 8
		if b[i] != 0 {
			n = i
		}
	}
	return b[n:]
}

func writeString(buf *bytes.Buffer, b []byte) {
	switch {
	case len(b) == 1 && b[0] < 0x80:
		buf.WriteByte(b[0])
	case len(b) < 56:
		buf.WriteByte(byte(0x80 + len(b)))
		buf.Write(b)
	default:
		writeLongHeader(buf, 0x80, len(b))
		buf.Write(b)
	}
}

func writeListHeader(buf *bytes.Buffer, size int) {
	if size < 56 {
		buf.WriteByte(byte(0xc0 + size))
	} else {
		writeLongHeader(buf, 0xc0, size)
	}
}

func writeLongHeader(buf *bytes.Buffer, offset byte, size int) {
	lenBytes := uintToMinimalBytes(uint64(size))
	buf.WriteByte(offset + 55 + byte(len(lenBytes)))
	buf.Write(lenBytes)
}
