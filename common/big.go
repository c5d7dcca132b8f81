// Copyright 2019 The Nuclear Core Authors
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

package common

import "math/big"

var (
	Big0  = big.NewInt(0)
	Big1  = big.NewInt(1)
	Big8  = big.NewInt(8)
	Big32 = big.NewInt(32)
)

// BigToAddress interprets b as the big-endian bytes of an address.
func BigToAddress(b *big.Int) Address {
	return BytesToAddress(b.Bytes())
}

// BigToHash interprets b as the big-endian bytes of a hash.
func BigToHash(b *big.Int) Hash {
	return BytesToHash(b.Bytes())
}
