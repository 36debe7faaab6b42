// seehuhn.de/go/arsc - a library for reading and writing Android resource tables
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package arsc

// Chunk type codes, as used in the first field of every chunk header.
const (
	ChunkTypeStringPool uint16 = 0x0001
)

// Sizes of the fixed chunk headers, in bytes.
const (
	chunkHeaderSize = 8
	poolHeaderSize  = 28
)

// Flags for the string pool header.
const (
	// FlagSorted indicates that the strings are sorted by their
	// UTF-16 representation, so that readers may binary-search the
	// pool.  This library never sets the flag.
	FlagSorted uint32 = 1 << 0

	// FlagUTF8 indicates that the string data region uses the UTF-8
	// encoding instead of UTF-16.
	FlagUTF8 uint32 = 1 << 8
)

// SpanEnd is the reserved name index which terminates a span list.
// A record with this name ends the span array of one styled string,
// and one further such record ends the whole style data region.
const SpanEnd uint32 = 0xFFFFFFFF

// The longest string length, in UTF-16 code units or UTF-8 bytes,
// which the variable-length prefix of the string data region can
// represent.
const maxEncodedLength = 0x7FFF

// align4 rounds n up to the next multiple of four.
func align4(n int) int {
	return (n + 3) &^ 3
}
