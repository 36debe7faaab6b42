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

import (
	"encoding/binary"
	"fmt"
)

// FlattenUTF8 appends the string pool chunk for pool to buf, using
// the UTF-8 variant of the string data region.
//
// The chunk layout is: the pool header, one 32-bit offset per string,
// one 32-bit offset per style, the string data region, and the style
// data region.  All region sizes are computed before the first byte
// is written, so the header is emitted complete and nothing needs to
// be patched afterwards.
//
// FlattenUTF8 does not modify the pool.  It fails if a string is too
// long for the length prefix of the UTF-8 encoding, or if a style
// span does not resolve to a pool entry; in both cases nothing is
// written to buf.
func FlattenUTF8(buf *Buffer, pool *Pool) error {
	stringCount := len(pool.entries)

	// The style offsets are indexed by string position, so the style
	// region must cover every entry up to and including the last
	// styled one.  Unstyled entries in that range get an empty span
	// list.
	styleCount := 0
	for i, e := range pool.entries {
		if e.Styled() {
			styleCount = i + 1
		}
	}

	for i, e := range pool.entries {
		for j, s := range e.spans {
			if s.Name == nil || s.Name.entry == nil {
				return fmt.Errorf("string %d, span %d: %w", i, j, ErrCorruptPool)
			}
		}
	}

	offsets := make([]uint32, stringCount)
	n16s := make([]int, stringCount)
	stringDataSize := 0
	for i, e := range pool.entries {
		n16 := utf16Length(e.Value)
		n8 := len(e.Value)
		if n16 > maxEncodedLength || n8 > maxEncodedLength {
			return fmt.Errorf("string %d: %w", i, errStringTooLong)
		}
		offsets[i] = uint32(stringDataSize)
		n16s[i] = n16
		stringDataSize += lengthSize(n16) + lengthSize(n8) + n8 + 1
	}
	paddedStringData := align4(stringDataSize)

	styleOffsets := make([]uint32, styleCount)
	styleDataSize := 0
	for i := 0; i < styleCount; i++ {
		styleOffsets[i] = uint32(styleDataSize)
		styleDataSize += (len(pool.entries[i].spans) + 1) * 12
	}
	if styleCount > 0 {
		// one more sentinel record closes the region
		styleDataSize += 12
	}

	headerAndOffsets := poolHeaderSize + 4*(stringCount+styleCount)
	total := headerAndOffsets + paddedStringData + styleDataSize

	stringsStart := 0
	if stringCount > 0 {
		stringsStart = headerAndOffsets
	}
	stylesStart := 0
	if styleCount > 0 {
		stylesStart = headerAndOffsets + paddedStringData
	}

	appendUint16(buf, ChunkTypeStringPool)
	appendUint16(buf, poolHeaderSize)
	appendUint32(buf, uint32(total))
	appendUint32(buf, uint32(stringCount))
	appendUint32(buf, uint32(styleCount))
	appendUint32(buf, FlagUTF8)
	appendUint32(buf, uint32(stringsStart))
	appendUint32(buf, uint32(stylesStart))

	for _, off := range offsets {
		appendUint32(buf, off)
	}
	for _, off := range styleOffsets {
		appendUint32(buf, off)
	}

	for i, e := range pool.entries {
		appendLength(buf, n16s[i])
		appendLength(buf, len(e.Value))
		buf.Write([]byte(e.Value))
		buf.Write([]byte{0})
	}
	if pad := paddedStringData - stringDataSize; pad > 0 {
		buf.Write(make([]byte, pad))
	}

	for i := 0; i < styleCount; i++ {
		for _, s := range pool.entries[i].spans {
			appendUint32(buf, uint32(s.Name.entry.index))
			appendUint32(buf, s.FirstChar)
			appendUint32(buf, s.LastChar)
		}
		appendSentinel(buf)
	}
	if styleCount > 0 {
		appendSentinel(buf)
	}

	return nil
}

// utf16Length returns the number of 16-bit code units needed to
// represent s in UTF-16.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneLen(r)
	}
	return n
}

// utf16RuneLen is utf16.RuneLen from the standard library, which is
// only available from Go 1.23 onwards.
func utf16RuneLen(r rune) int {
	if 0 <= r && r < 0xD800 || 0xE000 <= r && r < 0x10000 {
		return 1
	} else if 0x10000 <= r && r <= 0x10FFFF {
		return 2
	}
	return -1
}

// lengthSize returns the encoded size of the variable-length prefix
// for the value n: one byte for up to 7 bits, two bytes otherwise.
func lengthSize(n int) int {
	if n > 0x7F {
		return 2
	}
	return 1
}

// appendLength writes the variable-length prefix for n.  Values
// larger than 0x7F are stored big-end first, with the top bit of the
// first byte marking the continuation.
func appendLength(b *Buffer, n int) {
	if n > 0x7F {
		b.Write([]byte{byte(n>>8) | 0x80, byte(n)})
	} else {
		b.Write([]byte{byte(n)})
	}
}

// appendSentinel writes one span record with all fields set to
// [SpanEnd].
func appendSentinel(b *Buffer) {
	for i := 0; i < 3; i++ {
		appendUint32(b, SpanEnd)
	}
}

func appendUint16(b *Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.Write(tmp[:])
}

func appendUint32(b *Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
}
