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
	"errors"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Chunk is a decoded string pool chunk.
type Chunk struct {
	flags   uint32
	strings []string
	styles  [][]SpanRecord
}

// SpanRecord is one style span as stored in the style data region.
// Name is the pool index of the span's tag name.
type SpanRecord struct {
	Name      uint32
	FirstChar uint32
	LastChar  uint32
}

// Len returns the number of strings in the chunk.
func (c *Chunk) Len() int {
	return len(c.strings)
}

// String returns the string at the given pool index.
func (c *Chunk) String(i int) string {
	return c.strings[i]
}

// Spans returns the style spans for the string at the given pool
// index, or nil if the string has no style information.
func (c *Chunk) Spans(i int) []SpanRecord {
	if i < 0 || i >= len(c.styles) {
		return nil
	}
	return c.styles[i]
}

// IsUTF8 reports whether the string data region used the UTF-8
// encoding.
func (c *Chunk) IsUTF8() bool {
	return c.flags&FlagUTF8 != 0
}

// IsSorted reports whether the chunk declares its strings to be
// sorted.
func (c *Chunk) IsSorted() bool {
	return c.flags&FlagSorted != 0
}

var (
	errWrongChunkType = errors.New("wrong chunk type")
	errTruncated      = errors.New("unexpected end of data")
)

// Decode parses a flattened string pool chunk.  Both the UTF-8 and
// the UTF-16 variants of the string data region are understood.
func Decode(data []byte) (*Chunk, error) {
	if len(data) < poolHeaderSize {
		return nil, &MalformedChunkError{Err: errTruncated}
	}

	typ := binary.LittleEndian.Uint16(data[0:])
	if typ != ChunkTypeStringPool {
		return nil, &MalformedChunkError{Err: errWrongChunkType}
	}
	headerSize := binary.LittleEndian.Uint16(data[2:])
	if headerSize != poolHeaderSize {
		return nil, &MalformedChunkError{Pos: 2,
			Err: fmt.Errorf("header size %d", headerSize)}
	}
	size := int(binary.LittleEndian.Uint32(data[4:]))
	if size < poolHeaderSize || size > len(data) || size%4 != 0 {
		return nil, &MalformedChunkError{Pos: 4,
			Err: fmt.Errorf("chunk size %d", size)}
	}
	data = data[:size]

	stringCount := int(binary.LittleEndian.Uint32(data[8:]))
	styleCount := int(binary.LittleEndian.Uint32(data[12:]))
	flags := binary.LittleEndian.Uint32(data[16:])
	stringsStart := int(binary.LittleEndian.Uint32(data[20:]))
	stylesStart := int(binary.LittleEndian.Uint32(data[24:]))

	res := &Chunk{flags: flags}
	if stringCount == 0 {
		if styleCount != 0 {
			return nil, &MalformedChunkError{Pos: 12,
				Err: fmt.Errorf("%d styles but no strings", styleCount)}
		}
		return res, nil
	}
	if styleCount < 0 || styleCount > stringCount {
		return nil, &MalformedChunkError{Pos: 12,
			Err: fmt.Errorf("style count %d", styleCount)}
	}

	offsetsEnd := poolHeaderSize + 4*(stringCount+styleCount)
	if stringCount < 0 || offsetsEnd > size {
		return nil, &MalformedChunkError{Pos: 8,
			Err: fmt.Errorf("string count %d", stringCount)}
	}
	if stringsStart < offsetsEnd || stringsStart > size {
		return nil, &MalformedChunkError{Pos: 20,
			Err: fmt.Errorf("string data start %d", stringsStart)}
	}
	stringsEnd := size
	if styleCount > 0 {
		if stylesStart < stringsStart || stylesStart > size {
			return nil, &MalformedChunkError{Pos: 24,
				Err: fmt.Errorf("style data start %d", stylesStart)}
		}
		stringsEnd = stylesStart
	}

	res.strings = make([]string, stringCount)
	for i := 0; i < stringCount; i++ {
		off := int(binary.LittleEndian.Uint32(data[poolHeaderSize+4*i:]))
		pos := stringsStart + off
		if off < 0 || pos < stringsStart || pos >= stringsEnd {
			return nil, &MalformedChunkError{Pos: int64(poolHeaderSize + 4*i),
				Err: fmt.Errorf("string %d offset %d", i, off)}
		}

		var s string
		var err error
		if flags&FlagUTF8 != 0 {
			s, err = decodeUTF8String(data[:stringsEnd], pos)
		} else {
			s, err = decodeUTF16String(data[:stringsEnd], pos)
		}
		if err != nil {
			return nil, &MalformedChunkError{Pos: int64(pos), Err: err}
		}
		res.strings[i] = s
	}

	if styleCount > 0 {
		res.styles = make([][]SpanRecord, styleCount)
		for i := 0; i < styleCount; i++ {
			off := int(binary.LittleEndian.Uint32(data[poolHeaderSize+4*(stringCount+i):]))
			pos := stylesStart + off
			if off < 0 || pos < stylesStart {
				return nil, &MalformedChunkError{
					Pos: int64(poolHeaderSize + 4*(stringCount+i)),
					Err: fmt.Errorf("style %d offset %d", i, off)}
			}

			var spans []SpanRecord
			for {
				if pos+12 > size {
					return nil, &MalformedChunkError{Pos: int64(pos),
						Err: errTruncated}
				}
				name := binary.LittleEndian.Uint32(data[pos:])
				if name == SpanEnd {
					break
				}
				spans = append(spans, SpanRecord{
					Name:      name,
					FirstChar: binary.LittleEndian.Uint32(data[pos+4:]),
					LastChar:  binary.LittleEndian.Uint32(data[pos+8:]),
				})
				pos += 12
			}
			res.styles[i] = spans
		}
	}

	return res, nil
}

// decodeUTF8String reads one entry of a UTF-8 string data region.
// Each entry is the UTF-16 code unit count, the UTF-8 byte count,
// the string bytes, and a trailing NUL.
func decodeUTF8String(data []byte, pos int) (string, error) {
	_, pos, err := parseLength8(data, pos)
	if err != nil {
		return "", err
	}
	n, pos, err := parseLength8(data, pos)
	if err != nil {
		return "", err
	}
	if pos+n+1 > len(data) {
		return "", errTruncated
	}
	if data[pos+n] != 0 {
		return "", errors.New("missing string terminator")
	}
	return string(data[pos : pos+n]), nil
}

// parseLength8 reads a variable-length prefix from a UTF-8 string
// data region: one byte, or two bytes big-end first if the top bit of
// the first byte is set.
func parseLength8(data []byte, pos int) (int, int, error) {
	if pos >= len(data) {
		return 0, 0, errTruncated
	}
	b0 := data[pos]
	pos++
	if b0&0x80 == 0 {
		return int(b0), pos, nil
	}
	if pos >= len(data) {
		return 0, 0, errTruncated
	}
	n := int(b0&0x7F)<<8 | int(data[pos])
	return n, pos + 1, nil
}

// decodeUTF16String reads one entry of a UTF-16 string data region:
// the code unit count (one uint16, or two with the top bit of the
// first as continuation flag), the code units, and a 16-bit NUL.
func decodeUTF16String(data []byte, pos int) (string, error) {
	n, pos, err := parseLength16(data, pos)
	if err != nil {
		return "", err
	}
	if pos+2*n+2 > len(data) {
		return "", errTruncated
	}
	if data[pos+2*n] != 0 || data[pos+2*n+1] != 0 {
		return "", errors.New("missing string terminator")
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	buf, err := dec.Bytes(data[pos : pos+2*n])
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func parseLength16(data []byte, pos int) (int, int, error) {
	if pos+2 > len(data) {
		return 0, 0, errTruncated
	}
	w0 := binary.LittleEndian.Uint16(data[pos:])
	pos += 2
	if w0&0x8000 == 0 {
		return int(w0), pos, nil
	}
	if pos+2 > len(data) {
		return 0, 0, errTruncated
	}
	w1 := binary.LittleEndian.Uint16(data[pos:])
	n := int(w0&0x7FFF)<<16 | int(w1)
	return n, pos + 2, nil
}
