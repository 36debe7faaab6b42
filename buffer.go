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

// Buffer is an append-only byte sink for serialized chunks.  The zero
// value is an empty buffer ready for use.
type Buffer struct {
	data []byte
}

// Size returns the number of bytes written so far.
func (b *Buffer) Size() int {
	return len(b.data)
}

// Write appends p to the buffer.  It never returns an error; the
// signature matches [io.Writer] for convenience.
func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

// Bytes returns a copy of everything written to the buffer.
func (b *Buffer) Bytes() []byte {
	res := make([]byte, len(b.data))
	copy(res, b.data)
	return res
}
