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
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// longString has several hundred UTF-16 code units, and its UTF-8
// byte count differs from its UTF-16 code unit count, so both length
// prefixes need the two-byte form.
var longString = strings.Repeat("これは長い文字列のテストです。", 50)

func makeTestPool(t *testing.T) *Pool {
	t.Helper()

	pool := NewPool()
	ref1 := pool.MakeRef("hello")
	ref2 := pool.MakeRef("goodbye")
	ref3 := pool.MakeRef(longString)
	ref4 := pool.MakeStyleRef(StyleString{
		Value: "style",
		Spans: []StyleSpan{
			{Name: "b", FirstChar: 0, LastChar: 1},
			{Name: "i", FirstChar: 2, LastChar: 3},
		},
	})

	for i, idx := range []int{ref1.Index(), ref2.Index(), ref3.Index(), ref4.Index()} {
		if idx != i {
			t.Fatalf("string %d has index %d", i, idx)
		}
	}
	return pool
}

func TestFlattenEmpty(t *testing.T) {
	pool := NewPool()
	buf := &Buffer{}
	if err := FlattenUTF8(buf, pool); err != nil {
		t.Fatal(err)
	}
	if buf.Size() != poolHeaderSize {
		t.Errorf("wrong chunk size %d", buf.Size())
	}

	chunk, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if chunk.Len() != 0 {
		t.Errorf("wrong string count %d", chunk.Len())
	}
	if !chunk.IsUTF8() {
		t.Errorf("UTF-8 flag not set")
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	pool := makeTestPool(t)

	buf := &Buffer{}
	if err := FlattenUTF8(buf, pool); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	if len(data) != buf.Size() {
		t.Errorf("Bytes/Size mismatch: %d != %d", len(data), buf.Size())
	}
	if len(data)%4 != 0 {
		t.Errorf("chunk size %d not 4-byte aligned", len(data))
	}
	if declared := binary.LittleEndian.Uint32(data[4:]); int(declared) != len(data) {
		t.Errorf("declared size %d, wrote %d bytes", declared, len(data))
	}

	chunk, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"hello", "goodbye", longString, "style", "b", "i"}
	var got []string
	for i := 0; i < chunk.Len(); i++ {
		got = append(got, chunk.String(i))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("strings differ (-want +got):\n%s", diff)
	}

	for i := 0; i < 3; i++ {
		if spans := chunk.Spans(i); len(spans) != 0 {
			t.Errorf("plain string %d has %d spans", i, len(spans))
		}
	}
	wantSpans := []SpanRecord{
		{Name: 4, FirstChar: 0, LastChar: 1},
		{Name: 5, FirstChar: 2, LastChar: 3},
	}
	if diff := cmp.Diff(wantSpans, chunk.Spans(3)); diff != "" {
		t.Errorf("spans differ (-want +got):\n%s", diff)
	}
	for _, span := range chunk.Spans(3) {
		name := chunk.String(int(span.Name))
		if name != "b" && name != "i" {
			t.Errorf("wrong span name %q", name)
		}
	}
}

func TestFlattenDeterministic(t *testing.T) {
	pool := makeTestPool(t)

	buf1 := &Buffer{}
	if err := FlattenUTF8(buf1, pool); err != nil {
		t.Fatal(err)
	}
	buf2 := &Buffer{}
	if err := FlattenUTF8(buf2, pool); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Errorf("flattening the same pool twice gave different bytes")
	}
	if pool.Len() != 6 {
		t.Errorf("flattening changed the pool size to %d", pool.Len())
	}
}

func TestFlattenAfterSort(t *testing.T) {
	pool := NewPool()
	pool.MakeRef("z")
	pool.MakeRef("a")
	pool.MakeRef("m")
	pool.Sort(func(a, b *Entry) bool {
		return a.Value < b.Value
	})

	buf := &Buffer{}
	if err := FlattenUTF8(buf, pool); err != nil {
		t.Fatal(err)
	}
	chunk, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "m", "z"}
	for i, s := range want {
		if chunk.String(i) != s {
			t.Errorf("string %d is %q, want %q", i, chunk.String(i), s)
		}
	}
}

func TestFlattenTooLong(t *testing.T) {
	pool := NewPool()
	pool.MakeRef(strings.Repeat("a", 40000))

	buf := &Buffer{}
	err := FlattenUTF8(buf, pool)
	if !errors.Is(err, errStringTooLong) {
		t.Fatalf("expected errStringTooLong, got %v", err)
	}
	if buf.Size() != 0 {
		t.Errorf("failed flatten wrote %d bytes", buf.Size())
	}
}

func TestDecodeUTF16(t *testing.T) {
	// a hand-built UTF-16 chunk containing the single string "hi"
	var data []byte
	le16 := func(v uint16) {
		data = binary.LittleEndian.AppendUint16(data, v)
	}
	le32 := func(v uint32) {
		data = binary.LittleEndian.AppendUint32(data, v)
	}
	le16(ChunkTypeStringPool)
	le16(poolHeaderSize)
	le32(40) // chunk size
	le32(1)  // string count
	le32(0)  // style count
	le32(0)  // flags: UTF-16
	le32(32) // strings start
	le32(0)  // styles start
	le32(0)  // offset of string 0
	le16(2)  // length in code units
	le16('h')
	le16('i')
	le16(0) // terminator

	chunk, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if chunk.IsUTF8() {
		t.Errorf("UTF-8 flag set on UTF-16 chunk")
	}
	if chunk.Len() != 1 || chunk.String(0) != "hi" {
		t.Errorf("decoded %d strings, first %q",
			chunk.Len(), chunk.String(0))
	}
}

func TestDecodeErrors(t *testing.T) {
	pool := makeTestPool(t)
	buf := &Buffer{}
	if err := FlattenUTF8(buf, pool); err != nil {
		t.Fatal(err)
	}
	valid := buf.Bytes()

	corrupt := func(mod func(data []byte) []byte) []byte {
		data := make([]byte, len(valid))
		copy(data, valid)
		return mod(data)
	}

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated header", valid[:20]},
		{"wrong type", corrupt(func(d []byte) []byte {
			d[0] = 0x02
			return d
		})},
		{"wrong header size", corrupt(func(d []byte) []byte {
			d[2] = 0x10
			return d
		})},
		{"size beyond data", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[4:], uint32(len(d)+4))
			return d
		})},
		{"style count beyond strings", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[12:], 100)
			return d
		})},
		{"string offset out of range", corrupt(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[28:], 1<<30)
			return d
		})},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.data)
			var chunkErr *MalformedChunkError
			if !errors.As(err, &chunkErr) {
				t.Errorf("expected MalformedChunkError, got %v", err)
			}
		})
	}
}

func TestBuffer(t *testing.T) {
	buf := &Buffer{}
	if buf.Size() != 0 {
		t.Errorf("new buffer has size %d", buf.Size())
	}

	buf.Write([]byte("abc"))
	buf.Write([]byte("de"))
	if buf.Size() != 5 {
		t.Errorf("wrong size %d", buf.Size())
	}

	data := buf.Bytes()
	if string(data) != "abcde" {
		t.Errorf("wrong contents %q", data)
	}

	// Bytes must return a copy
	data[0] = 'x'
	if string(buf.Bytes()) != "abcde" {
		t.Errorf("Bytes aliases the buffer")
	}
}

func FuzzDecode(f *testing.F) {
	pool := NewPool()
	pool.MakeRef("hello")
	pool.MakeRef("goodbye")
	pool.MakeStyleRef(StyleString{
		Value: "style",
		Spans: []StyleSpan{{Name: "b", FirstChar: 0, LastChar: 1}},
	})
	buf := &Buffer{}
	if err := FlattenUTF8(buf, pool); err != nil {
		f.Fatal(err)
	}
	f.Add(buf.Bytes())

	empty := &Buffer{}
	if err := FlattenUTF8(empty, NewPool()); err != nil {
		f.Fatal(err)
	}
	f.Add(empty.Bytes())

	f.Fuzz(func(t *testing.T, in []byte) {
		c1, err := Decode(in)
		if err != nil {
			return
		}

		// Re-encode the strings and check that they survive.  Styled
		// or duplicated strings change their indices when interned
		// into a fresh pool, so only plain unique pools round-trip
		// byte for byte.
		seen := make(map[string]bool)
		pool := NewPool()
		for i := 0; i < c1.Len(); i++ {
			if c1.Spans(i) != nil {
				return
			}
			s := c1.String(i)
			if seen[s] {
				return
			}
			seen[s] = true
			pool.MakeRef(s)
		}

		buf := &Buffer{}
		if err := FlattenUTF8(buf, pool); err != nil {
			// strings beyond the length prefix range cannot be
			// re-encoded in the UTF-8 variant
			return
		}
		c2, err := Decode(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if c2.Len() != c1.Len() {
			t.Fatalf("string count changed: %d != %d", c2.Len(), c1.Len())
		}
		for i := 0; i < c1.Len(); i++ {
			if c1.String(i) != c2.String(i) {
				t.Errorf("string %d changed: %q != %q",
					i, c1.String(i), c2.String(i))
			}
		}
	})
}
