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
	"sort"

	"golang.org/x/exp/maps"
)

// Pool is an interning table for the strings of one resource table.
//
// Plain strings are deduplicated: inserting the same text twice yields
// two handles to the same entry.  Styled strings are always appended
// as new entries, even if their text matches an existing entry.
//
// A Pool must not be used from more than one goroutine at a time.
type Pool struct {
	entries []*Entry
	byValue map[string]*Entry
}

// Entry is one interned string in a Pool.  Entries are created by
// [Pool.MakeRef] and [Pool.MakeStyleRef] and are owned by the pool.
type Entry struct {
	Value string

	spans []Span
	index int
	refs  int
}

// Styled reports whether the entry carries style spans.
func (e *Entry) Styled() bool {
	return e.spans != nil
}

// Span is one styled range within an entry's text.  The span name is
// itself an interned string in the same pool.  FirstChar and LastChar
// are inclusive character offsets; the pool does not check them
// against the length of the text.
type Span struct {
	Name      *Ref
	FirstChar uint32
	LastChar  uint32
}

// StyleString is the input to [Pool.MakeStyleRef]: a text together
// with the spans which apply to it, in the order the caller wants
// them stored.
type StyleString struct {
	Value string
	Spans []StyleSpan
}

// StyleSpan describes one span of a [StyleString] before interning.
type StyleSpan struct {
	Name      string
	FirstChar uint32
	LastChar  uint32
}

// NewPool allocates an empty string pool.
func NewPool() *Pool {
	return &Pool{
		byValue: make(map[string]*Entry),
	}
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int {
	return len(p.entries)
}

// MakeRef interns text as a plain string and returns a handle to the
// entry.  If the pool already contains a plain entry with the same
// text, a handle to that entry is returned and no new entry is
// created.  The handle keeps the entry alive until it is released.
func (p *Pool) MakeRef(text string) *Ref {
	if e, ok := p.byValue[text]; ok {
		e.refs++
		return &Ref{entry: e}
	}

	e := &Entry{
		Value: text,
		index: len(p.entries),
		refs:  1,
	}
	p.entries = append(p.entries, e)
	if p.byValue == nil {
		p.byValue = make(map[string]*Entry)
	}
	p.byValue[text] = e
	return &Ref{entry: e}
}

// MakeStyleRef appends a new styled entry to the pool and returns a
// handle to it.  Styled entries are never deduplicated.  The span
// names are interned as plain strings via [Pool.MakeRef], so a tag
// name shared between styles is stored only once.
func (p *Pool) MakeStyleRef(style StyleString) *StyleRef {
	e := &Entry{
		Value: style.Value,
		spans: make([]Span, 0, len(style.Spans)),
		index: len(p.entries),
		refs:  1,
	}
	p.entries = append(p.entries, e)

	// The styled entry is placed first, so that span names get the
	// indices following it.
	for _, s := range style.Spans {
		e.spans = append(e.spans, Span{
			Name:      p.MakeRef(s.Name),
			FirstChar: s.FirstChar,
			LastChar:  s.LastChar,
		})
	}
	return &StyleRef{entry: e}
}

// Prune removes all entries which no handle refers to any more and
// renumbers the surviving entries, keeping their relative order.
// Pruning a styled entry releases the references it holds to its span
// names, so unused names are removed in the same pass.
func (p *Pool) Prune() {
	for _, e := range p.entries {
		if e.refs > 0 {
			continue
		}
		for i := range e.spans {
			if e.spans[i].Name != nil {
				e.spans[i].Name.Release()
				e.spans[i].Name = nil
			}
		}
	}

	n := 0
	for _, e := range p.entries {
		if e.refs > 0 {
			e.index = n
			p.entries[n] = e
			n++
		}
	}
	clear(p.entries[n:])
	p.entries = p.entries[:n]

	maps.DeleteFunc(p.byValue, func(_ string, e *Entry) bool {
		return e.refs == 0
	})
}

// Sort reorders the entries of the pool according to less and assigns
// new indices.  No entry is created or destroyed, existing handles
// remain valid, and deduplication of later insertions is unaffected.
func (p *Pool) Sort(less func(a, b *Entry) bool) {
	sort.SliceStable(p.entries, func(i, j int) bool {
		return less(p.entries[i], p.entries[j])
	})
	for i, e := range p.entries {
		e.index = i
	}
}
