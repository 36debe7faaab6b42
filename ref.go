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

// Ref is a shared-ownership handle to a plain string entry.  While at
// least one handle to an entry is alive, [Pool.Prune] will not remove
// the entry, so dereferencing a live handle cannot fail.
//
// Handles are duplicated with [Ref.Clone] and given up with
// [Ref.Release]; Go has no destructors, so releasing is explicit.
type Ref struct {
	entry *Entry
}

// String returns the interned text.
func (r *Ref) String() string {
	return r.entry.Value
}

// Index returns the current position of the entry in the pool.  The
// value is only meaningful until the next call to [Pool.Sort] or
// [Pool.Prune]; callers must not cache it across such calls.
func (r *Ref) Index() int {
	return r.entry.index
}

// Clone returns a new handle to the same entry.
func (r *Ref) Clone() *Ref {
	r.entry.refs++
	return &Ref{entry: r.entry}
}

// Release gives up the handle.  Once the last handle to an entry has
// been released, the next call to [Pool.Prune] removes the entry.
// Releasing a handle twice has no effect.
func (r *Ref) Release() {
	if r.entry == nil {
		return
	}
	r.entry.refs--
	r.entry = nil
}

// StyleRef is a shared-ownership handle to a styled string entry.
// It behaves like [Ref], but also gives access to the style spans.
type StyleRef struct {
	entry *Entry
}

// String returns the interned text, without the style information.
func (r *StyleRef) String() string {
	return r.entry.Value
}

// Spans returns the style spans of the entry, in the order they were
// supplied to [Pool.MakeStyleRef].  The returned slice is owned by
// the pool and must not be modified.
func (r *StyleRef) Spans() []Span {
	return r.entry.spans
}

// Index returns the current position of the entry in the pool, with
// the same caveats as [Ref.Index].
func (r *StyleRef) Index() int {
	return r.entry.index
}

// Clone returns a new handle to the same entry.
func (r *StyleRef) Clone() *StyleRef {
	r.entry.refs++
	return &StyleRef{entry: r.entry}
}

// Release gives up the handle.  Releasing a handle twice has no
// effect.
func (r *StyleRef) Release() {
	if r.entry == nil {
		return
	}
	r.entry.refs--
	r.entry = nil
}
