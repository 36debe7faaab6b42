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

// Package arsc provides support for the string pool chunks used in
// Android binary resource tables.
//
// A [Pool] collects the string literals encountered while compiling
// resources.  Strings are deduplicated on insertion, and the returned
// handles stay valid while the pool is sorted or pruned:
//
//	pool := arsc.NewPool()
//	ref := pool.MakeRef("hello")
//	...
//	pool.Sort(func(a, b *arsc.Entry) bool { return a.Value < b.Value })
//	idx := ref.Index() // position after sorting
//
// [FlattenUTF8] serializes a pool into the binary chunk format, and
// [Decode] parses such a chunk back into its strings and style spans.
package arsc
