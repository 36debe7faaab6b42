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

// Arsc-strings lists the contents of a flattened string pool chunk.
package main

import (
	"flag"
	"fmt"
	"os"

	"seehuhn.de/go/arsc"
)

func main() {
	showSpans := flag.Bool("spans", true, "show style spans")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [options] strings.bin\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	chunk, err := arsc.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding chunk: %v\n", err)
		os.Exit(1)
	}

	enc := "UTF-16"
	if chunk.IsUTF8() {
		enc = "UTF-8"
	}
	fmt.Printf("%d strings (%s)\n", chunk.Len(), enc)

	for i := 0; i < chunk.Len(); i++ {
		fmt.Printf("%6d: %q\n", i, chunk.String(i))
		if !*showSpans {
			continue
		}
		for _, span := range chunk.Spans(i) {
			name := fmt.Sprintf("#%d", span.Name)
			if int(span.Name) < chunk.Len() {
				name = fmt.Sprintf("%q", chunk.String(int(span.Name)))
			}
			fmt.Printf("        span %s [%d, %d]\n",
				name, span.FirstChar, span.LastChar)
		}
	}
}
