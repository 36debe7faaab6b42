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
	"errors"
	"strconv"
)

var (
	// ErrCorruptPool indicates that a pool handed to the serializer
	// violates the pool invariants, for example a style span whose
	// name no longer resolves to a pool entry.
	ErrCorruptPool = errors.New("corrupt string pool")

	errStringTooLong = errors.New("string too long for length prefix")
)

// MalformedChunkError indicates that a binary chunk could not be parsed.
type MalformedChunkError struct {
	Pos int64
	Err error
}

func (err *MalformedChunkError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid string pool chunk" + middle + tail
}

func (err *MalformedChunkError) Unwrap() error {
	return err.Err
}
