// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created by the
// Errorf() function with a specific pattern. For example:
//
//	e := curated.Errorf("cartridge: image too large (%d bytes)", n)
//
//	if curated.Is(e, "cartridge: image too large (%d bytes)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
// The Error() function normalises the error chain so that it does not contain
// duplicate adjacent parts. This means that a function can always wrap an
// error with its own package prefix without worrying whether the wrapped error
// already carries the same prefix:
//
//	return curated.Errorf("cartridge: %v", err)
//
// Curated errors are used for load-time failures only. Conditions that arise
// during emulation are handled inside the hardware component that detects
// them and are never returned as errors.
package curated
