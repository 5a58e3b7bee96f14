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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Instead of defining flags globally, flags are added to an
// instance of the Modes type:
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	nds := md.AddBool("nds", false, "run in dual-CPU mode")
//	p, err := md.Parse()
//
// Sub-modes are added with AddSubModes(). The first sub-mode in the list is
// the default and is selected if the first non-flag argument does not match
// any of the listed sub-modes:
//
//	md.NewMode()
//	md.AddSubModes("RUN", "TRACE", "SCRIPT")
//	p, err := md.Parse()
//	switch md.Mode() {
//	case "TRACE":
//		...
//	}
//
// Sub-mode matching is case insensitive.
package modalflag
