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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions are the most useful
// functions in the package. They compare values of comparable type and report
// a test error if the expectation fails. The Demand*() functions are
// equivalents that end the test immediately.
//
// ExpectSuccess() and ExpectFailure() test for success or failure where
// success is defined as a true boolean or a nil error.
//
// The package also provides io.Writer implementations that are useful for
// testing output: CompareWriter, RingWriter and CappedWriter.
package test
