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

// Package logger is the central log for the emulation. Log entries are tagged
// with the name of the component making the entry. Consecutive identical
// entries are collapsed into a single entry with a repeat count.
//
// Hardware components log conditions that are recoverable but which are
// interesting, such as an access to an unmapped IO register. Logging is
// controlled with the Permission interface, which allows the emulation to
// suppress log entries when it is running in a context where logging would be
// noise (for example, when regenerating state during a snapshot replay).
package logger
