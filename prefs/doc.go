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

// Package prefs facilitates the storage of preferential values in the
// GopherAdvance system. Preference values are stored in a plain text file,
// one value per line, in the form:
//
//	key :: value
//
// Values are added to a Disk instance with the Add() function and are
// written to the file with Save(). Values in the file that are not known to
// a Disk instance are preserved when the file is written. This means that
// more than one Disk instance can safely share the same preferences file.
//
// Values can also be supplied on the command line as a group of key/value
// pairs. See PushCommandLineStack() for details. Command line values take
// precedence over values loaded from disk.
package prefs
