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

// Package archivefs treats zip archives as directories. A file inside an
// archive is named by joining the path to the archive and the path of the file
// inside the archive. For example:
//
//	roms/collection.zip/homebrew/demo.gba
package archivefs

// ReadFile returns the contents of the named file. The file can be inside an
// archive.
func ReadFile(filename string) ([]byte, error) {
	var afs Path
	err := afs.Set(filename)
	if err != nil {
		return nil, err
	}
	defer afs.Close()
	return afs.Read()
}
