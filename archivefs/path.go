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

package archivefs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Node is a single entry in a directory or in an archive.
type Node struct {
	Name string

	// a recognised archive file is also considered to be directory
	IsDir     bool
	IsArchive bool
}

func (e Node) String() string {
	return e.Name
}

// Path represents a single destination in the file system.
type Path struct {
	current string
	isDir   bool

	zf *zip.ReadCloser

	// the path inside the archive is split into the directory and the file.
	// paths inside a zip file always use the forward slash
	inZipPath string
	inZipFile string
}

// String returns the current path.
func (afs Path) String() string {
	return afs.current
}

// Base returns the last element of the current path.
func (afs Path) Base() string {
	return filepath.Base(afs.current)
}

// IsDir returns true if Path is currently set to a directory. The root of an
// archive is treated as a directory.
func (afs Path) IsDir() bool {
	return afs.isDir
}

// InArchive returns true if path is currently inside an archive.
func (afs Path) InArchive() bool {
	return afs.zf != nil
}

// Read returns the contents of the file previously set by the Set() function.
func (afs Path) Read() ([]byte, error) {
	if afs.isDir {
		return nil, fmt.Errorf("archivefs: read: %s is a directory", afs.current)
	}

	if afs.zf != nil {
		f, err := afs.zf.Open(path.Join(afs.inZipPath, afs.inZipFile))
		if err != nil {
			return nil, fmt.Errorf("archivefs: read: %w", err)
		}
		defer f.Close()

		b, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("archivefs: read: %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(afs.current)
	if err != nil {
		return nil, fmt.Errorf("archivefs: read: %w", err)
	}
	return b, nil
}

// Close any open zip files and reset path.
func (afs *Path) Close() {
	afs.current = ""
	afs.isDir = false
	afs.inZipPath = ""
	afs.inZipFile = ""
	if afs.zf != nil {
		afs.zf.Close()
		afs.zf = nil
	}
}

// List returns the child entries for the current path location. If the current
// path is a file then the list will be the contents of the containing
// directory of that file. The list is sorted with the Sort() function.
func (afs *Path) List() ([]Node, error) {
	var ent []Node

	if afs.zf != nil {
		for _, f := range afs.zf.File {
			name := strings.TrimSuffix(f.Name, "/")
			if path.Dir(name) != afs.dirInZip() {
				continue
			}
			ent = append(ent, Node{
				Name:  path.Base(name),
				IsDir: f.FileInfo().IsDir(),
			})
		}
	} else {
		dir := afs.current
		if !afs.isDir {
			dir = filepath.Dir(dir)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("archivefs: list: %w", err)
		}

		for _, d := range entries {
			// using os.Stat() to get file information otherwise links to
			// directories do not have the IsDir() property
			p := filepath.Join(dir, d.Name())
			fi, err := os.Stat(p)
			if err != nil {
				continue
			}

			n := Node{
				Name:  d.Name(),
				IsDir: fi.IsDir(),
			}

			if !n.IsDir {
				if zf, err := zip.OpenReader(p); err == nil {
					zf.Close()
					n.IsDir = true
					n.IsArchive = true
				}
			}

			ent = append(ent, n)
		}
	}

	Sort(ent)

	return ent, nil
}

// the directory inside the archive in the form used by path.Dir()
func (afs *Path) dirInZip() string {
	if afs.inZipPath == "" {
		return "."
	}
	return afs.inZipPath
}

// Set the path. Any part of the path can be an archive. Nested archives are not
// supported.
func (afs *Path) Set(pth string) error {
	afs.Close()

	// clean path and split into parts
	pth = filepath.Clean(pth)
	lst := strings.Split(pth, string(filepath.Separator))

	// strings.Split will remove a leading filepath.Separator. we need to add
	// one back so that filepath.Join() works as expected
	if lst[0] == "" {
		lst[0] = string(filepath.Separator)
	}

	pth = ""

	for _, l := range lst {
		pth = filepath.Join(pth, l)

		if afs.zf != nil {
			p := path.Join(afs.inZipPath, l)

			zf, err := afs.zf.Open(p)
			if err != nil {
				afs.Close()
				return fmt.Errorf("archivefs: set: %w", err)
			}
			zfi, err := zf.Stat()
			zf.Close()
			if err != nil {
				afs.Close()
				return fmt.Errorf("archivefs: set: %w", err)
			}

			afs.isDir = zfi.IsDir()
			if afs.isDir {
				afs.inZipPath = p
				afs.inZipFile = ""
			} else {
				afs.inZipFile = l
			}

		} else {
			fi, err := os.Stat(pth)
			if err != nil {
				afs.Close()
				return fmt.Errorf("archivefs: set: %w", err)
			}

			afs.isDir = fi.IsDir()
			if afs.isDir {
				continue
			}

			afs.zf, err = zip.OpenReader(pth)
			if err == nil {
				// the root of an archive file is considered to be a directory
				afs.isDir = true
				continue
			}

			if !errors.Is(err, zip.ErrFormat) {
				afs.Close()
				return fmt.Errorf("archivefs: set: %w", err)
			}
		}
	}

	afs.current = filepath.Clean(pth)

	return nil
}
