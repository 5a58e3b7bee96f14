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

package database_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/test"
)

type testEntry struct {
	name    string
	cleaned *int
}

func (e *testEntry) EntryType() string {
	return "test"
}

func (e *testEntry) String() string {
	return e.name
}

func (e *testEntry) Serialise() ([]string, error) {
	return []string{e.name}, nil
}

func (e *testEntry) CleanUp() error {
	if e.cleaned != nil {
		*e.cleaned++
	}
	return nil
}

func initTest(db *database.Session) error {
	return db.RegisterEntryType("test", func(fields []string) (database.Entry, error) {
		if len(fields) != 1 {
			return nil, fmt.Errorf("wrong number of fields")
		}
		return &testEntry{name: fields[0]}, nil
	})
}

func TestCreate(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	// the file doesn't exist so reading is not possible
	_, err := database.StartSession(pth, database.ActivityReading, initTest)
	test.ExpectFailure(t, err)

	db, err := database.StartSession(pth, database.ActivityCreating, initTest)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 0)

	key, err := db.Add(&testEntry{name: "foo"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 0)

	key, err = db.Add(&testEntry{name: "bar"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 1)

	test.ExpectSuccess(t, db.EndSession(true))

	data, err := os.ReadFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), "000,test,foo\n001,test,bar\n")

	db, err = database.StartSession(pth, database.ActivityReading, initTest)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 2)

	ent, err := db.Get(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "bar")

	// adding is not allowed in a reading session
	_, err = db.Add(&testEntry{name: "baz"})
	test.ExpectFailure(t, err)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, db.List(w))
	test.ExpectSuccess(t, w.Compare("000 foo\n001 bar\nTotal: 2\n"))
}

func TestDelete(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(pth, database.ActivityCreating, initTest)
	test.DemandSuccess(t, err)

	var cleaned int
	for _, n := range []string{"a", "b", "c"} {
		_, err := db.Add(&testEntry{name: n, cleaned: &cleaned})
		test.DemandSuccess(t, err)
	}

	test.ExpectSuccess(t, db.Delete(1))
	test.ExpectEquality(t, cleaned, 1)
	test.ExpectFailure(t, db.Delete(1))

	// the free key is reused
	key, err := db.Add(&testEntry{name: "d"})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, key, 1)

	// uncommitted changes are not written
	test.ExpectSuccess(t, db.EndSession(false))
	_, err = os.Stat(pth)
	test.ExpectFailure(t, err)
}

func TestSelect(t *testing.T) {
	db, err := database.StartSession(filepath.Join(t.TempDir(), "db"), database.ActivityCreating, initTest)
	test.DemandSuccess(t, err)

	_, err = db.SelectAll(nil)
	test.ExpectFailure(t, err)

	for _, n := range []string{"a", "b", "c"} {
		_, err := db.Add(&testEntry{name: n})
		test.DemandSuccess(t, err)
	}

	var s strings.Builder
	ent, err := db.SelectAll(func(key int, ent database.Entry) error {
		s.WriteString(ent.String())
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "c")
	test.ExpectEquality(t, s.String(), "abc")

	s.Reset()
	ent, err = db.SelectKeys(func(key int, ent database.Entry) error {
		s.WriteString(ent.String())
		return nil
	}, 2, 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "a")
	test.ExpectEquality(t, s.String(), "ca")

	_, err = db.SelectKeys(nil, 5)
	test.ExpectFailure(t, err)
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{
		"000\n",
		"xyz,test,foo\n",
		"000,test,foo\n000,test,bar\n",
		"000,unknown,foo\n",
		"000,test,foo,bar\n",
	} {
		pth := filepath.Join(t.TempDir(), "db")
		test.DemandSuccess(t, os.WriteFile(pth, []byte(data), 0o600))
		_, err := database.StartSession(pth, database.ActivityReading, initTest)
		test.ExpectFailure(t, err)
	}
}

func TestSeparators(t *testing.T) {
	db, err := database.StartSession(filepath.Join(t.TempDir(), "db"), database.ActivityCreating, initTest)
	test.DemandSuccess(t, err)
	_, err = db.Add(&testEntry{name: "a,b"})
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, db.EndSession(true))
}

func TestDuplicateEntryType(t *testing.T) {
	_, err := database.StartSession(filepath.Join(t.TempDir(), "db"), database.ActivityCreating,
		func(db *database.Session) error {
			if err := initTest(db); err != nil {
				return err
			}
			return initTest(db)
		})
	test.ExpectFailure(t, err)
}
