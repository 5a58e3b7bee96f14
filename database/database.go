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

package database

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopheradvance/curated"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const (
	fieldSep = ","
	entrySep = "\n"
)

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

// Activity is used to specify the type of activity that will be happening
// during a database session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new DB session. The init function is
// called before the database file is read.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	if err := init(db); err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || activity != ActivityCreating {
			return nil, curated.Errorf("database: %v", err)
		}
	}

	if err := db.parse(string(data)); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes are written to disk if the commit
// flag is true and the session was not started with ActivityReading.
func (db *Session) EndSession(commit bool) error {
	if !commit || db.activity == ActivityReading {
		return nil
	}

	s := strings.Builder{}
	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		fields, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		s.WriteString(fmt.Sprintf("%03d%s%s", key, fieldSep, ent.EntryType()))
		for _, f := range fields {
			if strings.Contains(f, fieldSep) || strings.Contains(f, entrySep) {
				return curated.Errorf("database: %v", fmt.Sprintf("field contains a separator (%s)", f))
			}
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)
	}

	if err := os.WriteFile(db.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf("database: %v", err)
	}

	return nil
}

func (db *Session) parse(data string) error {
	for i, line := range strings.Split(data, entrySep) {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf("database: %v", fmt.Sprintf("too few fields at line %d", i+1))
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf("database: %v", fmt.Sprintf("invalid key (%s) at line %d", fields[leaderFieldKey], i+1))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf("database: %v", fmt.Sprintf("duplicate key (%d) at line %d", key, i+1))
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf("database: %v", fmt.Sprintf("unrecognised entry type (%s) at line %d", fields[leaderFieldID], i+1))
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		db.entries[key] = ent
	}

	return nil
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db *Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db *Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, db.entries[key]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}

// Add an entry to the db. Returns the key of the new entry.
func (db *Session) Add(ent Entry) (int, error) {
	if db.activity == ActivityReading {
		return 0, curated.Errorf("database: %v", "cannot add entry in a reading session")
	}

	var key int
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return 0, curated.Errorf("database: %v", fmt.Sprintf("maximum entries exceeded (max %d)", maxEntries))
	}

	db.entries[key] = ent

	return key, nil
}

// Get returns the entry with the key.
func (db *Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf("database: %v", fmt.Sprintf("key not available (%d)", key))
	}
	return ent, nil
}

// Delete deletes an entry with the specified key.
func (db *Session) Delete(key int) error {
	if db.activity == ActivityReading {
		return curated.Errorf("database: %v", "cannot delete entry in a reading session")
	}

	ent, err := db.Get(key)
	if err != nil {
		return err
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf("database: %v", err)
	}

	delete(db.entries, key)

	return nil
}
