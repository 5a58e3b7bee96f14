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

// Package database is a very simple way of storing structured and arbitrary
// entry types. It's as simple as simple can be but is still useful in helping
// to organise what is essentially a flat file.
//
// Use of a database requires starting a "session". We do this with the
// StartSession() function, coupled with an EndSession() once we're done. For
// example (error handling removed for clarity):
//
//	db, _ := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
//	defer db.EndSession(true)
//
// The second argument is a description of the type of activity that will be
// happening during the session. ActivityCreating creates the database if it
// does not already exist. If we don't want to modify the database at all, then
// we can use ActivityReading, in which case EndSession() will not write to the
// file regardless of the commit argument.
//
// The third argument is the database initialisation function. It tells the
// database what entry types to expect with RegisterEntryType():
//
//	func initDBSession(db *database.Session) error {
//		return db.RegisterEntryType("foo", deserialiseFoo)
//	}
//
// The deserialise function takes the fields of an entry and returns a new
// database.Entry:
//
//	func deserialiseFoo(fields []string) (database.Entry, error) {
//		return &fooEntry{numOfFoos: fields[0]}, nil
//	}
package database
