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

package regression

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/logger"
)

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is for convenience really. when true the results of the test are
	// stored in the entry
	regress(ctx context.Context, newRegression bool) (bool, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(digestEntryType, deserialiseDigestEntry); err != nil {
		return err
	}
	if err := db.RegisterEntryType(scriptEntryType, deserialiseScriptEntry); err != nil {
		return err
	}
	return nil
}

// the console used by every regression test. the default preferences are
// always used
func newConsole(kind hardware.Kind, files hardware.Files, renderer lcd.Renderer, sink audio.SampleSink) (hardware.Console, error) {
	return hardware.NewConsole(kind, preferences.Defaults(), files, renderer, nil, sink)
}

// RegressList displays all entries in the database.
func RegressList(dbPath string, output io.Writer) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (use io.Discard)")
	}

	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression database. The user is
// asked to confirm the deletion with the confirmation reader.
func RegressDelete(dbPath string, output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (use io.Discard)")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: %v", fmt.Sprintf("invalid key (%s)", key))
	}

	db, err := database.StartSession(dbPath, database.ActivityModifying, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	ent, err := db.Get(v)
	if err != nil {
		db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && err != io.EOF {
		db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	if n == 0 || (confirm[0] != 'y' && confirm[0] != 'Y') {
		return db.EndSession(false)
	}

	if err := db.Delete(v); err != nil {
		db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	if err := db.EndSession(true); err != nil {
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "deleted test #%s from regression database\n", key)

	return nil
}

// RegressAdd adds a new regression handler to the database. The test is run
// once to generate the results that later runs are compared against.
func RegressAdd(ctx context.Context, dbPath string, output io.Writer, reg Regressor) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil (use io.Discard)")
	}

	db, err := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "adding: %s\r", reg)

	ok, err := reg.regress(ctx, true)
	if err != nil || !ok {
		db.EndSession(false)
		if err == nil {
			err = curated.Errorf("regression: %v", "test could not be added")
		}
		return err
	}

	key, err := db.Add(reg)
	if err != nil {
		db.EndSession(false)
		reg.CleanUp()
		return curated.Errorf("regression: %v", err)
	}

	if err := db.EndSession(true); err != nil {
		reg.CleanUp()
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "\x1b[2K\radded: %03d %s\n", key, reg)
	logger.Logf(logger.Allow, "regression", "added test #%03d", key)

	return nil
}

// Results of a call to RegressRun().
type Results struct {
	Succeed int
	Fail    int
	Error   int
	Skipped int
}

func (r Results) String() string {
	s := fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", r.Succeed, r.Fail, r.Skipped)
	if r.Error > 0 {
		s = fmt.Sprintf("%s [with %d errors]", s, r.Error)
	}
	return s
}

// RegressRun runs the tests in the regression database. The filterKeys list
// specifies which entries to test. An empty list means that every entry
// should be tested.
//
// A test that returns an error is counted as an error and not as a failure.
// If failOnError is true then testing stops on the first error.
func RegressRun(ctx context.Context, dbPath string, output io.Writer, verbose bool, failOnError bool, filterKeys []string) (Results, error) {
	var res Results

	if output == nil {
		return res, curated.Errorf("regression: %v", "io.Writer should not be nil (use io.Discard)")
	}

	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return res, curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(false)

	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return res, curated.Errorf("regression: %v", fmt.Sprintf("invalid key (%s)", k))
		}
		keys = append(keys, v)
	}
	sort.Ints(keys)

	if len(keys) > 0 {
		res.Skipped = db.NumEntries() - len(keys)
	}

	if db.NumEntries() == 0 {
		fmt.Fprintln(output, res)
		return res, nil
	}

	var stopped bool

	onSelect := func(key int, ent database.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: %v", "database entry does not satisfy Regressor interface")
		}

		fmt.Fprintf(output, "running: %s\r", reg)

		ok, err := reg.regress(ctx, false)

		// clear the line ready for the completion message
		fmt.Fprint(output, "\x1b[2K")

		if err != nil {
			res.Error++
			fmt.Fprintf(output, "\r  ERROR: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "%v\n", err)
			}
			if failOnError {
				stopped = true
				return err
			}
		} else if !ok {
			res.Fail++
			fmt.Fprintf(output, "\rfailure: %03d %s\n", key, reg)
		} else {
			res.Succeed++
			fmt.Fprintf(output, "\rsucceed: %03d %s\n", key, reg)
		}

		return nil
	}

	_, err = db.SelectKeys(onSelect, keys...)
	fmt.Fprintln(output, res)

	if err != nil && !stopped {
		return res, err
	}

	return res, nil
}
