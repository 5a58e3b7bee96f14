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
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/database"
	"github.com/jetsetilly/gopheradvance/scripting"
)

const scriptEntryType = "script"

const (
	scriptFieldImage int = iota
	scriptFieldKind
	scriptFieldSaveType
	scriptFieldScript
	scriptFieldHash
	scriptFieldNotes
	numScriptFields
)

// ScriptRegression runs a Lua script against an image and compares the hash
// of the script output.
type ScriptRegression struct {
	Loader cartridgeloader.Loader
	Script string
	Notes  string

	// directory the script is copied into when the test is added
	scriptDir string

	hash string
}

// NewScriptRegression is the preferred method of initialisation for the
// ScriptRegression type. The script will be copied into scriptDir when the
// regression is added to the database.
func NewScriptRegression(cl cartridgeloader.Loader, script string, scriptDir string, notes string) (*ScriptRegression, error) {
	if _, err := os.Stat(script); err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}
	return &ScriptRegression{
		Loader:    cl,
		Script:    script,
		Notes:     notes,
		scriptDir: scriptDir,
	}, nil
}

func deserialiseScriptEntry(fields []string) (database.Entry, error) {
	if len(fields) != numScriptFields {
		return nil, curated.Errorf("regression: %v", "wrong number of fields for script entry")
	}

	cl, err := cartridgeloader.NewLoader(fields[scriptFieldImage], fields[scriptFieldKind], fields[scriptFieldSaveType])
	if err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}

	return &ScriptRegression{
		Loader: cl,
		Script: fields[scriptFieldScript],
		hash:   fields[scriptFieldHash],
		Notes:  fields[scriptFieldNotes],
	}, nil
}

// EntryType implements the database.Entry interface.
func (reg *ScriptRegression) EntryType() string {
	return scriptEntryType
}

// Serialise implements the database.Entry interface.
func (reg *ScriptRegression) Serialise() ([]string, error) {
	return []string{
		reg.Loader.Filename,
		reg.Loader.Kind.String(),
		reg.Loader.SaveType.String(),
		reg.Script,
		reg.hash,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface. The copy of the script is
// removed.
func (reg *ScriptRegression) CleanUp() error {
	err := os.Remove(reg.Script)
	if err != nil && !os.IsNotExist(err) {
		return curated.Errorf("regression: %v", err)
	}
	return nil
}

func (reg *ScriptRegression) String() string {
	s := fmt.Sprintf("[%s/%s] %s script=%s", reg.Loader.Kind, reg.Loader.SaveType,
		reg.Loader.ShortName(), filepath.Base(reg.Script))
	if reg.Notes != "" {
		s = fmt.Sprintf("%s [%s]", s, reg.Notes)
	}
	return s
}

// the name of the copied script is made unique with a timestamp
func uniqueFilename(dir string, cl cartridgeloader.Loader, script string) string {
	n := time.Now()
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())
	ext := filepath.Ext(script)
	base := strings.TrimSuffix(filepath.Base(script), ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s%s", cl.ShortName(), base, timestamp, ext))
}

func (reg *ScriptRegression) regress(ctx context.Context, newRegression bool) (bool, error) {
	cl := reg.Loader
	if err := cl.Load(ctx); err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	con, err := newConsole(cl.Kind, cl.Files(), nil, nil)
	if err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	h := sha1.New()
	scr := scripting.NewScript(con, h)
	defer scr.Close()

	if err := scr.RunFile(ctx, reg.Script); err != nil {
		return false, err
	}

	hash := fmt.Sprintf("%x", h.Sum(nil))

	if !newRegression {
		return hash == reg.hash, nil
	}

	reg.Loader.SaveType = cl.SaveType
	reg.hash = hash

	// copy the script so that the test is not affected by later changes to
	// the original file
	if reg.scriptDir != "" {
		data, err := os.ReadFile(reg.Script)
		if err != nil {
			return false, curated.Errorf("regression: %v", err)
		}
		if err := os.MkdirAll(reg.scriptDir, 0o700); err != nil {
			return false, curated.Errorf("regression: %v", err)
		}
		copied := uniqueFilename(reg.scriptDir, cl, reg.Script)
		if err := os.WriteFile(copied, data, 0o600); err != nil {
			return false, curated.Errorf("regression: %v", err)
		}
		reg.Script = copied
	}

	return true, nil
}
