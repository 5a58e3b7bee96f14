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

package preferences

import (
	"fmt"

	"github.com/jetsetilly/gopheradvance/prefs"
	"github.com/jetsetilly/gopheradvance/resources"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// skip the BIOS boot sequence and start the guest image directly. forced
	// if no BIOS image is available
	FastBoot prefs.Bool

	// log accesses to IO registers that no component handles
	LogUnmappedIO prefs.Bool

	ARM *ARMPreferences
	NDS *NDSPreferences
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return fmt.Sprintf("%s%s%s", p.dsk, p.ARM.dsk, p.NDS.dsk)
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences but with an explicit path to
// the preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := Defaults()

	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.fastBoot", &p.FastBoot)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.logUnmappedIO", &p.LogUnmappedIO)
	if err != nil {
		return nil, err
	}

	p.ARM.dsk, err = newARMDisk(pth, p.ARM)
	if err != nil {
		return nil, err
	}
	p.NDS.dsk, err = newNDSDisk(pth, p.NDS)
	if err != nil {
		return nil, err
	}

	err = p.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Defaults returns preferences that are not associated with a file. Load()
// and Save() have no effect.
func Defaults() *Preferences {
	p := &Preferences{
		ARM: &ARMPreferences{},
		NDS: &NDSPreferences{},
	}
	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.FastBoot.Set(false)
	p.LogUnmappedIO.Set(false)
	p.ARM.SetDefaults()
	p.NDS.SetDefaults()
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	if err := p.dsk.Load(false); err != nil {
		return err
	}
	if err := p.ARM.dsk.Load(false); err != nil {
		return err
	}
	return p.NDS.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	if err := p.dsk.Save(); err != nil {
		return err
	}
	if err := p.ARM.dsk.Save(); err != nil {
		return err
	}
	return p.NDS.dsk.Save()
}
