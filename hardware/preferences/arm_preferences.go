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
	"github.com/jetsetilly/gopheradvance/prefs"
)

// ARMPreferences are the values that affect the CPU cores.
type ARMPreferences struct {
	dsk *prefs.Disk

	// cache decoded instructions by address. execution is identical with or
	// without the cache
	DecodeCache prefs.Bool

	// log every undefined instruction before the exception is taken
	AbortOnUndefined prefs.Bool
}

func newARMDisk(pth string, p *ARMPreferences) (*prefs.Disk, error) {
	dsk, err := prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = dsk.Add("hardware.arm.decodeCache", &p.DecodeCache)
	if err != nil {
		return nil, err
	}
	err = dsk.Add("hardware.arm.abortOnUndefined", &p.AbortOnUndefined)
	if err != nil {
		return nil, err
	}
	return dsk, nil
}

// SetDefaults reverts all settings to default values.
func (p *ARMPreferences) SetDefaults() {
	p.DecodeCache.Set(true)
	p.AbortOnUndefined.Set(false)
}
