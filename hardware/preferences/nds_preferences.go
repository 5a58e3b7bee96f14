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

// NDSPreferences are the values specific to the dual-CPU console.
type NDSPreferences struct {
	dsk *prefs.Disk

	// number of ARM9 cycles for every cycle of the ARM9 core's own clock. the
	// master clock of the system is the ARM9 clock, which runs at twice the
	// rate of the ARM7 clock
	ARM9ClockMultiplier prefs.Int
}

func newNDSDisk(pth string, p *NDSPreferences) (*prefs.Disk, error) {
	dsk, err := prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = dsk.Add("hardware.nds.arm9ClockMultiplier", &p.ARM9ClockMultiplier)
	if err != nil {
		return nil, err
	}
	return dsk, nil
}

// SetDefaults reverts all settings to default values.
func (p *NDSPreferences) SetDefaults() {
	p.ARM9ClockMultiplier.Set(1)
}
