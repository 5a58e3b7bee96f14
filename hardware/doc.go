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

// Package hardware creates either of the two consoles behind a single
// interface. The consoles themselves are in the gba and nds sub-packages and
// can be used directly when the full detail of the system is required.
//
// The Console interface is used by the command line modes and by the
// scripting package.
//
//	con, err := hardware.NewConsole(hardware.GBA, prefs, hardware.Files{Image: rom}, nil, nil, nil)
//	if err != nil {
//		return err
//	}
//	for range 60 {
//		if err := con.RunFrame(ctx); err != nil {
//			return err
//		}
//	}
package hardware
