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

// Package scripting runs Lua scripts against a console. Scripts can run the
// emulation frame by frame, read and write memory, examine and change the
// registers of the main CPU, press buttons and take and restore snapshots.
// Frames run with console.frame() are kept in a history and the console can
// be returned to any of them with console.rewind().
//
// The functions are in the console table. For example:
//
//	console.buttons(console.mask(buttons.A, buttons.Start))
//	console.frame(10)
//	if console.read32(0x02000000) ~= 0 then
//		print(string.format("%08x", console.reg(15)))
//	end
//
// Lua 5.1 has no bitwise operators so button masks are made with
// console.mask().
package scripting
