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

// Package cartridge loads guest images and implements the backup memory
// found in cartridges.
//
// The type of backup memory is not detected. It is supplied by the caller
// with the SaveType argument of Load(). Each backup type implements the
// memory.Backup interface so that the contents can be saved and restored by
// the host.
//
// Supported backup types are battery backed SRAM, Flash (64K and 128K, with
// the command protocol) and serial EEPROM (512 bytes and 8K), which is
// accessed one bit at a time by DMA channel 3.
//
// The package also parses the header of card images for the dual-CPU
// system. See ParseHeader().
package cartridge
