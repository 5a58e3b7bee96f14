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

// Package cartridgeloader is used to specify the image that is to be inserted
// into the console. The image is a GBA cartridge or an NDS card.
//
// The Load() function handles loading of data from different sources. Local
// files, files inside zip archives and data over HTTP are supported.
//
// The simplest instance of the Loader type:
//
//	cl := cartridgeloader.Loader{
//		Filename: "roms/demo.gba",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the console kind automatically according to
// the filename extension.
package cartridgeloader
