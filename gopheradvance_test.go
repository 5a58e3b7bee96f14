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

package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopheradvance/digest"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/terminal"
	"github.com/jetsetilly/gopheradvance/test"
)

// stores a value in EWRAM and then halts
var haltProgram = []uint32{
	0xe3a00402, // mov r0, #0x02000000
	0xe3a01042, // mov r1, #0x42
	0xe5801000, // str r1, [r0]
	0xef020000, // swi 0x020000
	0xeafffffe, // b .
}

func newTestSession(t *testing.T, backup string, saveType cartridge.SaveType) *session {
	t.Helper()

	rom := make([]byte, 0x400)
	for i, w := range haltProgram {
		binary.LittleEndian.PutUint32(rom[i*4:], w)
	}

	con, err := hardware.NewConsole(hardware.GBA, preferences.Defaults(),
		hardware.Files{Image: rom, SaveType: saveType}, nil, nil, nil)
	test.DemandSuccess(t, err)

	return &session{con: con, backup: backup}
}

func TestBackup(t *testing.T) {
	sav := filepath.Join(t.TempDir(), "test.sav")

	s := newTestSession(t, sav, cartridge.SaveSRAM)

	// nothing to load and nothing written yet
	test.ExpectSuccess(t, s.loadBackup())
	test.ExpectSuccess(t, s.endSession())
	_, err := os.Stat(s.backup)
	test.ExpectFailure(t, err)

	s.con.Bus().Write8(0x0e000010, 0x99, false)
	test.ExpectSuccess(t, s.endSession())
	_, err = os.Stat(s.backup)
	test.ExpectSuccess(t, err)

	// a new session with the same backup file
	s = newTestSession(t, sav, cartridge.SaveSRAM)
	test.ExpectSuccess(t, s.loadBackup())
	v, _ := s.con.Bus().Read8(0x0e000010, false)
	test.ExpectEquality(t, v, uint8(0x99))

	// loading the backup leaves it clean
	test.ExpectEquality(t, s.con.Backup().Dirty(), false)
}

func TestBackupAfterSnapshot(t *testing.T) {
	sav := filepath.Join(t.TempDir(), "test.sav")

	s := newTestSession(t, sav, cartridge.SaveSRAM)
	s.con.Bus().Write8(0x0e000020, 0x77, false)
	_ = s.con.Snapshot()
	test.ExpectSuccess(t, s.endSession())

	data, err := os.ReadFile(sav)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, data[0x20], uint8(0x77))
}

func TestNoBackup(t *testing.T) {
	s := newTestSession(t, "", cartridge.SaveNone)
	test.ExpectSuccess(t, s.loadBackup())
	test.ExpectSuccess(t, s.endSession())
}

func TestTraceLoop(t *testing.T) {
	s := newTestSession(t, "", cartridge.SaveNone)

	r, w, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer r.Close()

	// step three times, show the registers, run until halt and then quit
	_, err = w.Write([]byte("sssrhq"))
	test.DemandSuccess(t, err)
	w.Close()

	out := &test.CompareWriter{}
	trm, err := terminal.NewTerminal(r, out)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, traceLoop(trm, s.con))
	test.ExpectSuccess(t, strings.Contains(out.String(), "08000000: e3a00402"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "08000008: e5801000"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "CPU did not halt") == false)
	test.ExpectEquality(t, s.con.Bus().Peek32(0x02000000), uint32(0x42))
}

func TestTraceEOF(t *testing.T) {
	s := newTestSession(t, "", cartridge.SaveNone)

	r, w, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer r.Close()
	w.Close()

	trm, err := terminal.NewTerminal(r, &bytes.Buffer{})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, traceLoop(trm, s.con))
}

func TestMemviz(t *testing.T) {
	s := newTestSession(t, "", cartridge.SaveNone)

	fn := filepath.Join(t.TempDir(), "cpu.dot")
	test.ExpectSuccess(t, writeMemviz(fn, s.con))

	dot, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.HasPrefix(dot, []byte("digraph")))
}

func TestMultiSink(t *testing.T) {
	var m multiSink
	test.ExpectSuccess(t, m.sink() == nil)

	a := digest.NewAudio()
	m = append(m, a)
	test.ExpectSuccess(t, m.sink() == a)

	b := digest.NewAudio()
	m = append(m, b)
	m.sink().PushSample(1, -5)
	test.ExpectEquality(t, a.Hash(), b.Hash())
}
