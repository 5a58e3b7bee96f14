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

package scripting_test

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/scripting"
	"github.com/jetsetilly/gopheradvance/test"
)

// b .
var spin = []uint32{0xeafffffe}

func newTestScript(t *testing.T) (*scripting.Script, hardware.Console, *test.CompareWriter) {
	t.Helper()

	rom := make([]byte, 0x400)
	for i, w := range spin {
		binary.LittleEndian.PutUint32(rom[i*4:], w)
	}

	con, err := hardware.NewConsole(hardware.GBA, preferences.Defaults(), hardware.Files{Image: rom}, nil, nil, nil)
	test.DemandSuccess(t, err)

	out := &test.CompareWriter{}
	scr := scripting.NewScript(con, out)
	t.Cleanup(scr.Close)

	return scr, con, out
}

func TestPrint(t *testing.T) {
	scr, _, out := newTestScript(t)

	err := scr.Run(context.Background(), "print", `print("hello", 1, console.kind())`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out.Compare("hello\t1\tGBA\n"))
}

func TestMemory(t *testing.T) {
	scr, con, out := newTestScript(t)

	err := scr.Run(context.Background(), "memory", `
		console.write32(0x02000000, 0x12345678)
		console.write8(0x02000004, 0xab)
		print(string.format("%08x %02x %04x", console.read32(0x02000000), console.read8(0x02000004), console.read16(0x02000002)))
	`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out.Compare("12345678 ab 1234\n"))
	test.ExpectEquality(t, con.Bus().Peek32(0x02000000), uint32(0x12345678))
}

func TestFramesAndRegisters(t *testing.T) {
	scr, con, out := newTestScript(t)

	err := scr.Run(context.Background(), "frames", `
		local f = console.frame(3)
		print(f, console.frames())
		console.setreg(0, 99)
		print(console.reg(0), string.format("%08x", console.reg(15)))
	`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out.Compare("3\t3\n99\t08000000\n"))
	test.ExpectEquality(t, con.FrameCount(), uint64(3))

	out.Clear()
	err = scr.Run(context.Background(), "register", `console.reg(16)`)
	test.ExpectFailure(t, err)
}

func TestButtons(t *testing.T) {
	scr, con, out := newTestScript(t)

	err := scr.Run(context.Background(), "buttons", `
		console.buttons(console.mask(buttons.A, buttons.Start))
		print(string.format("%04x", console.read16(0x04000130)))
	`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out.Compare("03f6\n"))

	v, _ := con.Bus().Read16(0x04000130, false)
	test.ExpectEquality(t, v, uint16(0x03f6))
}

func TestSnapshot(t *testing.T) {
	scr, con, _ := newTestScript(t)

	err := scr.Run(context.Background(), "snapshot", `
		console.write32(0x02000000, 1)
		local s = console.snapshot()
		console.write32(0x02000000, 2)
		console.frame()
		console.restore(s)
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, con.Bus().Peek32(0x02000000), uint32(1))
	test.ExpectEquality(t, con.FrameCount(), uint64(0))

	err = scr.Run(context.Background(), "restore", `console.restore(10)`)
	test.ExpectFailure(t, err)
}

func TestErrors(t *testing.T) {
	scr, _, _ := newTestScript(t)

	err := scr.Run(context.Background(), "syntax", `this is not lua`)
	test.ExpectFailure(t, err)

	err = scr.Run(context.Background(), "runtime", `error("stop")`)
	test.ExpectFailure(t, err)

	// a cancelled context stops the emulation
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = scr.Run(ctx, "cancelled", `console.frame(1000)`)
	test.ExpectFailure(t, err)
}

func TestRunFile(t *testing.T) {
	scr, _, out := newTestScript(t)

	filename := filepath.Join(t.TempDir(), "test.lua")
	test.DemandSuccess(t, os.WriteFile(filename, []byte(`print(console.frame(2))`), 0o600))

	test.ExpectSuccess(t, scr.RunFile(context.Background(), filename))
	test.ExpectSuccess(t, out.Compare("2\n"))
}

func TestRewind(t *testing.T) {
	scr, con, out := newTestScript(t)

	err := scr.Run(context.Background(), "rewind", `
		for i = 1, 5 do
			console.write32(0x02000000, i)
			console.frame()
		end
		print(console.history())
		print(console.rewind(2), console.read32(0x02000000))
	`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out.Compare("0\t5\n2\t2\n"))
	test.ExpectEquality(t, con.FrameCount(), uint64(2))

	// running on from the rewound frame forgets the later frames
	out.Clear()
	err = scr.Run(context.Background(), "diverge", `
		console.frame()
		print(console.history())
	`)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out.Compare("0\t3\n"))
}
