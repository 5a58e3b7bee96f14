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

package scripting

import (
	"context"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/keypad"
	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/rewind"
)

// the name of the table that holds the console functions
const consoleTable = "console"

// Script is a Lua interpreter connected to a console.
type Script struct {
	con    hardware.Console
	output io.Writer
	L      *lua.LState

	// the context of the current Run() call
	ctx context.Context

	snapshots []*hardware.Snapshot

	// history of the frames run by the console.frame() function
	rewind *rewind.Rewind
}

// NewScript is the preferred method of initialisation for the Script type.
// Output from the Lua print function is sent to the output writer.
func NewScript(con hardware.Console, output io.Writer) *Script {
	scr := &Script{
		con:    con,
		output: output,
		L:      lua.NewState(),
		ctx:    context.Background(),
		rewind: rewind.NewRewind(con, nil),
	}

	scr.L.SetGlobal("print", scr.L.NewFunction(scr.print))

	tbl := scr.L.SetFuncs(scr.L.NewTable(), map[string]lua.LGFunction{
		"kind":     scr.kind,
		"reset":    scr.reset,
		"frame":    scr.frame,
		"step":     scr.step,
		"halt":     scr.halt,
		"frames":   scr.frames,
		"read8":    scr.read8,
		"read16":   scr.read16,
		"read32":   scr.read32,
		"write8":   scr.write8,
		"write16":  scr.write16,
		"write32":  scr.write32,
		"reg":      scr.reg,
		"setreg":   scr.setreg,
		"cpsr":     scr.cpsr,
		"buttons":  scr.buttons,
		"mask":     scr.mask,
		"snapshot": scr.snapshot,
		"restore":  scr.restore,
		"rewind":   scr.rewindTo,
		"history":  scr.history,
		"log":      scr.log,
	})
	scr.L.SetGlobal(consoleTable, tbl)

	btns := scr.L.NewTable()
	for name, b := range map[string]keypad.Button{
		"A": keypad.ButtonA, "B": keypad.ButtonB,
		"Select": keypad.ButtonSelect, "Start": keypad.ButtonStart,
		"Right": keypad.ButtonRight, "Left": keypad.ButtonLeft,
		"Up": keypad.ButtonUp, "Down": keypad.ButtonDown,
		"R": keypad.ButtonR, "L": keypad.ButtonL,
		"X": keypad.ButtonX, "Y": keypad.ButtonY,
	} {
		scr.L.SetField(btns, name, lua.LNumber(b))
	}
	scr.L.SetGlobal("buttons", btns)

	return scr
}

// Close the Lua interpreter.
func (scr *Script) Close() {
	scr.L.Close()
}

// Run the Lua source. The name is used in error messages. The context is
// checked while the script runs and while the emulation runs.
func (scr *Script) Run(ctx context.Context, name string, source string) error {
	scr.ctx = ctx
	scr.L.SetContext(ctx)
	defer func() {
		scr.L.RemoveContext()
		scr.ctx = context.Background()
	}()

	fn, err := scr.L.Load(strings.NewReader(source), name)
	if err != nil {
		return curated.Errorf("scripting: %v", err)
	}

	scr.L.Push(fn)
	if err := scr.L.PCall(0, lua.MultRet, nil); err != nil {
		return curated.Errorf("scripting: %v", err)
	}

	return nil
}

// RunFile runs the Lua script in the file.
func (scr *Script) RunFile(ctx context.Context, filename string) error {
	scr.ctx = ctx
	scr.L.SetContext(ctx)
	defer func() {
		scr.L.RemoveContext()
		scr.ctx = context.Background()
	}()

	if err := scr.L.DoFile(filename); err != nil {
		return curated.Errorf("scripting: %v", err)
	}

	return nil
}

// raise a Lua error from a Go error. does not return
func (scr *Script) raise(err error) int {
	scr.L.RaiseError("%v", err)
	return 0
}

func (scr *Script) print(L *lua.LState) int {
	var s []string
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(scr.output, strings.Join(s, "\t"))
	return 0
}

func (scr *Script) log(L *lua.LState) int {
	logger.Log(logger.Allow, "script", L.CheckString(1))
	return 0
}

func (scr *Script) kind(L *lua.LState) int {
	L.Push(lua.LString(scr.con.Kind().String()))
	return 1
}

func (scr *Script) reset(L *lua.LState) int {
	if err := scr.con.Reset(); err != nil {
		return scr.raise(err)
	}
	scr.rewind.Reset()
	return 0
}

// frame runs the number of frames (default one) and returns the frame count
func (scr *Script) frame(L *lua.LState) int {
	n := L.OptInt(1, 1)
	for range n {
		if err := scr.con.RunFrame(scr.ctx); err != nil {
			return scr.raise(err)
		}
		scr.rewind.RecordFrame()
	}
	L.Push(lua.LNumber(scr.con.FrameCount()))
	return 1
}

// rewindTo returns the console to an earlier frame run by console.frame().
// returns the frame the console is at
func (scr *Script) rewindTo(L *lua.LState) int {
	fn, err := scr.rewind.GotoFrame(uint64(L.CheckInt64(1)))
	if err != nil {
		return scr.raise(err)
	}
	L.Push(lua.LNumber(fn))
	return 1
}

// history returns the earliest and latest frames that can be rewound to
func (scr *Script) history(L *lua.LState) int {
	f := scr.rewind.GetFrames()
	L.Push(lua.LNumber(f.Start))
	L.Push(lua.LNumber(f.End))
	return 2
}

func (scr *Script) frames(L *lua.LState) int {
	L.Push(lua.LNumber(scr.con.FrameCount()))
	return 1
}

func (scr *Script) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	for range n {
		if err := scr.con.Step(); err != nil {
			return scr.raise(err)
		}
	}
	return 0
}

// halt runs until the main CPU halts or the limit number of cycles have
// passed. returns true if the CPU halted
func (scr *Script) halt(L *lua.LState) int {
	limit := L.OptInt64(1, 1000000)
	halted, err := scr.con.RunUntilHalt(uint64(limit))
	if err != nil {
		return scr.raise(err)
	}
	L.Push(lua.LBool(halted))
	return 1
}

func checkAddress(L *lua.LState, n int) uint32 {
	return uint32(L.CheckInt64(n))
}

func (scr *Script) read8(L *lua.LState) int {
	v, _ := scr.con.Bus().Peek8(checkAddress(L, 1))
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) read16(L *lua.LState) int {
	addr := checkAddress(L, 1)
	L.Push(lua.LNumber(scr.con.Bus().Peek32(addr) & 0xffff))
	return 1
}

func (scr *Script) read32(L *lua.LState) int {
	L.Push(lua.LNumber(scr.con.Bus().Peek32(checkAddress(L, 1))))
	return 1
}

// writes have the same effect as a write by the CPU
func (scr *Script) write8(L *lua.LState) int {
	scr.con.Bus().Write8(checkAddress(L, 1), uint8(L.CheckInt64(2)), false)
	return 0
}

func (scr *Script) write16(L *lua.LState) int {
	scr.con.Bus().Write16(checkAddress(L, 1), uint16(L.CheckInt64(2)), false)
	return 0
}

func (scr *Script) write32(L *lua.LState) int {
	scr.con.Bus().Write32(checkAddress(L, 1), uint32(L.CheckInt64(2)), false)
	return 0
}

func checkRegister(L *lua.LState, n int) int {
	r := L.CheckInt(n)
	if r < 0 || r >= arm.NumRegisters {
		L.ArgError(n, "register number out of range")
	}
	return r
}

func (scr *Script) reg(L *lua.LState) int {
	L.Push(lua.LNumber(scr.con.CPU().Register(checkRegister(L, 1))))
	return 1
}

func (scr *Script) setreg(L *lua.LState) int {
	scr.con.CPU().SetRegister(checkRegister(L, 1), uint32(L.CheckInt64(2)))
	return 0
}

func (scr *Script) cpsr(L *lua.LState) int {
	L.Push(lua.LNumber(scr.con.CPU().CPSR()))
	return 1
}

func (scr *Script) buttons(L *lua.LState) int {
	scr.con.SetButtons(keypad.Button(L.CheckInt(1)))
	return 0
}

// mask combines any number of button values
func (scr *Script) mask(L *lua.LState) int {
	var m int
	for i := 1; i <= L.GetTop(); i++ {
		m |= L.CheckInt(i)
	}
	L.Push(lua.LNumber(m))
	return 1
}

// snapshot returns an index that can be passed to restore
func (scr *Script) snapshot(L *lua.LState) int {
	scr.snapshots = append(scr.snapshots, scr.con.Snapshot())
	L.Push(lua.LNumber(len(scr.snapshots)))
	return 1
}

func (scr *Script) restore(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 1 || i > len(scr.snapshots) {
		L.ArgError(1, "no snapshot with that index")
		return 0
	}
	if err := scr.con.Plumb(scr.snapshots[i-1]); err != nil {
		return scr.raise(err)
	}
	return 0
}
