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

package nds

import (
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware/arm"
	"github.com/jetsetilly/gopheradvance/hardware/memory"
)

// the location of the copy of the card header in main RAM after the BIOS
// boot sequence
const (
	headerCopyAddress = 0x027ffe00
	headerCopySize    = 0x170
)

// the CP15 settings after the BIOS boot sequence. the DTCM is 16K at
// 0x027c0000 and the ITCM is mirrored over the first 32MB
const (
	bootCP15Control = 0x0005707d
	bootDTCM        = 0x027c000a
	bootITCM        = 0x00000020
)

// the register word that contains POSTFLG in both IO spaces
const regPostflg = 0x04000300

// the stack pointers after the BIOS boot sequence
const (
	boot9SVC = 0x027c3fc0
	boot9IRQ = 0x027c3fa0
	boot9SYS = 0x027c3ec0
	boot7SVC = 0x0380ffdc
	boot7IRQ = 0x0380ffb0
	boot7SYS = 0x0380ff00
)

// directBoot copies the card binaries to memory and sets the CPUs to the
// state they are left in by the BIOS boot sequence
func (n *NDS) directBoot() error {
	if n.Header == nil {
		return curated.Errorf("nds: %v", "a card image is required to boot without the BIOS")
	}

	// the ARM7 has all of shared WRAM
	n.WRAM.SetCnt(3)

	load(n.Mem9, headerCopyAddress, n.image[:min(len(n.image), headerCopySize)])
	load(n.Mem9, n.Header.ARM9.RAMAddress, n.Header.ARM9.Data(n.image))
	load(n.Mem7, n.Header.ARM7.RAMAddress, n.Header.ARM7.Data(n.image))

	n.ARM9.WriteCP15(9, 1, 0, bootDTCM)
	n.ARM9.WriteCP15(9, 1, 1, bootITCM)
	n.ARM9.WriteCP15(1, 0, 0, bootCP15Control)

	boot(n.ARM9, boot9SVC, boot9IRQ, boot9SYS, n.Header.ARM9.Entry)
	boot(n.ARM7, boot7SVC, boot7IRQ, boot7SYS, n.Header.ARM7.Entry)

	n.IO9.Write8(regPostflg, 1)
	n.IO7.Write8(regPostflg, 1)

	return nil
}

// load writes the data through the bus. the ARM7 binary is often loaded to
// shared WRAM, which can't be poked
func load(bus *memory.Bus, addr uint32, data []byte) {
	for i, d := range data {
		bus.Write8(addr+uint32(i), d, false)
	}
}

func boot(cpu *arm.ARM, svc uint32, irq uint32, sys uint32, entry uint32) {
	cpu.SetBankedRegister(arm.ModeSVC, arm.SP, svc)
	cpu.SetBankedRegister(arm.ModeIRQ, arm.SP, irq)
	cpu.SetCPSR(uint32(arm.ModeSYS))
	cpu.SetRegister(arm.SP, sys)
	cpu.SetRegister(arm.LR, entry)
	cpu.SetRegister(arm.PC, entry)
}
