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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jetsetilly/gopheradvance/archivefs"
	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/digest"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/audio"
	"github.com/jetsetilly/gopheradvance/hardware/lcd"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/logger"
	"github.com/jetsetilly/gopheradvance/modalflag"
	"github.com/jetsetilly/gopheradvance/performance"
	"github.com/jetsetilly/gopheradvance/performance/limiter"
	"github.com/jetsetilly/gopheradvance/prefs"
	"github.com/jetsetilly/gopheradvance/resources"
	"github.com/jetsetilly/gopheradvance/scripting"
	"github.com/jetsetilly/gopheradvance/statsview"
	"github.com/jetsetilly/gopheradvance/terminal"
	"github.com/jetsetilly/gopheradvance/version"
	"github.com/jetsetilly/gopheradvance/wavwriter"
)

// the sample rate of the wav file created by the -wav flag
const wavSampleRate = 32768

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode has its own way of
	// ending on ctrl-c
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function
type mainSync struct {
	state chan stateRequest
}

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "TRACE", "SCRIPT", "PERFORMANCE", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "TRACE":
		err = trace(md, sync)

	case "SCRIPT":
		err = script(md, sync)

	case "PERFORMANCE":
		err = perform(md, sync)

	case "REGRESS":
		err = regress(md, sync)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// the flags common to every mode that creates a console
type consoleArgs struct {
	kind     *string
	bios     *string
	bios9    *string
	bios7    *string
	saveType *string
	prefs    *string
	log      *bool
}

func addConsoleArgs(md *modalflag.Modes) consoleArgs {
	return consoleArgs{
		kind:     md.AddString("console", "AUTO", "console kind: GBA, NDS. AUTO decides by file extension"),
		bios:     md.AddString("bios", "", "GBA BIOS image. the built-in stub is used if none is given"),
		bios9:    md.AddString("bios9", "", "NDS ARM9 BIOS image"),
		bios7:    md.AddString("bios7", "", "NDS ARM7 BIOS image"),
		saveType: md.AddString("save", "AUTO", "GBA backup memory: NONE, SRAM, FLASH64, FLASH128, EEPROM512, EEPROM8K"),
		prefs:    md.AddString("prefs", "", "preferences to apply for this run. eg. hardware.arm.decodeCache::false"),
		log:      md.AddBool("log", false, "echo log to stdout"),
	}
}

// the console and the file its backup memory is stored in
type session struct {
	con    hardware.Console
	backup string
}

// readOptional returns nil if the filename is empty
func readOptional(filename string) ([]byte, error) {
	if filename == "" {
		return nil, nil
	}
	return archivefs.ReadFile(filename)
}

// create a console from the remaining argument and the console flags.
// callers must call endSession() when they are finished with the console
func newSession(md *modalflag.Modes, ca consoleArgs, renderer lcd.Renderer, sink audio.SampleSink) (*session, error) {
	// set debugging log echo
	if *ca.log {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			logger.SetEcho(logger.NewColorizer(os.Stdout), false)
		} else {
			logger.SetEcho(os.Stdout, false)
		}
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("cartridge or card image required for %s mode", md)
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	cl, err := cartridgeloader.NewLoader(md.GetArg(0), *ca.kind, *ca.saveType)
	if err != nil {
		return nil, err
	}
	if err := cl.Load(context.Background()); err != nil {
		return nil, err
	}

	files := cl.Files()
	if files.BIOS, err = readOptional(*ca.bios); err != nil {
		return nil, err
	}
	if files.BIOS9, err = readOptional(*ca.bios9); err != nil {
		return nil, err
	}
	if files.BIOS7, err = readOptional(*ca.bios7); err != nil {
		return nil, err
	}

	if *ca.prefs != "" {
		prefs.PushCommandLineStack(*ca.prefs)
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	con, err := hardware.NewConsole(cl.Kind, p, files, renderer, nil, sink)
	if err != nil {
		return nil, err
	}

	// preferences on the command line stack only apply to the console just
	// created
	if *ca.prefs != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
		}
	}

	s := &session{
		con: con,
	}

	if con.Backup() != nil {
		s.backup, err = resources.JoinPath("saves", fmt.Sprintf("%s.sav", cl.ShortName()))
		if err != nil {
			return nil, err
		}
		if err := s.loadBackup(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *session) loadBackup() error {
	b := s.con.Backup()
	if b == nil {
		return nil
	}

	data, err := os.ReadFile(s.backup)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := b.Restore(data); err != nil {
		return err
	}
	logger.Logf(logger.Allow, "backup", "loaded %s", s.backup)

	return nil
}

func (s *session) endSession() error {
	b := s.con.Backup()
	if b == nil || !b.Dirty() {
		return nil
	}

	if err := os.WriteFile(s.backup, b.Data(), 0o600); err != nil {
		return err
	}
	logger.Logf(logger.Allow, "backup", "saved %s", s.backup)

	return nil
}

// multiSink sends samples to more than one audio.SampleSink
type multiSink []audio.SampleSink

func (m multiSink) PushSample(channel int, sample int8) {
	for _, s := range m {
		s.PushSample(channel, sample)
	}
}

// sink returns nil if there are no sinks. the console has nothing to do for
// samples when the sink is nil
func (m multiSink) sink() audio.SampleSink {
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

// information sent by the emulation goroutine in the run mode at the end of
// every frame
type frameInfo struct {
	frame uint64
	when  time.Time
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	ca := addConsoleArgs(md)
	frames := md.AddInt("frames", 0, "number of frames to run. zero to run until interrupted")
	fpsCap := md.AddBool("fpscap", true, "cap fps to that of the real hardware")
	wav := md.AddString("wav", "", "record audio to wav file")
	memvizFile := md.AddString("memviz", "", "write a graph of the CPU state to a DOT file on exit")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	printDigest := md.AddBool("digest", false, "print the digest of the video and audio output on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var sinks multiSink
	var renderer lcd.Renderer

	var videoDigest *digest.Video
	var audioDigest *digest.Audio
	if *printDigest {
		videoDigest = digest.NewVideo()
		audioDigest = digest.NewAudio()
		renderer = videoDigest
		sinks = append(sinks, audioDigest)
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav, wavSampleRate)
		if err != nil {
			return err
		}
		defer func() {
			if err := aw.Close(); err != nil {
				logger.Logf(logger.Allow, "wav", "%v", err)
			}
		}()
		sinks = append(sinks, aw)
	}

	s, err := newSession(md, ca, renderer, sinks.sink())
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		stop := statsview.Launch(os.Stdout)
		defer stop()
	}

	var lim *limiter.FPSLimiter
	if *fpsCap {
		lim, err = limiter.NewFPSLimiter(s.con.RefreshRate())
		if err != nil {
			return err
		}
	}

	// the run mode ends gracefully on ctrl-c so that backup memory can be
	// saved
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info := make(chan frameInfo, 1)
	g, ctx := errgroup.WithContext(ctx)

	// emulation
	g.Go(func() error {
		defer close(info)
		for *frames == 0 || s.con.FrameCount() < uint64(*frames) {
			if err := s.con.RunFrame(ctx); err != nil {
				return err
			}
			if lim != nil {
				lim.Wait()
			}

			// the consumer may be running behind. drop the information rather
			// than slow the emulation
			select {
			case info <- frameInfo{frame: s.con.FrameCount(), when: time.Now()}:
			default:
			}
		}
		return nil
	})

	// frame rate reporting
	g.Go(func() error {
		var last frameInfo
		for fi := range info {
			if last.when.IsZero() {
				last = fi
				continue
			}
			if d := fi.when.Sub(last.when); d >= time.Second {
				fps, _ := performance.CalcFPS(s.con.RefreshRate(), fi.frame-last.frame, d.Seconds())
				logger.Logf(logger.Allow, "run", "frame %d: %.2f fps", fi.frame, fps)
				last = fi
			}
		}
		return nil
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, s.con); err != nil {
			return err
		}
	}

	fmt.Printf("! %d frames\n", s.con.FrameCount())

	if *printDigest {
		fmt.Printf("! video digest: %s\n", videoDigest.Hash())
		fmt.Printf("! audio digest: %s\n", audioDigest.Hash())
	}

	return s.endSession()
}

// writeMemviz writes the CPU state of the console as a DOT graph. the memory
// of the console is not included
func writeMemviz(filename string, con hardware.Console) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	snap := con.Snapshot()
	switch {
	case snap.GBA != nil:
		memviz.Map(f, snap.GBA.CPU, snap.GBA.IRQ, snap.GBA.Timers, snap.GBA.DMA)
	case snap.NDS != nil:
		memviz.Map(f, snap.NDS.ARM9, snap.NDS.ARM7, snap.NDS.IRQ9, snap.NDS.IRQ7)
	}

	return nil
}

func trace(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AdditionalHelp("keys: s or space to step, f to run to the end of the frame, h to run until halt, q to quit")

	ca := addConsoleArgs(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	s, err := newSession(md, ca, nil, nil)
	if err != nil {
		return err
	}

	trm, err := terminal.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	// in cbreak mode ctrl-c does not reach the default handler
	sync.state <- stateRequest{req: reqNoIntSig}

	if err := trm.CBreakMode(); err != nil {
		return err
	}
	defer func() {
		_ = trm.CanonicalMode()
	}()

	err = traceLoop(trm, s.con)
	if err != nil {
		return err
	}

	return s.endSession()
}

// the number of master cycles the h key will run for before giving up
const traceHaltLimit = 100000000

func traceLoop(trm *terminal.Terminal, con hardware.Console) error {
	trm.Print("%s\n", con.CPU())

	for {
		k, err := trm.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}

		switch k {
		case 's', ' ', terminal.KeyCarriageReturn, terminal.KeyNewline:
			if err := con.Step(); err != nil {
				return err
			}
			cpu := con.CPU()
			trm.Print("%08x: %08x\n", cpu.ExecutingPC(), cpu.Opcode())

		case 'f':
			if err := con.RunFrame(context.Background()); err != nil {
				return err
			}
			trm.Print("frame %d\n", con.FrameCount())

		case 'h':
			halted, err := con.RunUntilHalt(traceHaltLimit)
			if err != nil {
				return err
			}
			if !halted {
				trm.Print("CPU did not halt\n")
			}

		case 'r':
			trm.Print("%s\n", con.CPU())

		case 'q', terminal.KeyCtrlC, terminal.KeyEsc:
			return nil

		default:
			continue
		}
	}
}

func script(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	ca := addConsoleArgs(md)
	scriptFile := md.AddString("script", "", "lua script to run")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *scriptFile == "" {
		return fmt.Errorf("a script file is required for %s mode", md)
	}

	s, err := newSession(md, ca, nil, nil)
	if err != nil {
		return err
	}

	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scr := scripting.NewScript(s.con, os.Stdout)
	defer scr.Close()

	if err := scr.RunFile(ctx, *scriptFile); err != nil {
		return err
	}

	return s.endSession()
}

func perform(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	ca := addConsoleArgs(md)
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run performance check with profiling: comma separated CPU, MEM or TRACE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	s, err := newSession(md, ca, nil, nil)
	if err != nil {
		return err
	}

	err = performance.Check(md.Output, prf, s.con, *duration)
	if err != nil {
		return err
	}

	return nil
}
