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
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/modalflag"
	"github.com/jetsetilly/gopheradvance/regression"
	"github.com/jetsetilly/gopheradvance/resources"
)

// the regression database and the directory for copies of regression scripts.
// both are in the resources directory
const (
	regressionDB      = "regressionDB"
	regressionScripts = "regressionScripts"
)

func regress(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dbPath, err := resources.JoinPath(regressionDB)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "RUN":
		return regressRun(md, sync, dbPath)
	case "LIST":
		return regressList(md, dbPath)
	case "DELETE":
		return regressDelete(md, dbPath)
	case "ADD":
		return regressAdd(md, sync, dbPath)
	}

	return nil
}

func regressRun(md *modalflag.Modes, sync *mainSync, dbPath string) error {
	md.NewMode()

	verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
	failOnError := md.AddBool("fail", false, "fail on first error")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := regression.RegressRun(ctx, dbPath, md.Output, *verbose, *failOnError, md.RemainingArgs())
	if err != nil {
		return err
	}

	if res.Fail > 0 || res.Error > 0 {
		return fmt.Errorf("%d regression tests did not succeed", res.Fail+res.Error)
	}

	return nil
}

func regressList(md *modalflag.Modes, dbPath string) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	return regression.RegressList(dbPath, md.Output)
}

func regressDelete(md *modalflag.Modes, dbPath string) error {
	md.NewMode()

	answerYes := md.AddBool("yes", false, "answer yes to confirmation")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("the test number is required for %s mode", md)
	}

	var confirmation io.Reader = os.Stdin
	if *answerYes {
		confirmation = strings.NewReader("y")
	}

	return regression.RegressDelete(dbPath, md.Output, confirmation, md.GetArg(0))
}

func regressAdd(md *modalflag.Modes, sync *mainSync, dbPath string) error {
	md.NewMode()
	md.AdditionalHelp("a script test is added if the -script flag is used. otherwise a digest test is added")

	kind := md.AddString("console", "AUTO", "console kind: GBA, NDS. AUTO decides by file extension")
	saveType := md.AddString("save", "AUTO", "GBA backup memory: NONE, SRAM, FLASH64, FLASH128, EEPROM512, EEPROM8K")
	mode := md.AddString("mode", "both", "digest to compare: video, audio, both")
	numFrames := md.AddInt("frames", 10, "number of frames to run for a digest test")
	script := md.AddString("script", "", "lua script to run for a script test")
	notes := md.AddString("notes", "", "annotation for the test")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single image is required for %s mode", md)
	}

	cl, err := cartridgeloader.NewLoader(md.GetArg(0), *kind, *saveType)
	if err != nil {
		return err
	}

	var reg regression.Regressor

	if *script != "" {
		scriptDir, err := resources.JoinPath(regressionScripts)
		if err != nil {
			return err
		}
		reg, err = regression.NewScriptRegression(cl, *script, scriptDir, *notes)
		if err != nil {
			return err
		}
	} else {
		m, err := regression.ParseDigestMode(*mode)
		if err != nil {
			return err
		}
		reg, err = regression.NewDigestRegression(cl, m, *numFrames, *notes)
		if err != nil {
			return err
		}
	}

	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return regression.RegressAdd(ctx, dbPath, md.Output, reg)
}
