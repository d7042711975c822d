package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"time"

	"github.com/meteocima/pangu-runner/conf"
	"github.com/meteocima/pangu-runner/runner"
	"github.com/parro-it/fileargs"

	"github.com/meteocima/virtual-server/vpath"
)

// Version of the command
var Version string = "development"

const usage = `
Usage: pangu-runner [-v] [-m HRES|UNIFORM] [-outargs <argsfile>] <workdir> [startdate leadhours]

-v print version to stdout
-m specify how forecast steps are enumerated. HRES runs the fixed high resolution
sequence out to 240 hours (hourly to 90h, 3-hourly to 144h, 6-hourly to 240h).
UNIFORM runs 6-hourly steps up to the requested lead time. Default is HRES.
-outargs if specified, the command write an inputs/arguments.txt file suitable to be used
as an input arguments.txt file. You cannot use this option if you omit startdate and
leadhours arguments.

To choose which dates to forecast you can use startdate and leadhours arguments if you
need a single date. Otherwise, you omit this two arguments, and an inputs/arguments.txt
will be read that contains all the dates to run. Format for dates is YYYYMMDDHH; the
lead time is in whole hours and, in UNIFORM mode, must be a multiple of 6.

workdir must be set to the path of a directory containing a prepared environment:
the pangu-runner.cfg configuration, the model assets and an analysis archive per date.

-v show version of the executable
`

func failed(err error) {
	log.Fatalf("%s\n\n%s\n", err, usage)
}

func syntaxInvalid() {
	failed(errors.New("Invalid arguments provided"))
}

func main() {

	showver := flag.Bool("v", false, "")
	modeF := flag.String("m", "HRES", "")
	outArgsFileF := flag.String("outargs", "", "")

	flag.Parse()

	if showver != nil && *showver {
		fmt.Printf("pangu-runner ver. %s\n", Version)
		return
	}

	var mode conf.LeadTimeMode

	if err := mode.FromString(*modeF); err != nil {
		failed(err)
	}

	args := flag.Args()
	if len(args) < 1 {
		syntaxInvalid()
	}

	var err error
	var dates *fileargs.FileArguments
	var cfgFile vpath.VirtualPath
	var wd vpath.VirtualPath

	absWd, err := filepath.Abs(args[0])
	if err != nil {
		log.Fatal(err.Error())
	}

	wd = vpath.Local(absWd)

	if len(args) == 1 {
		dates = readInputArgs(wd)
	} else {
		dates = datesFromArgs(args, wd)
	}

	cfgFile = vpath.Local(dates.CfgPath)

	if outArgsFileF != nil && *outArgsFileF != "" {
		writeOutargs(outArgsFileF, dates)
	}

	err = runner.Init(cfgFile, wd)
	if err != nil {
		log.Fatal(err.Error())
	}

	err = runner.Run(dates.Periods,
		wd, mode, os.Stdout, os.Stderr,
	)

	if err != nil {
		log.Fatal(err.Error())
	}

}

func datesFromArgs(args []string, wd vpath.VirtualPath) *fileargs.FileArguments {
	if len(args) < 3 {
		syntaxInvalid()
	}
	dates := &fileargs.FileArguments{
		Periods: []*fileargs.Period{},
		CfgPath: "",
	}
	startDate, err := time.Parse("2006010215", args[1])
	if err != nil {
		log.Fatal(usage + err.Error() + "\n")
	}
	leadHours, err := time.ParseDuration(args[2] + "h")
	if err != nil {
		log.Fatal(usage + err.Error() + "\n")
	}

	dates.Periods = append(dates.Periods, &fileargs.Period{
		Start:    startDate,
		Duration: leadHours,
	})

	dates.CfgPath = wd.Join("pangu-runner.cfg").Path
	return dates
}

func readInputArgs(wd vpath.VirtualPath) *fileargs.FileArguments {
	dates, err := runner.ReadTimes("inputs/arguments.txt")
	if err != nil {
		log.Fatal(err.Error() + "\n")
	}

	dates.CfgPath = wd.Join(dates.CfgPath).Path
	return dates
}

func writeOutargs(outArgsFileF *string, dates *fileargs.FileArguments) {
	outargs := *outArgsFileF

	_, err := os.Stat(outargs)
	fileargsExists := err == nil

	var buf lineBuf
	if !fileargsExists {
		buf.AddLine("pangu-runner.cfg")
	}

	for _, p := range dates.Periods {
		buf.AddLine(p.String())
	}

	if fileargsExists {
		err = buf.AppendTo(outargs)
	} else {
		err = buf.WriteTo(outargs)
	}

	if err != nil {
		failed(err)
	}

}

type lineBuf struct {
	buf bytes.Buffer
}

func (lines *lineBuf) AddLine(lineFormat string, arguments ...interface{}) {
	line := fmt.Sprintf(lineFormat, arguments...)
	lines.buf.WriteString(line)
	lines.buf.WriteRune('\n')
}

func (lines *lineBuf) WriteTo(filepath string) error {
	f, err := os.OpenFile(filepath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, fs.FileMode(0644))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(lines.buf.Bytes())
	lines.buf.Truncate(0)

	return err
}

func (lines *lineBuf) AppendTo(filepath string) error {
	f, err := os.OpenFile(filepath, os.O_APPEND|os.O_WRONLY, fs.FileMode(0644))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(lines.buf.Bytes())
	lines.buf.Truncate(0)

	return err
}
