// main.go -
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
// Copyright (C) 2022  Ali AslRousta <aslrousta@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aslrousta/mex/config"
)

var (
	output     = flag.String("output", "", "output file (default: stdout)")
	help       = flag.Bool("help", false, "print this help information")
	configFile = flag.String("config", "", "configuration file, .toml or .yaml (default: $MEX_CONFIG)")
	cacheDir   = flag.String("cache-dir", "", "cache directory for expanded documents")
	outDir     = flag.String("outdir", "", "expand every input file into this directory")
	jobs       = flag.Int("jobs", 0, "number of documents expanded in parallel with -outdir")
	watch      = flag.Bool("watch", false, "expand the input file again whenever it changes")
)

func init() {
	flag.StringVar(output, "o", "", "shorthand for -output")
	flag.BoolVar(help, "h", false, "shorthand for -help")
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "MeX - A TeX-inspired macro preprocessor")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "usage: mex [options] [<input>]")
	fmt.Fprintln(out, "       mex [options] -outdir <dir> <input>...")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "options:")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("mex: ")
	flag.Usage = usage
	flag.Parse()
	if *help {
		usage()
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	e, err := newExpander(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		err := e.Close()
		if err != nil {
			log.Println(err)
		}
	}()

	switch {
	case *outDir != "":
		err = runBatch(e, flag.Args(), *outDir, cfg.Jobs)
	case flag.NArg() > 1:
		log.Println("more than one input file given, use -outdir")
		usage()
	case *watch:
		if flag.NArg() != 1 || *output == "" {
			log.Fatal("-watch needs an input file and -output")
		}
		err = e.expandFile(flag.Arg(0), *output)
		if err != nil {
			log.Println(err)
		}
		err = watchInput(e, flag.Arg(0), *output)
	default:
		err = e.expandFile(flag.Arg(0), *output)
	}
	if err != nil {
		e.Close()
		log.Fatal(err)
	}
}

// loadConfig reads the configuration file, if any, and applies the
// command line settings on top of it.
func loadConfig() (*config.Config, error) {
	fileName := *configFile
	if fileName == "" {
		fileName = os.Getenv("MEX_CONFIG")
	}

	cfg := config.Default()
	if fileName != "" {
		var err error
		cfg, err = config.Load(fileName)
		if err != nil {
			return nil, err
		}
	}

	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}
	if *jobs > 0 {
		cfg.Jobs = *jobs
	}
	return cfg, cfg.Validate()
}
