// Command beanwire converts between the beanstalkd wire format and JSON.
//
//	beanwire decode [-r] [-e engine] [-t] [file]
//	beanwire encode [-r] [-p] identifier [arg...]
//	beanwire encode [-r] -j < views.json
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/karagenc/beanproto"
	"github.com/karagenc/beanproto/parser"
	"github.com/spf13/pflag"
)

const usage = `Usage:
  beanwire decode [flags] [file]          decode wire bytes from file or stdin
  beanwire encode [flags] identifier [arg...]
  beanwire encode [flags] --json          encode JSON views read from stdin

Flags:
`

type options struct {
	replies bool
	debug   bool
	engine  string
}

func (o *options) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&o.replies, "replies", "r", false, "Treat messages as replies instead of commands")
	flags.BoolVarP(&o.debug, "debug", "d", false, "Print debug output to stderr")
	flags.StringVarP(&o.engine, "engine", "e", "fast", "JSON engine: fast, sonic, go-json or std")
}

func (o *options) direction() parser.Direction {
	if o.replies {
		return parser.DirectionReply
	}
	return parser.DirectionCommand
}

func (o *options) protocol() (*beanproto.Protocol, error) {
	config := new(beanproto.Config)
	if o.debug {
		config.Debugger = beanproto.NewPrintDebugger()
	}
	return beanproto.NewProtocol(config)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "decode":
		err = runDecode(args)
	case "encode":
		err = runEncode(args)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	return flags
}
