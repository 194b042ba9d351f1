// Command packman compresses a file with Huffman coding, or decompresses a
// file that packman compressed earlier.  Which one happens is decided by the
// first two bytes of the input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	huffman "github.com/dtregea/File-Encoder-Decoder"
	"github.com/dtregea/File-Encoder-Decoder/internal/atomicfile"
)

var log = logging.MustGetLogger("packman/cli")

const progName = "packman"
const usageMessageRaw = `
Usage: packman [OPTIONS] INPUT-FILE OUTPUT-FILE

If INPUT-FILE begins with the packman magic number it is decoded, otherwise
it is encoded.  An OUTPUT-FILE of "-" writes to standard output.

Options:
  --debug, -d
	Log every stage of the run to standard error.
  --stream
	Move payload bits through a bit stream instead of an in-memory
	bit array.
  --scan
	Decode by searching the code table after every bit.
  --force-encode
	Encode even if INPUT-FILE begins with the magic number.
  --dump
	Write the code table to standard error when done.
`

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 64
)

type usageError struct {
	detail string
}

func (e usageError) Error() string {
	return e.detail
}

type config struct {
	debug       bool
	dump        bool
	forceEncode bool
	opts        huffman.Options
	input       string
	output      string
}

func parseArgs(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.debug, "debug", false, "")
	fs.BoolVar(&cfg.debug, "d", false, "")
	fs.BoolVar(&cfg.opts.Streaming, "stream", false, "")
	fs.BoolVar(&cfg.opts.ScanDecode, "scan", false, "")
	fs.BoolVar(&cfg.forceEncode, "force-encode", false, "")
	fs.BoolVar(&cfg.dump, "dump", false, "")
	if err := fs.Parse(args); err != nil {
		return cfg, usageError{err.Error()}
	}
	if fs.NArg() != 2 {
		return cfg, usageError{fmt.Sprintf("expected 2 arguments, got %d", fs.NArg())}
	}
	cfg.input, cfg.output = fs.Arg(0), fs.Arg(1)
	if cfg.forceEncode {
		cfg.opts.Mode = huffman.ModeEncode
	}
	return cfg, nil
}

func setupLogging(stderr io.Writer, debug bool) {
	backend := logging.NewLogBackend(stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{module} %{level:.4s} %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.WARNING, "")
	}
	logging.SetBackend(leveled)
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args)
	if err != nil {
		template := strings.TrimLeft(usageMessageRaw, "\n")
		fmt.Fprintf(stderr, "%s: %v\n%s", progName, err, template)
		return exitUsage
	}
	setupLogging(stderr, cfg.debug)

	var table *huffman.CodeTable
	cfg.opts.Table = &table

	mode, err := process(cfg, stdout)
	if err != nil {
		log.Debugf("run failed: %v", err)
		fmt.Fprintf(stderr, "%s: '%s' - %v\n", progName, cfg.input, err)
		return exitFailure
	}
	log.Infof("%s: %s -> %s", mode, cfg.input, cfg.output)

	if cfg.dump && table != nil {
		_, _ = table.Dump(stderr)
	}
	return exitOK
}

func process(cfg config, stdout io.Writer) (huffman.Mode, error) {
	in, err := os.Open(cfg.input)
	if err != nil {
		return huffman.ModeAuto, fmt.Errorf("%w: %v", huffman.ErrInputNotFound, err)
	}
	defer in.Close()

	if cfg.output == "-" {
		return huffman.Process(in, stdout, cfg.opts)
	}

	out, err := atomicfile.Create(cfg.output, 0o644)
	if err != nil {
		return huffman.ModeAuto, fmt.Errorf("%w: %v", huffman.ErrOutputWrite, err)
	}
	defer func() {
		if err := out.Abort(); err != nil {
			log.Warningf("removing temporary output: %v", err)
		}
	}()

	mode, err := huffman.Process(in, out, cfg.opts)
	if err != nil {
		return mode, err
	}
	if err := out.Commit(); err != nil {
		return mode, fmt.Errorf("%w: %v", huffman.ErrOutputWrite, err)
	}
	return mode, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
