package huffman

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/icza/bitio"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("packman")

// Mode selects what Process does with its input.
type Mode byte

const (
	// ModeAuto decodes input that starts with the magic number and
	// encodes everything else.
	ModeAuto Mode = iota

	// ModeEncode always encodes.
	ModeEncode

	// ModeDecode always decodes.
	ModeDecode
)

var modeNames = [...]string{"auto", "encode", "decode"}

// String returns the name of the Mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

var _ fmt.Stringer = Mode(0)

// Options tunes a single Compress, Decompress or Process run.
type Options struct {
	// Mode is consulted only by Process.
	Mode Mode

	// Streaming moves payload bits through a bit stream instead of a
	// materialized slice of bits and packed words.  The output is
	// byte-for-byte identical either way.
	Streaming bool

	// ScanDecode decodes by searching the CodeTable after every bit
	// instead of walking the tree.
	ScanDecode bool

	// Table, if non-nil, receives the CodeTable built during the run.
	Table **CodeTable
}

// DetectMode peeks at the first two bytes of r and reports ModeDecode if
// they hold the magic number, ModeEncode otherwise.  Input with no bytes at
// all yields ErrEmptyInput.
func DetectMode(r *bufio.Reader) (Mode, error) {
	head, err := r.Peek(magicSize)
	switch {
	case len(head) == 0 && (err == nil || errors.Is(err, io.EOF)):
		return ModeAuto, ErrEmptyInput
	case len(head) < magicSize && !errors.Is(err, io.EOF):
		return ModeAuto, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	case HasMagic(head):
		return ModeDecode, nil
	default:
		return ModeEncode, nil
	}
}

// Process encodes or decodes in to out, as selected by opts.Mode, and
// returns the Mode actually used.
func Process(in io.ReadSeeker, out io.Writer, opts Options) (Mode, error) {
	mode := opts.Mode
	if mode == ModeAuto {
		var err error
		mode, err = DetectMode(bufio.NewReaderSize(in, 16))
		if err != nil {
			return ModeAuto, err
		}
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return ModeAuto, fmt.Errorf("%w: %v", ErrInputNotFound, err)
		}
		log.Debugf("detected mode %v", mode)
	}

	switch mode {
	case ModeEncode:
		return mode, Compress(in, out, opts)
	case ModeDecode:
		return mode, Decompress(in, out, opts)
	default:
		return mode, fmt.Errorf("unknown mode %v", mode)
	}
}

// Compress reads in twice, once to count symbol frequencies and once to
// encode, and writes the compressed stream to out.
func Compress(in io.ReadSeeker, out io.Writer, opts Options) error {
	freqs, total, err := CountFrequencies(in)
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrEmptyInput
	}
	log.Debugf("scanned %d bytes, %d distinct symbols", total, freqs.Distinct())

	root, err := BuildTree(NewNodeHeap(freqs))
	if err != nil {
		return err
	}

	table := NewCodeTable(root)
	if opts.Table != nil {
		*opts.Table = table
	}
	log.Debugf("built tree with %d leaves, code lengths %d .. %d", root.Leaves(), table.MinSize(), table.MaxSize())

	bitCount64 := table.BitCount(freqs)
	if bitCount64 > math.MaxUint32 {
		return fmt.Errorf("%w: %d bits", ErrTooLarge, bitCount64)
	}
	bitCount := uint32(bitCount64)
	log.Debugf("payload is %d bits in %d words", bitCount, WordsNeeded(bitCount))

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	bw := bufio.NewWriter(out)
	if err := writeHeader(bw, root, bitCount); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	br := bufio.NewReader(in)
	if opts.Streaming {
		err = encodeStream(br, bw, table, bitCount)
	} else {
		err = encodeWords(br, bw, table, bitCount)
	}
	if err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// encodeWords collects every code bit, packs the bits into words and writes
// the words.
func encodeWords(br *bufio.Reader, w io.Writer, table *CodeTable, bitCount uint32) error {
	bits := make([]byte, 0, bitCount)
	err := forEachByte(br, func(ch byte) error {
		hc, found := table.Encode(Symbol(ch))
		if !found {
			return fmt.Errorf("%w: input changed between passes", ErrInputNotFound)
		}
		bits = AppendCode(bits, hc)
		return nil
	})
	if err != nil {
		return err
	}
	if uint64(len(bits)) != uint64(bitCount) {
		return fmt.Errorf("%w: input changed between passes", ErrInputNotFound)
	}

	if err := writeWords(w, Pack(bits, bitCount)); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// encodeStream writes each code straight to a bit writer, then pads with
// zero bits to the next word boundary.
func encodeStream(br *bufio.Reader, w io.Writer, table *CodeTable, bitCount uint32) error {
	bw := bitio.NewWriter(w)
	var written uint64
	err := forEachByte(br, func(ch byte) error {
		hc, found := table.Encode(Symbol(ch))
		if !found {
			return fmt.Errorf("%w: input changed between passes", ErrInputNotFound)
		}
		if err := bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		written += uint64(hc.Size)
		return nil
	})
	if err != nil {
		return err
	}
	if written != uint64(bitCount) {
		return fmt.Errorf("%w: input changed between passes", ErrInputNotFound)
	}

	if pad := uint8(written % bitsPerWord); pad != 0 {
		if err := bw.WriteBits(0, bitsPerWord-pad); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

func forEachByte(br *bufio.Reader, fn func(byte) error) error {
	for {
		ch, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInputNotFound, err)
		}
		if err := fn(ch); err != nil {
			return err
		}
	}
}

// Decompress reads a compressed stream from in and writes the original bytes
// to out.
func Decompress(in io.Reader, out io.Writer, opts Options) error {
	br := bufio.NewReader(in)
	root, bitCount, err := readHeader(br)
	if err != nil {
		return err
	}

	table := NewCodeTable(root)
	if opts.Table != nil {
		*opts.Table = table
	}
	log.Debugf("read tree with %d leaves, payload is %d bits", root.Leaves(), bitCount)

	var m Matcher
	if opts.ScanDecode {
		m = NewScanDecoder(table)
	} else {
		m = NewDecoder(root)
	}

	bw := bufio.NewWriter(out)
	if opts.Streaming {
		bits := bitio.NewReader(io.LimitReader(br, int64(WordsNeeded(bitCount))*4))
		err = DecodeStream(m, bits, bitCount, bw)
		if err == nil {
			err = skipPadding(bits, bitCount)
		}
	} else {
		var words []uint32
		words, err = readWords(br, WordsNeeded(bitCount))
		if err == nil {
			err = DecodeBits(m, Unpack(words, bitCount), bw)
		}
	}
	if err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// skipPadding consumes the zero bits that fill out the last payload word.
func skipPadding(r *bitio.Reader, bitCount uint32) error {
	pad := uint64(WordsNeeded(bitCount))*bitsPerWord - uint64(bitCount)
	if pad == 0 {
		return nil
	}
	if _, err := r.ReadBits(uint8(pad)); err != nil {
		return fmt.Errorf("%w: payload padding: %v", ErrTruncatedPayload, err)
	}
	return nil
}
