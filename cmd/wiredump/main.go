package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bytewire/bytewire/codec"
	"github.com/bytewire/bytewire/frame"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to encoded stream (- for stdin)")
		framed      = flag.Bool("frame", false, "Treat input as a framed envelope")
		limit       = flag.Int("limit", frame.NoLimit, "Payload byte limit for framed input (-1 for none)")
		endian      = flag.String("endian", "little", "Payload endianness: little or big")
		intMode     = flag.String("ints", "varint", "Integer mode: varint or fixed")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: wiredump -in <file> [-frame] [-endian little|big] [-ints varint|fixed]")
		fmt.Fprintln(os.Stderr, "       wiredump -in <file> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		frame.SetLogger(logger)
		defer logger.Sync()
	}

	cfg, err := parseConfig(*endian, *intMode, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, *framed, *limit, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, *inFile, *framed, *limit, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseConfig(endian, intMode string, limit int) (codec.Config, error) {
	cfg := codec.DefaultConfig().WithLimit(limit)
	switch endian {
	case "little":
	case "big":
		cfg = cfg.WithBigEndian()
	default:
		return cfg, fmt.Errorf("unknown endianness %q", endian)
	}
	switch intMode {
	case "varint":
	case "fixed":
		cfg = cfg.WithFixedInts()
	default:
		return cfg, fmt.Errorf("unknown integer mode %q", intMode)
	}
	return cfg, nil
}

func readInput(inFile string) ([]byte, error) {
	if inFile == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(inFile)
}

func run(w io.Writer, inFile string, framed bool, limit int, cfg codec.Config) error {
	data, err := readInput(inFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	rep, err := buildReport(data, framed, limit, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Input: %s (%d bytes)\n", inFile, len(data))
	for _, line := range rep.summary {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nHex dump:\n%s\n", strings.Join(rep.hexLines, "\n"))
	fmt.Fprintf(w, "\nInteger walk (%s):\n%s\n", rep.walkLabel, strings.Join(rep.walkLines, "\n"))
	return nil
}

// report is the shared inspection output, rendered by both the plain and
// the interactive front ends.
type report struct {
	summary   []string
	hexLines  []string
	walkLabel string
	walkLines []string
	payload   []byte
}

func buildReport(data []byte, framed bool, limit int, cfg codec.Config) (*report, error) {
	rep := &report{payload: data}

	if framed {
		h, err := frame.ReadHeader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("frame header: %w", err)
		}
		payload, err := frame.Read(bytes.NewReader(data), limit)
		if err != nil {
			return nil, fmt.Errorf("frame payload: %w", err)
		}
		rep.payload = payload
		rep.summary = append(rep.summary,
			fmt.Sprintf("Frame: stored %d bytes, payload %d bytes", h.Length, len(payload)),
			fmt.Sprintf("  compressed: %v", h.Compressed()),
			fmt.Sprintf("  checksum:   %v", checksumLabel(h)),
		)
	}

	rep.hexLines = hexDump(rep.payload)
	rep.walkLabel = fmt.Sprintf("%s %s", cfg.Endian, cfg.IntMode)
	rep.walkLines = walkIntegers(rep.payload, cfg)
	return rep, nil
}

func checksumLabel(h frame.Header) string {
	if !h.HasChecksum() {
		return "none"
	}
	return fmt.Sprintf("blake3-128 %x (verified)", h.Checksum)
}

// hexDump renders 16 bytes per line with offset and printable-ASCII gutter.
func hexDump(data []byte) []string {
	if len(data) == 0 {
		return []string{"  (empty)"}
	}
	var lines []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		var hexCol, asciiCol strings.Builder
		for i, b := range row {
			if i == 8 {
				hexCol.WriteByte(' ')
			}
			fmt.Fprintf(&hexCol, "%02x ", b)
			if b >= 0x20 && b < 0x7F {
				asciiCol.WriteByte(b)
			} else {
				asciiCol.WriteByte('.')
			}
		}
		lines = append(lines, fmt.Sprintf("  %08x  %-49s |%s|", off, hexCol.String(), asciiCol.String()))
	}
	return lines
}

// walkIntegers decodes the payload as consecutive unsigned integers under
// cfg, annotating each with its offset and wire bytes. It stops at the
// first decode error, which for arbitrary data is expected rather than
// exceptional.
func walkIntegers(data []byte, cfg codec.Config) []string {
	if len(data) == 0 {
		return []string{"  (empty)"}
	}
	r := codec.NewSliceReader(data)
	d := codec.NewDecoder(r, cfg)

	var lines []string
	for r.Remaining() > 0 && len(lines) < 4096 {
		start := r.Offset()
		v, err := d.ReadU64()
		if err != nil {
			lines = append(lines, fmt.Sprintf("  %08x  stop: %v", start, err))
			break
		}
		raw := data[start:r.Offset()]
		signed := codec.Config{Endian: cfg.Endian, IntMode: cfg.IntMode, Limit: codec.NoLimit}
		sd := codec.NewDecoder(codec.NewSliceReader(raw), signed)
		note := fmt.Sprintf("u64 %d", v)
		if iv, err := sd.ReadI64(); err == nil && iv < 0 {
			note = fmt.Sprintf("u64 %d (i64 %d)", v, iv)
		}
		lines = append(lines, fmt.Sprintf("  %08x  % -28x %s", start, raw, note))
	}
	return lines
}
