package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runForTest(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original.txt")
	packed := filepath.Join(dir, "packed.bin")
	unpacked := filepath.Join(dir, "unpacked.txt")
	input := []byte(strings.Repeat("she sells sea shells by the sea shore\n", 20))
	writeFile(t, original, input)

	for _, flags := range [][]string{nil, {"-stream"}, {"-scan"}, {"-stream", "-scan"}} {
		t.Run(strings.Join(flags, " "), func(t *testing.T) {
			args := append(append([]string{}, flags...), original, packed)
			if code, _, stderr := runForTest(args...); code != exitOK {
				t.Fatalf("encode: exit %d, stderr %q", code, stderr)
			}

			args = append(append([]string{}, flags...), packed, unpacked)
			if code, _, stderr := runForTest(args...); code != exitOK {
				t.Fatalf("decode: exit %d, stderr %q", code, stderr)
			}

			output, err := os.ReadFile(unpacked)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(output, input) {
				t.Errorf("round trip mismatch")
			}
		})
	}
}

func TestRun_Stdout(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original.txt")
	writeFile(t, original, []byte("aabbbcccc"))

	code, stdout, stderr := runForTest("-dump", original, "-")
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if !strings.HasPrefix(stdout, "\x80\xf0") {
		t.Errorf("stdout does not start with the magic number: %q", stdout)
	}
	if !strings.Contains(stderr, "Encode(99) = \"0\"") {
		t.Errorf("expected a code table dump on stderr, got %q", stderr)
	}
}

func TestRun_Usage(t *testing.T) {
	for _, args := range [][]string{{}, {"one"}, {"one", "two", "three"}, {"-bogus", "a", "b"}} {
		code, _, stderr := runForTest(args...)
		if code != exitUsage {
			t.Errorf("%q: expected exit %d, got %d", args, exitUsage, code)
		}
		if !strings.Contains(stderr, "Usage: packman") {
			t.Errorf("%q: expected usage message, got %q", args, stderr)
		}
	}
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	corrupt := filepath.Join(dir, "corrupt")
	output := filepath.Join(dir, "out")
	writeFile(t, empty, nil)
	writeFile(t, corrupt, []byte{0x80, 0xf0, 0x07})

	type testRow struct {
		name   string
		input  string
		reason string
	}

	testData := [...]testRow{
		{"missing", filepath.Join(dir, "missing"), "input cannot be read"},
		{"empty", empty, "input has no contents"},
		{"corrupt", corrupt, "malformed header"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			code, _, stderr := runForTest(row.input, output)
			if code != exitFailure {
				t.Errorf("expected exit %d, got %d", exitFailure, code)
			}
			if !strings.Contains(stderr, "'"+row.input+"'") || !strings.Contains(stderr, row.reason) {
				t.Errorf("expected diagnostic naming %q with %q, got %q", row.input, row.reason, stderr)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range entries {
				if e.Name() == "out" || strings.HasSuffix(e.Name(), ".tmp") {
					t.Errorf("failed run left %s behind", e.Name())
				}
			}
		})
	}
}

func TestRun_ForceEncode(t *testing.T) {
	dir := t.TempDir()
	magic := filepath.Join(dir, "magic")
	packed := filepath.Join(dir, "packed")
	writeFile(t, magic, []byte{0x80, 0xf0, 0x07})

	if code, _, stderr := runForTest("-force-encode", magic, packed); code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	code, stdout, stderr := runForTest(packed, "-")
	if code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
	if stdout != "\x80\xf0\x07" {
		t.Errorf("expected the original bytes back, got %q", stdout)
	}
}
