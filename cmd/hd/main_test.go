package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	exiter := cli.OsExiter
	cli.OsExiter = func(c int) { code = c }
	t.Cleanup(func() { cli.OsExiter = exiter })

	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	if err := app.Run(append([]string{"hd"}, args...)); err != nil && code == 0 {
		code = 1
	}
	return out.String(), errOut.String(), code
}

func input(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.bin")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDumpDefault(t *testing.T) {
	path := input(t, "ABCD")
	out, _, code := runApp(t, path)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out, "0000  41 42 43 44 ") || !strings.Contains(out, "|ABCD            |") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDumpShortsBigEndian(t *testing.T) {
	path := input(t, "\x01\x02\x03\x04")
	out, _, code := runApp(t, "-hB", path)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out, "0000  0102 0304 ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDumpWideLongs(t *testing.T) {
	path := input(t, strings.Repeat("\x01\x02\x03\x04", 8))
	out, _, _ := runApp(t, "-w", "-W", path)
	if !strings.HasPrefix(out, "0000  04030201 04030201 ") || strings.Count(out, "\n") != 1 {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDumpHeadTailFlags(t *testing.T) {
	var data string
	for i := 0; i < 6; i++ {
		data += strings.Repeat(string(rune('a'+i)), 16)
	}
	path := input(t, data)
	out, _, code := runApp(t, "--head", "2", "-T", "0x2", path)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	var offs []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		offs = append(offs, strings.Fields(l)[0])
	}
	if got := strings.Join(offs, ","); got != "0000,0010,****,0040,0050" {
		t.Errorf("offsets %s", got)
	}
}

func TestInvalidHead(t *testing.T) {
	_, errOut, code := runApp(t, "--head", "0", input(t, "x"))
	if code != 1 || !strings.Contains(errOut, "Invalid --head option: 0") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestNoFiles(t *testing.T) {
	_, errOut, code := runApp(t)
	if code != 1 || !strings.Contains(errOut, "Usage:") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestMissingSingleFile(t *testing.T) {
	_, errOut, code := runApp(t, filepath.Join(t.TempDir(), "nope"))
	if code != 1 || !strings.Contains(errOut, "Error stat()'ing") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestOutFileCompressed(t *testing.T) {
	path := input(t, "hello")
	outPath := filepath.Join(t.TempDir(), "dump.zst")
	stdout, _, code := runApp(t, "--out", outPath, path)
	if code != 0 || stdout != "" {
		t.Fatalf("code %d, stdout %q", code, stdout)
	}
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(dec); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !strings.Contains(buf.String(), "|hello           |") {
		t.Errorf("decompressed output %q", buf.String())
	}
}

func TestFileNamedLogsWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	if err := os.WriteFile(path, []byte("log"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, code := runApp(t, path)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out, "0000  6C 6F 67 ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLogsCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "hd.db")
	if _, _, code := runApp(t, "--log-db", db, input(t, "abc")); code != 0 {
		t.Fatalf("dump exit code %d", code)
	}
	out, _, code := runApp(t, "--log-db", db, "logs", "-n", "5")
	if code != 0 {
		t.Fatalf("logs exit code %d", code)
	}
	if !strings.Contains(out, "dump finished") {
		t.Errorf("log history %q", out)
	}
}
