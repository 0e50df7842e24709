package ocr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// TesseractOCR shells out to the tesseract binary to read handwritten
// worksheet answers. Defaults to Swedish since that is what the kids
// write in; pass "swe+eng" for mixed worksheets.
type TesseractOCR struct {
	Lang    string
	Timeout time.Duration
}

func NewTesseractOCR(lang string) *TesseractOCR {
	if lang == "" {
		lang = "swe"
	}
	return &TesseractOCR{Lang: lang, Timeout: 20 * time.Second}
}

func (t *TesseractOCR) Extract(ctx context.Context, r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "worksheet-*.img")
	if err != nil {
		return "", err
	}
	defer func() { f.Close(); os.Remove(f.Name()) }()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return t.exec(ctx, f.Name())
}

func (t *TesseractOCR) ExtractPath(ctx context.Context, path string) (string, error) {
	return t.exec(ctx, path)
}

func (t *TesseractOCR) exec(ctx context.Context, inPath string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", errors.New("tesseract not found in PATH")
	}
	// PSM 7: treat the image as a single text line. Worksheet answer
	// boxes are cropped client-side, so one line is the common case.
	args := []string{inPath, "stdout", "--psm", "7", "-l", t.Lang}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, "tesseract", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.New(strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}
