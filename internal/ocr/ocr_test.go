package ocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

const idCardText = `Name: John Doe
Age: 27
Gender: Male
Phone: 9876543210
Email: johndoe@gmail.com
Address: 42 Park Street, Indiranagar
Date of Birth: 05/10/1998
`

// fakeRunner returns canned output per command name and records calls.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
	// onRun lets a test create side-effect files (rasterized pages).
	onRun func(name string, args []string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	if f.onRun != nil {
		f.onRun(name, args)
	}
	if err, ok := f.errs[name]; ok && err != nil {
		return nil, []byte("boom"), err
	}
	return []byte(f.outputs[name]), nil, nil
}

func testExtractor(r Runner) *Extractor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewExtractor(Config{}, logger)
	e.runner = r
	return e
}

func TestExtractImage(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{"tesseract": idCardText}}
	e := testExtractor(fake)

	res, err := e.Extract(context.Background(), "scan.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "image-ocr" {
		t.Errorf("method = %q, want image-ocr", res.Method)
	}
	if res.SourceType != "IMAGE" {
		t.Errorf("source type = %q, want IMAGE", res.SourceType)
	}
	if res.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Pages)
	}
	if res.Language != "en" {
		t.Errorf("language = %q, want en", res.Language)
	}
	if !strings.Contains(res.RawText, "John Doe") {
		t.Errorf("raw text lost content: %q", res.RawText)
	}
	// labels, date shape, contact hints and length all present
	if res.AvgConfidence < 0.9 {
		t.Errorf("confidence = %v, want >= 0.9 for a clean scan", res.AvgConfidence)
	}
}

func TestExtractImageTSVBlend(t *testing.T) {
	// Second tesseract invocation asks for tsv; distinguish by last arg.
	tsv := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
		"5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t80\tName:\n" +
		"5\t1\t1\t1\t1\t2\t12\t0\t10\t10\t60\tJohn\n"
	fake := &fakeRunner{outputs: map[string]string{"tesseract": idCardText}}
	fake.onRun = func(name string, args []string) {
		if name == "tesseract" && args[len(args)-1] == "tsv" {
			fake.outputs["tesseract"] = tsv
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewExtractor(Config{EnableTSVConfidence: true}, logger)
	e.runner = fake

	res, err := e.Extract(context.Background(), "scan.jpg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// TSV mean is 0.7; blended 0.7*0.7 + 0.3*heuristic keeps it below a
	// pure heuristic read of the same text.
	if res.AvgConfidence <= 0.5 || res.AvgConfidence >= 0.9 {
		t.Errorf("blended confidence = %v, want in (0.5, 0.9)", res.AvgConfidence)
	}
}

func TestExtractPDFTextLayer(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"pdftotext": idCardText + "\f" + "Page two filler text for the layout pass",
	}}
	e := testExtractor(fake)

	res, err := e.Extract(context.Background(), "doc.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "pdf-text" {
		t.Errorf("method = %q, want pdf-text", res.Method)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	if res.AvgConfidence != embeddedTextConfidence {
		t.Errorf("confidence = %v, want %v", res.AvgConfidence, embeddedTextConfidence)
	}
	for _, call := range fake.calls {
		if strings.HasPrefix(call, "tesseract") {
			t.Errorf("tesseract invoked despite usable text layer: %q", call)
		}
	}
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	// Empty text layer forces rasterization; fake pdftoppm writes pages.
	fake := &fakeRunner{outputs: map[string]string{
		"pdftotext": "  ",
		"tesseract": idCardText,
	}}
	fake.onRun = func(name string, args []string) {
		if name != "pdftoppm" {
			return
		}
		prefix := args[len(args)-1]
		for i := 1; i <= 2; i++ {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o644); err != nil {
				panic(err)
			}
		}
	}
	e := testExtractor(fake)

	res, err := e.Extract(context.Background(), "scan.pdf")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "pdf-ocr" {
		t.Errorf("method = %q, want pdf-ocr", res.Method)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d, want 2", res.Pages)
	}
	if !strings.Contains(res.RawText, "\f") {
		t.Error("expected a page break marker between OCR'd pages")
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := testExtractor(&fakeRunner{})
	if _, err := e.Extract(context.Background(), "notes.docx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestHeuristicConfidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float32
		max  float32
	}{
		{"rich identity document", idCardText, 0.9, 1.0},
		{"garbled noise", "x7!! qq zz ##", 0.0, 0.35},
		{"labels only", "Name Age Gender", 0.4, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heuristicConfidence(tt.text)
			if got < tt.min || got > tt.max {
				t.Errorf("heuristicConfidence(%q) = %v, want in [%v, %v]", tt.text, got, tt.min, tt.max)
			}
		})
	}
}
