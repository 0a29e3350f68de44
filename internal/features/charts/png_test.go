package charts

import (
	"bytes"
	"image/png"
	"testing"
)

func TestEncodePNGText(t *testing.T) {
	img := whiteImage(4, 3)
	data, err := encodePNG(img, []pngText{
		{key: "Title", value: "Sales Over Time"},
		{key: "Author", value: "Zoë"},
		{key: "Description", value: "売上"},
	})
	if err != nil {
		t.Fatalf("encodePNG: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode rejected output: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("decoded bounds = %v", decoded.Bounds())
	}

	texts, err := readPNGText(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readPNGText: %v", err)
	}
	want := map[string]string{
		"Title":       "Sales Over Time",
		"Author":      "Zoë",
		"Description": "売上",
	}
	for k, v := range want {
		if texts[k] != v {
			t.Errorf("text[%q] = %q, want %q", k, texts[k], v)
		}
	}
}

func TestReadPNGTextRejectsGarbage(t *testing.T) {
	if _, err := readPNGText(bytes.NewReader([]byte("GIF89a.."))); err == nil {
		t.Fatal("expected error for non-png input")
	}
}
