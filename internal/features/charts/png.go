package charts

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"unicode/utf8"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// IHDR is always the first chunk and always 13 bytes of data.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

type pngText struct {
	key   string
	value string
}

// encodePNG encodes img and inserts the text entries right after IHDR.
// Latin-1 values go into tEXt chunks, anything else into uncompressed iTXt.
func encodePNG(img image.Image, texts []pngText) ([]byte, error) {
	var raw bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&raw, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	data := raw.Bytes()
	if len(data) < ihdrEnd || !bytes.Equal(data[:8], pngSignature) {
		return nil, errors.New("encoder produced a malformed png")
	}

	var out bytes.Buffer
	out.Grow(len(data) + 64*len(texts))
	out.Write(data[:ihdrEnd])
	for _, t := range texts {
		if isLatin1(t.value) {
			writeChunk(&out, "tEXt", append([]byte(t.key+"\x00"), utf8ToLatin1(t.value)...))
		} else {
			// keyword, null, compression flag, method, empty language, null, empty translated keyword, null
			writeChunk(&out, "iTXt", []byte(t.key+"\x00\x00\x00\x00\x00"+t.value))
		}
	}
	out.Write(data[ihdrEnd:])
	return out.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, typ string, data []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(data)))
	copy(hdr[4:], typ)
	w.Write(hdr[:])
	w.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	w.Write(sum[:])
}

func isLatin1(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError || r > 0xff {
			return false
		}
	}
	return true
}

// readPNGText returns the tEXt and uncompressed iTXt entries of a PNG stream.
func readPNGText(r io.Reader) (map[string]string, error) {
	sig := make([]byte, 8)
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, pngSignature) {
		return nil, errors.New("not a png stream")
	}

	texts := make(map[string]string)
	var hdr [8]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("read chunk header: %w", err)
		}
		n := binary.BigEndian.Uint32(hdr[:4])
		typ := string(hdr[4:])
		body := make([]byte, int(n)+4)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("read %s chunk: %w", typ, err)
		}
		data := body[:n]

		switch typ {
		case "tEXt":
			if k, v, ok := bytes.Cut(data, []byte{0}); ok {
				texts[string(k)] = latin1ToUTF8(v)
			}
		case "iTXt":
			k, rest, ok := bytes.Cut(data, []byte{0})
			if !ok || len(rest) < 2 || rest[0] != 0 {
				continue
			}
			rest = rest[2:]
			if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
				continue
			}
			if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
				continue
			}
			texts[string(k)] = string(rest)
		case "IEND":
			return texts, nil
		}
	}
}

func utf8ToLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}

func latin1ToUTF8(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
