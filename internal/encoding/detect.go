package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Detect.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO8859_9   = "ISO-8859-9"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decoded is a UTF-8 view of an uploaded file.
type Decoded struct {
	io.Reader
	// Charset is the encoding the input was detected as.
	Charset string
}

// Detect sniffs the first bytes of r and returns a reader producing UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped, UTF-16 LE/BE is decoded)
//  2. valid UTF-8 is passed through
//  3. chardet heuristics
//  4. Windows-1252 as a last resort, which is what most bank exports use
func Detect(r io.Reader) (*Decoded, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return &Decoded{Reader: br, Charset: UTF8}, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), UTF16LE), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), UTF16BE), nil
	case validUTF8Prefix(buf, len(buf) == peekSize):
		return &Decoded{Reader: br, Charset: UTF8}, nil
	}

	detector := chardet.NewTextDetector()

	if result, err := detector.DetectBest(buf); err == nil {
		switch result.Charset {
		case "UTF-8":
			return &Decoded{Reader: br, Charset: UTF8}, nil
		case "ISO-8859-1", "windows-1252":
			return decode(br, charmap.Windows1252, Windows1252), nil
		case "ISO-8859-9":
			return decode(br, charmap.ISO8859_9, ISO8859_9), nil
		}
	}

	return decode(br, charmap.Windows1252, Windows1252), nil
}

func decode(r io.Reader, enc encoding.Encoding, name string) *Decoded {
	return &Decoded{Reader: transform.NewReader(r, enc.NewDecoder()), Charset: name}
}

// validUTF8Prefix reports whether buf is UTF-8. When buf was cut at the peek
// limit, a trailing incomplete rune is tolerated.
func validUTF8Prefix(buf []byte, truncated bool) bool {
	if utf8.Valid(buf) {
		return true
	}

	if !truncated {
		return false
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.Valid(buf[:len(buf)-i]) {
			return true
		}
	}

	return false
}
