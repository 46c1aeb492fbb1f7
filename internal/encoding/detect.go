package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding an import file was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 with BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

// sampleSize is how much of a file detection looks at.
const sampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// chardetNames maps the detector's charset names onto the ones we decode.
// Latin-1 is read as windows-1252, its superset.
var chardetNames = map[string]Charset{
	"UTF-8":        UTF8,
	"UTF-16LE":     UTF16LE,
	"UTF-16BE":     UTF16BE,
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-9":   ISO88599,
}

// Decode wraps r in a reader that yields UTF-8 and reports the charset the
// input was read as. A leading byte order mark is consumed.
func Decode(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sampleSize)

	sample, err := br.Peek(sampleSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	cs := detect(sample, len(sample) == sampleSize)
	if cs == UTF8 {
		return br, cs, nil
	}

	return transform.NewReader(br, cs.encoding().NewDecoder()), cs, nil
}

// detect guesses the charset of sample. Bank exports that are neither valid
// UTF-8 nor recognised fall back to windows-1252.
func detect(sample []byte, truncated bool) Charset {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(sample, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(sample, bomUTF16BE):
		return UTF16BE
	case validUTF8(sample, truncated):
		return UTF8
	}

	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return Windows1252
	}

	if cs, ok := chardetNames[res.Charset]; ok {
		return cs
	}

	return Windows1252
}

// validUTF8 tolerates a multi-byte rune cut in half at the end of a truncated
// sample.
func validUTF8(sample []byte, truncated bool) bool {
	if utf8.Valid(sample) {
		return true
	}

	if !truncated {
		return false
	}

	for i := 1; i < utf8.UTFMax && i <= len(sample); i++ {
		tail := sample[len(sample)-i:]
		if utf8.RuneStart(tail[0]) {
			return !utf8.FullRune(tail) && utf8.Valid(sample[:len(sample)-i])
		}
	}

	return false
}

func (c Charset) encoding() xencoding.Encoding {
	switch c {
	case UTF8BOM:
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Windows1252:
		return charmap.Windows1252
	case ISO88599:
		return charmap.ISO8859_9
	}

	return xencoding.Nop
}
