package subtitle

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingAuto detects UTF-8/UTF-16 by BOM and falls back to GB18030 when
// the bytes are not valid UTF-8.
const EncodingAuto = "auto"

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Decode converts raw cue file bytes to a UTF-8 string. name is either
// EncodingAuto (or empty) or any WHATWG encoding label such as "gbk",
// "gb18030", "big5" or "utf-16le".
func Decode(data []byte, name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == EncodingAuto {
		return decodeAuto(data)
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode as %s: %w", name, err)
	}
	return string(bytes.TrimPrefix(out, utf8BOM)), nil
}

func decodeAuto(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, utf16LEBOM), bytes.HasPrefix(data, utf16BEBOM):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("decode utf-16: %w", err)
		}
		return string(out), nil
	case utf8.Valid(data):
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	// Subtitles authored on Chinese Windows locales are usually GBK; GB18030
	// is a superset of it.
	out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("text is neither utf-8 nor gb18030: %w", err)
	}
	return string(out), nil
}
