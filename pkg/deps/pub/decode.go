package pub

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText decodes captured tool output. Output redirected on Windows
// shells is often UTF-16, so a UTF-16 byte order mark or invalid UTF-8
// selects UTF-16 (little endian unless the mark says otherwise).
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return decodeUTF16(data)
	case utf8.Valid(data):
		return string(data), nil
	default:
		return decodeUTF16(data)
	}
}

func decodeUTF16(data []byte) (string, error) {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// stripBanner drops the lines flutter prints before the JSON document.
// Text without a line starting with "{" is returned unchanged.
func stripBanner(text string) string {
	if strings.HasPrefix(text, "{") {
		return text
	}
	if i := strings.Index(text, "\n{"); i >= 0 {
		return text[i+1:]
	}
	return text
}
