package csv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// sniffBytes is how much of the input is inspected to guess the encoding.
const sniffBytes = 10000

// resolveEncoding returns the decoder for name, or a detected one when name
// is empty. Detection honors a BOM, accepts valid UTF-8, and otherwise falls
// back to windows-1252.
func resolveEncoding(br *bufio.Reader, name string) (encoding.Encoding, string, error) {
	if name != "" {
		enc, err := lookupEncoding(name)
		if err != nil {
			return nil, "", err
		}
		return enc, name, nil
	}

	peek, err := br.Peek(sniffBytes)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", fmt.Errorf("sniff encoding: %w", err)
	}
	enc, detected, _ := charset.DetermineEncoding(peek, "text/csv")
	return enc, detected, nil
}

// lookupEncoding accepts WHATWG labels ("utf-8", "latin1"), IANA names
// ("ISO-8859-1") and dashless spellings ("latin-1", "utf_8").
func lookupEncoding(name string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc, nil
	}
	squashed := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(name))
	if enc, err := htmlindex.Get(squashed); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}
