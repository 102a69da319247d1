package nsapi

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// DecodeError reports a document that is malformed or does not match the
// schema it was decoded against. The core never attempts partial recovery.
type DecodeError struct {
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	// The API has historically served ISO-8859-1 documents.
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// Decode decodes a complete document into T.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := newDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return v, &DecodeError{Kind: fmt.Sprintf("%T", v), Err: err}
	}
	return v, nil
}

// DecodeRegion decodes a live REGION document.
func DecodeRegion(data []byte) (*Region, error) {
	r, err := Decode[Region](data)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeNation decodes a NATION document.
func DecodeNation(data []byte) (*Nation, error) {
	n, err := Decode[Nation](data)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// DecodeWorld decodes a WORLD document.
func DecodeWorld(data []byte) (*World, error) {
	w, err := Decode[World](data)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// ScanDump reads a REGIONS document from r and returns the first region whose
// normalized name matches name. Regions are decoded one at a time so the full
// dump is never held in memory. found is false when no record matches.
func ScanDump(r io.Reader, name string) (region *Region, found bool, err error) {
	target := Normalize(name)
	d := newDecoder(r)
	sawRoot := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			if !sawRoot {
				return nil, false, &DecodeError{Kind: "nsapi.Dump", Err: io.ErrUnexpectedEOF}
			}
			return nil, false, nil
		}
		if err != nil {
			return nil, false, &DecodeError{Kind: "nsapi.Dump", Err: err}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if start.Name.Local != "REGIONS" {
				return nil, false, &DecodeError{
					Kind: "nsapi.Dump",
					Err:  fmt.Errorf("expected element type <REGIONS> but have <%s>", start.Name.Local),
				}
			}
			sawRoot = true
			continue
		}
		if start.Name.Local != "REGION" {
			if err := d.Skip(); err != nil {
				return nil, false, &DecodeError{Kind: "nsapi.Dump", Err: err}
			}
			continue
		}
		var rec Region
		if err := d.DecodeElement(&rec, &start); err != nil {
			return nil, false, &DecodeError{Kind: "nsapi.Region", Err: err}
		}
		if rec.Name() == target {
			return &rec, true, nil
		}
	}
}
