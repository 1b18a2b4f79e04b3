// Package upcean decodes UPC-A, UPC-E, EAN-8 and EAN-13 barcodes from single
// scanned rows of black and white pixels.
//
// The symbology readers live in the oned package; this package holds the
// types they share: formats, results, options and errors.
package upcean

import (
	"fmt"
	"strings"
	"time"
)

// Format represents a barcode format.
type Format int

const (
	FormatEAN13 Format = iota
	FormatEAN8
	FormatUPCA
	FormatUPCE
)

// AllFormats lists every format in the order readers try them.
var AllFormats = []Format{FormatEAN13, FormatEAN8, FormatUPCA, FormatUPCE}

// String returns the name of the barcode format.
func (f Format) String() string {
	switch f {
	case FormatEAN13:
		return "EAN_13"
	case FormatEAN8:
		return "EAN_8"
	case FormatUPCA:
		return "UPC_A"
	case FormatUPCE:
		return "UPC_E"
	default:
		return "UNKNOWN"
	}
}

// ParseFormat parses a format name. Case, dashes and underscores are ignored,
// so "ean13", "EAN_13" and "ean-13" all name FormatEAN13.
func ParseFormat(name string) (Format, error) {
	want := normalizeFormatName(name)
	for _, f := range AllFormats {
		if normalizeFormatName(f.String()) == want {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown barcode format %q", name)
}

func normalizeFormatName(name string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToUpper(name))
}

// ResultMetadataKey identifies a type of metadata about a barcode result.
type ResultMetadataKey int

const (
	MetadataOther ResultMetadataKey = iota
	MetadataOrientation
	MetadataSymbologyIdentifier
	MetadataInverted
)

// String returns a stable lowercase name, used when results are serialized.
func (k ResultMetadataKey) String() string {
	switch k {
	case MetadataOrientation:
		return "orientation"
	case MetadataSymbologyIdentifier:
		return "symbology_identifier"
	case MetadataInverted:
		return "inverted"
	default:
		return "other"
	}
}

// ResultPoint represents a point of interest in an image.
type ResultPoint struct {
	X, Y float64
}

// Result encapsulates the result of decoding a barcode.
type Result struct {
	Text      string
	Points    []ResultPoint
	Format    Format
	Metadata  map[ResultMetadataKey]interface{}
	Timestamp time.Time
}

// NewResult creates a new Result with the given text, points and format.
func NewResult(text string, points []ResultPoint, format Format) *Result {
	return &Result{
		Text:      text,
		Points:    points,
		Format:    format,
		Metadata:  make(map[ResultMetadataKey]interface{}),
		Timestamp: time.Now(),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	r.Metadata[key] = value
}

// PutAllMetadata copies every entry of metadata into r.
func (r *Result) PutAllMetadata(metadata map[ResultMetadataKey]interface{}) {
	for k, v := range metadata {
		r.Metadata[k] = v
	}
}
