package label

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// EXIF parsing here is deliberately narrow: the only value the organizer
// needs is the camera make (IFD0 tag 0x010F), so the reader walks just far
// enough into the container to find it. JPEG files carry the TIFF structure
// inside an APP1 segment; TIFF-based files (tif, and raw formats such as CR2
// or NEF) start with it directly.

const (
	tagMake       = 0x010F
	typeASCII     = 2
	maxMetaPrefix = 1 << 20 // metadata lives near the start of the file
)

// CameraMake extracts the normalized camera make from JPEG or TIFF content.
type CameraMake struct{}

// NewCameraMake returns the EXIF-backed label extractor.
func NewCameraMake() CameraMake {
	return CameraMake{}
}

func (CameraMake) ExtractLabel(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	prefix, err := io.ReadAll(io.LimitReader(file, maxMetaPrefix))
	if err != nil || len(prefix) < 8 {
		return "", false
	}

	var tiff []byte
	switch {
	case prefix[0] == 0xFF && prefix[1] == 0xD8:
		tiff = exifFromJPEG(prefix)
	case bytes.HasPrefix(prefix, []byte("II")) || bytes.HasPrefix(prefix, []byte("MM")):
		tiff = prefix
	}
	if tiff == nil {
		return "", false
	}

	raw, ok := makeFromTIFF(tiff)
	if !ok {
		return "", false
	}
	return Normalize(raw)
}

// exifFromJPEG walks JPEG segments until it finds an APP1 segment with the
// Exif header and returns the embedded TIFF blob.
func exifFromJPEG(data []byte) []byte {
	offset := 2
	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			return nil
		}
		marker := data[offset+1]
		// Standalone markers carry no length.
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD9) {
			offset += 2
			continue
		}
		length := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if length < 2 || offset+2+length > len(data) {
			return nil
		}
		payload := data[offset+4 : offset+2+length]
		if marker == 0xE1 && bytes.HasPrefix(payload, []byte("Exif\x00\x00")) {
			return payload[6:]
		}
		if marker == 0xDA { // start of scan, no metadata past this point
			return nil
		}
		offset += 2 + length
	}
	return nil
}

// makeFromTIFF reads IFD0 of a TIFF blob and returns the Make tag value.
func makeFromTIFF(tiff []byte) (string, bool) {
	if len(tiff) < 8 {
		return "", false
	}
	var order binary.ByteOrder
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		order = binary.LittleEndian
	case tiff[0] == 'M' && tiff[1] == 'M':
		order = binary.BigEndian
	default:
		return "", false
	}
	if order.Uint16(tiff[2:4]) != 42 {
		return "", false
	}

	ifdOffset := int(order.Uint32(tiff[4:8]))
	if ifdOffset < 8 || ifdOffset+2 > len(tiff) {
		return "", false
	}
	count := int(order.Uint16(tiff[ifdOffset : ifdOffset+2]))
	entries := tiff[ifdOffset+2:]
	for i := 0; i < count; i++ {
		base := i * 12
		if base+12 > len(entries) {
			return "", false
		}
		entry := entries[base : base+12]
		if order.Uint16(entry[0:2]) != tagMake {
			continue
		}
		if order.Uint16(entry[2:4]) != typeASCII {
			return "", false
		}
		valueLen := int(order.Uint32(entry[4:8]))
		if valueLen == 0 {
			return "", false
		}
		var value []byte
		if valueLen <= 4 {
			value = entry[8 : 8+valueLen]
		} else {
			valueOffset := int(order.Uint32(entry[8:12]))
			if valueOffset < 0 || valueOffset+valueLen > len(tiff) {
				return "", false
			}
			value = tiff[valueOffset : valueOffset+valueLen]
		}
		return string(bytes.TrimRight(value, "\x00")), true
	}
	return "", false
}
