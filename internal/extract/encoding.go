package extract

import (
	"fmt"
	"sort"
)

// Encoding identifies a string-encoding variant the extraction utility can
// scan for. The names double as task configuration keys and as the suffix
// of generated output file names.
type Encoding string

// Recognized encodings. The mapping to strings(1) --encoding values is
// data-driven, so adding an offset or endianness variant is a table entry,
// not a code change.
const (
	EncodingASCII   Encoding = "ASCII"
	EncodingUTF16LE Encoding = "UTF16LE"
	EncodingUTF16BE Encoding = "UTF16BE"
	EncodingUTF32LE Encoding = "UTF32LE"
	EncodingUTF32BE Encoding = "UTF32BE"
)

// encodingFlags maps each encoding to its strings(1) --encoding value:
// s = single-7-bit-byte characters, l = 16-bit little endian,
// b = 16-bit big endian, L = 32-bit little endian, B = 32-bit big endian.
var encodingFlags = map[Encoding]string{
	EncodingASCII:   "s",
	EncodingUTF16LE: "l",
	EncodingUTF16BE: "b",
	EncodingUTF32LE: "L",
	EncodingUTF32BE: "B",
}

// ParseEncoding validates name against the recognized encodings.
func ParseEncoding(name string) (Encoding, error) {
	enc := Encoding(name)
	if _, ok := encodingFlags[enc]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Flag returns the strings(1) --encoding value for the encoding.
func (e Encoding) Flag() string {
	return encodingFlags[e]
}

// String returns the encoding name.
func (e Encoding) String() string {
	return string(e)
}

// enabledEncodings validates every key of a task configuration and returns
// the encodings whose keys are set to true, sorted by name so the
// processing order is deterministic. An unrecognized key fails the whole
// request, enabled or not: a misspelled configuration must never half-run.
func enabledEncodings(taskConfig map[string]bool) ([]Encoding, error) {
	enabled := make([]Encoding, 0, len(taskConfig))
	for name, on := range taskConfig {
		enc, err := ParseEncoding(name)
		if err != nil {
			return nil, err
		}
		if on {
			enabled = append(enabled, enc)
		}
	}

	sort.Slice(enabled, func(i, j int) bool { return enabled[i] < enabled[j] })
	return enabled, nil
}
