package tokens

import (
	"fmt"

	"sm3dis/internal/common"
	"sm3dis/internal/d3d"
	"sm3dis/internal/memacc"
)

// Version is the decoded version token that opens every shader.
type Version struct {
	Kind  d3d.ShaderKind
	Major uint8
	Minor uint8
	Raw   uint32
}

// ParseVersion decodes a version token.
func ParseVersion(word uint32) (Version, error) {
	kind := memacc.Field(word, 16, 16)
	if kind&0xFFFE != 0xFFFE {
		return Version{}, common.Errorf(common.ErrMalformedHeader, 0, "version token 0x%08X", word)
	}
	return Version{
		Kind:  d3d.ShaderKind(kind),
		Major: uint8(memacc.Field(word, 8, 8)),
		Minor: uint8(memacc.Field(word, 0, 8)),
		Raw:   word,
	}, nil
}

// ReadVersion decodes the version token at the start of the buffer.
func ReadVersion(acc *memacc.BufferAccessor) (Version, error) {
	word, err := acc.ReadWord(0)
	if err != nil {
		return Version{}, err
	}
	return ParseVersion(word)
}

// String renders the profile line, e.g. vs_3_0.
func (v Version) String() string {
	return fmt.Sprintf("%s_%d_%d", v.Kind.Prefix(), v.Major, v.Minor)
}
