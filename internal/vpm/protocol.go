package vpm

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// protocolPrefix is the scheme and path the VCC registers repositories through.
const protocolPrefix = "vcc://vpm/addRepo?url="

// ProtocolURL returns the vcc:// link that asks the client to add the
// repository. The index must already exist.
func ProtocolURL(repo Repository) (string, error) {
	if _, err := os.Stat(repo.IndexPath()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", wrap(ErrIndexMissing, "build protocol url", repo.IndexPath(), nil)
		}
		return "", wrap(ErrIndexMissing, "build protocol url", repo.IndexPath(), err)
	}
	return protocolPrefix + quoteURL(IndexURL(repo)), nil
}

// quoteURL percent-encodes every byte outside the unreserved set, leaving ':'
// and '/' intact so the embedded file URL stays readable.
func quoteURL(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-', c == '_', c == '.', c == '~', c == ':', c == '/':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
