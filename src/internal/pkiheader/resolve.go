// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Prefix locates the members of a bundle inside an archive.
type Prefix struct {
	// Dir is the detected parent directory, empty for a top-level layout.
	Dir string
	// Member prefixes the certificate and key members, e.g. "certs/pki_certs".
	Member string
	// Chain prefixes the CA members, e.g. "certs/chain".
	Chain string
}

// Path returns the archive path of the member holding role.
func (p Prefix) Path(r Role) string {
	if r.Chained() {
		return p.Chain + r.Suffix()
	}
	return p.Member + r.Suffix()
}

// ResolvePrefix finds where the bundle named basename sits in an archive
// listing.
//
// The first name of the form "<dir>/<basename>_cert.pem", where dir is a
// single segment of letters, digits, spaces and underscores (optionally
// preceded by a slash), selects dir as the parent directory. A leading slash
// is kept in Member and Chain so the other members are looked up under the
// same stored path. Without a match the bundle is assumed to be at the top
// level. ResolvePrefix never fails.
func ResolvePrefix(names []string, basename string) Prefix {
	re := regexp.MustCompile(`^(/?)([A-Za-z0-9 _]+)/` + regexp.QuoteMeta(basename) + `_cert\.pem$`)

	for _, name := range names {
		if m := re.FindStringSubmatch(name); m != nil {
			root := m[1] + m[2]
			return Prefix{
				Dir:    m[2],
				Member: root + "/" + basename,
				Chain:  root + "/chain",
			}
		}
	}

	return Prefix{Member: basename, Chain: "chain"}
}

// Basename derives the member basename from an archive path:
// "downloads/pki_certs.zip" yields "pki_certs".
func Basename(archivePath string) string {
	base := filepath.Base(filepath.ToSlash(archivePath))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
