// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/H0llyW00dzZ/pki2include/src/internal/cliteral"
	"github.com/H0llyW00dzZ/pki2include/src/internal/pkiheader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedDate = time.Date(2021, time.October, 18, 11, 5, 50, 0, time.UTC)

const wantABC = `#ifndef PKI_CERT_INCLUDE_H
#define PKI_CERT_INCLUDE_H
#if defined(OC_SECURITY) && defined(OC_PKI)

/* PKI certificate data
 input file = bundle.zip
 prefix = bundle
 date 2021-10-18 11:05:50
*/

const char *my_cert = "ABC\r\n";

const char *my_key = "ABC\r\n";

const char *int_ca = "ABC\r\n";

const char *root_ca = "ABC\r\n";

#endif /* OC_SECURITY && OC_PKI */
#endif /* PKI_CERT_INCLUDE_H */
`

func abcPayload(t *testing.T) *pkiheader.Payload {
	t.Helper()
	abc := []byte("ABC\n")
	mem := archive.NewMemory(
		archive.Member{Name: "bundle_cert.pem", Data: abc},
		archive.Member{Name: "bundle_key.pem", Data: abc},
		archive.Member{Name: "chain/1-subca-cert.pem", Data: abc},
		archive.Member{Name: "chain/0-root-cert.pem", Data: abc},
	)
	p := pkiheader.Extract(mem, "bundle.zip", "bundle")
	require.Equal(t, pkiheader.OutcomeArchive, p.Outcome)
	return p
}

func defaultAssembler() *pkiheader.Assembler {
	return &pkiheader.Assembler{
		Encoder: cliteral.New(),
		Guard:   pkiheader.DefaultGuard,
		Gate:    pkiheader.DefaultGate,
	}
}

func TestAssemblerRender(t *testing.T) {
	prov := pkiheader.Provenance{InputFile: "bundle.zip", Prefix: "bundle", Date: fixedDate}

	t.Run("Exact layout", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, defaultAssembler().Render(&buf, prov, abcPayload(t)))
		assert.Equal(t, wantABC, buf.String())
	})

	t.Run("Banner precedes guard", func(t *testing.T) {
		a := defaultAssembler()
		a.Banner = "/* banner */\n"
		var buf bytes.Buffer
		require.NoError(t, a.Render(&buf, prov, abcPayload(t)))
		assert.Equal(t, "/* banner */\n"+wantABC, buf.String())
	})

	t.Run("Empty gate omits conditional", func(t *testing.T) {
		a := defaultAssembler()
		a.Gate = []string{}
		var buf bytes.Buffer
		require.NoError(t, a.Render(&buf, prov, abcPayload(t)))
		out := buf.String()
		assert.NotContains(t, out, "#if defined")
		assert.NotContains(t, out, "OC_SECURITY")
		assert.Equal(t, 1, strings.Count(out, "#endif"))
		assert.True(t, strings.HasPrefix(out, "#ifndef PKI_CERT_INCLUDE_H\n#define PKI_CERT_INCLUDE_H\n\n/* PKI"))
	})

	t.Run("Custom guard and gate", func(t *testing.T) {
		a := defaultAssembler()
		a.Guard = "MY_GUARD_H"
		a.Gate = []string{"A", "B", "C"}
		var buf bytes.Buffer
		require.NoError(t, a.Render(&buf, prov, abcPayload(t)))
		out := buf.String()
		assert.Contains(t, out, "#ifndef MY_GUARD_H\n#define MY_GUARD_H\n#if defined(A) && defined(B) && defined(C)\n")
		assert.True(t, strings.HasSuffix(out, "#endif /* A && B && C */\n#endif /* MY_GUARD_H */\n"))
	})

	t.Run("Date is rendered in UTC", func(t *testing.T) {
		local := fixedDate.In(time.FixedZone("UTC+7", 7*60*60))
		var buf bytes.Buffer
		require.NoError(t, defaultAssembler().Render(&buf,
			pkiheader.Provenance{InputFile: "bundle.zip", Prefix: "bundle", Date: local}, abcPayload(t)))
		assert.Contains(t, buf.String(), " date 2021-10-18 11:05:50\n")
	})

	t.Run("Fallback payload", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, defaultAssembler().Render(&buf, prov, pkiheader.Fallback(errors.New("gone"))))
		out := buf.String()
		for _, r := range pkiheader.Roles {
			assert.Contains(t, out, "const char *"+r.Identifier()+" = \" FAKE\\r\\n\";\n\n")
		}
	})

	t.Run("Declaration order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, defaultAssembler().Render(&buf, prov, abcPayload(t)))
		out := buf.String()
		last := -1
		for _, r := range pkiheader.Roles {
			i := strings.Index(out, "*"+r.Identifier()+" =")
			require.Greater(t, i, last, "%s out of order", r.Identifier())
			last = i
		}
	})
}

func TestAssemblerRenderInvalidUTF8(t *testing.T) {
	mem := archive.NewMemory(
		archive.Member{Name: "bundle_cert.pem", Data: []byte("ok\n")},
		archive.Member{Name: "bundle_key.pem", Data: []byte("ok\n")},
		archive.Member{Name: "chain/1-subca-cert.pem", Data: []byte("ok\n")},
		archive.Member{Name: "chain/0-root-cert.pem", Data: []byte{0xff, 0xfe, '\n'}},
	)
	p := pkiheader.Extract(mem, "bundle.zip", "bundle")
	require.Equal(t, pkiheader.OutcomeArchive, p.Outcome)

	var buf bytes.Buffer
	err := defaultAssembler().Render(&buf, pkiheader.Provenance{Date: fixedDate}, p)

	require.Error(t, err)
	assert.ErrorIs(t, err, cliteral.ErrInvalidUTF8)
	assert.Contains(t, err.Error(), "root-CA")
	assert.Zero(t, buf.Len(), "nothing is written when a member fails to decode")
}

// failWriter fails after n bytes.
type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	if len(p) > f.n {
		return 0, errors.New("disk full")
	}
	f.n -= len(p)
	return len(p), nil
}

func TestAssemblerRenderWriteError(t *testing.T) {
	for _, n := range []int{0, 10, 100, 200} {
		err := defaultAssembler().Render(&failWriter{n: n},
			pkiheader.Provenance{InputFile: "bundle.zip", Prefix: "bundle", Date: fixedDate}, abcPayload(t))
		assert.EqualError(t, err, "disk full", "limit %d", n)
	}
}
