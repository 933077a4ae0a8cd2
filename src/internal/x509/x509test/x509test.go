// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509test generates throwaway PKI hierarchies for tests.
package x509test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/stretchr/testify/require"
)

var oidP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}

// PKI is a root, one intermediate and a leaf issued by it.
type PKI struct {
	Root, Intermediate, Leaf          *x509.Certificate
	RootKey, IntermediateKey, LeafKey *ecdsa.PrivateKey
}

// New issues a fresh three-level hierarchy valid around now.
func New(t testing.TB) *PKI {
	t.Helper()

	p := &PKI{
		RootKey:         NewKey(t),
		IntermediateKey: NewKey(t),
		LeafKey:         NewKey(t),
	}

	p.Root = issue(t, &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test Root CA"},
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	}, nil, p.RootKey, nil)

	p.Intermediate = issue(t, &x509.Certificate{
		SerialNumber:          big.NewInt(2),
		Subject:               pkix.Name{CommonName: "Test Sub CA"},
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
	}, p.Root, p.IntermediateKey, p.RootKey)

	p.Leaf = issue(t, &x509.Certificate{
		SerialNumber: big.NewInt(3),
		Subject:      pkix.Name{CommonName: "Test Device"},
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
	}, p.Intermediate, p.LeafKey, p.IntermediateKey)

	return p
}

// NewKey generates a P-256 key.
func NewKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

// issue signs tmpl for key with parent and parentKey; a nil parent self-signs.
func issue(t testing.TB, tmpl, parent *x509.Certificate, key, parentKey *ecdsa.PrivateKey) *x509.Certificate {
	t.Helper()

	tmpl.NotBefore = time.Now().Add(-time.Hour)
	tmpl.NotAfter = time.Now().Add(24 * time.Hour)
	if parent == nil {
		parent, parentKey = tmpl, key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, &key.PublicKey, parentKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert
}

// CertPEM encodes cert as a PEM CERTIFICATE block.
func CertPEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
}

// KeyPEM encodes key as a PEM PKCS#8 PRIVATE KEY block.
func KeyPEM(t testing.TB, key crypto.Signer) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// ECKeyPEM encodes key the way "openssl ecparam -genkey" does: an
// EC PARAMETERS block followed by a SEC 1 EC PRIVATE KEY block.
func ECKeyPEM(t testing.TB, key *ecdsa.PrivateKey) []byte {
	t.Helper()
	params, err := asn1.Marshal(oidP256)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	out := pem.EncodeToMemory(&pem.Block{Type: "EC PARAMETERS", Bytes: params})
	return append(out, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})...)
}

// Members returns the four bundle members for basename at the top level of
// an archive.
func (p *PKI) Members(t testing.TB, basename string) []archive.Member {
	t.Helper()
	return []archive.Member{
		{Name: basename + "_cert.pem", Data: CertPEM(p.Leaf)},
		{Name: basename + "_key.pem", Data: ECKeyPEM(t, p.LeafKey)},
		{Name: "chain/1-subca-cert.pem", Data: CertPEM(p.Intermediate)},
		{Name: "chain/0-root-cert.pem", Data: CertPEM(p.Root)},
	}
}
