// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"
	"time"

	x509certs "github.com/H0llyW00dzZ/pki2include/src/internal/x509/certs"
)

// Validity states reported by [Chain.Validity].
const (
	StatusValid        = "valid"
	StatusExpired      = "expired"
	StatusNotYetValid  = "not yet valid"
	StatusBadSignature = "bad signature"
)

// ErrEmptyChain indicates that a chain holds no certificates.
var ErrEmptyChain = errors.New("x509chain: chain has no certificates")

// Chain holds a device certificate, its issuing CAs and optionally the
// device private key, ordered leaf first and root last.
//
// [X.509]: https://grokipedia.com/page/X.509
type Chain struct {
	mu            sync.RWMutex
	Certs         []*x509.Certificate
	Key           crypto.Signer
	Roots         *x509.CertPool
	Intermediates *x509.CertPool
	// CheckedAt is the instant of the last Validity call.
	CheckedAt time.Time
}

// New creates a Chain from leaf followed by its issuers, root last.
func New(leaf *x509.Certificate, issuers ...*x509.Certificate) *Chain {
	return &Chain{
		Certs:         append([]*x509.Certificate{leaf}, issuers...),
		Roots:         x509.NewCertPool(),
		Intermediates: x509.NewCertPool(),
	}
}

// FromPEM decodes the members of a PKI bundle into a Chain.
//
// A key that cannot be parsed is reported as an error; the certificates are
// required.
func FromPEM(leaf, key, intermediate, root []byte) (*Chain, error) {
	var certs [3]*x509.Certificate
	for i, m := range []struct {
		role string
		data []byte
	}{
		{"certificate", leaf},
		{"intermediate-CA", intermediate},
		{"root-CA", root},
	} {
		cert, err := x509certs.Decode(m.data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.role, err)
		}
		certs[i] = cert
	}

	signer, err := x509certs.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("private-key: %w", err)
	}

	ch := New(certs[0], certs[1], certs[2])
	ch.Key = signer
	return ch, nil
}

// CheckKey reports whether Key belongs to the leaf certificate.
func (ch *Chain) CheckKey() error {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}
	if ch.Key == nil {
		return x509certs.ErrNoPrivateKey
	}
	return x509certs.MatchKey(ch.Certs[0], ch.Key)
}

// IsSelfSigned checks if a certificate is self-signed.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return cert.CheckSignatureFrom(cert) == nil
}

// IsRootNode determines if a certificate is a root node in the chain.
func (ch *Chain) IsRootNode(cert *x509.Certificate) bool {
	return ch.IsSelfSigned(cert)
}

// FilterIntermediates returns every certificate except the leaf and the root.
func (ch *Chain) FilterIntermediates() []*x509.Certificate {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) <= 2 {
		return nil
	}
	return ch.Certs[1 : len(ch.Certs)-1]
}

// VerifyChain verifies the leaf up to the last certificate of the chain,
// which is trusted as the only root, at the instant at.
//
// Only the chain itself is consulted; system roots are never used. Any
// extended key usage is accepted because device certificates serve both
// client and server roles.
func (ch *Chain) VerifyChain(at time.Time) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if len(ch.Certs) == 0 {
		return ErrEmptyChain
	}

	for i, cert := range ch.Certs {
		if i == len(ch.Certs)-1 {
			ch.Roots.AddCert(cert)
		} else if i > 0 {
			ch.Intermediates.AddCert(cert)
		}
	}

	_, err := ch.Certs[0].Verify(x509.VerifyOptions{
		Roots:         ch.Roots,
		Intermediates: ch.Intermediates,
		CurrentTime:   at,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	return err
}

// Validity returns a status per certificate serial number at the instant at:
// the validity window is checked first, then the signature from the next
// certificate up the chain (or the certificate itself for the root).
func (ch *Chain) Validity(at time.Time) map[string]string {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	ch.CheckedAt = at
	status := make(map[string]string, len(ch.Certs))
	for i, cert := range ch.Certs {
		issuer := cert
		if i+1 < len(ch.Certs) {
			issuer = ch.Certs[i+1]
		}

		switch {
		case at.Before(cert.NotBefore):
			status[cert.SerialNumber.String()] = StatusNotYetValid
		case at.After(cert.NotAfter):
			status[cert.SerialNumber.String()] = StatusExpired
		case cert.CheckSignatureFrom(issuer) != nil:
			status[cert.SerialNumber.String()] = StatusBadSignature
		default:
			status[cert.SerialNumber.String()] = StatusValid
		}
	}
	return status
}

// issuerIndex returns the position of the certificate in the chain that
// signed Certs[i], or -1. The caller must hold ch.mu.
func (ch *Chain) issuerIndex(i int) int {
	cert := ch.Certs[i]
	for j := len(ch.Certs) - 1; j >= 0; j-- {
		if j == i {
			continue
		}
		if err := cert.CheckSignatureFrom(ch.Certs[j]); err == nil {
			return j
		}
	}
	return -1
}
