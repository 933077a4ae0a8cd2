// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"github.com/cloudflare/cfssl/helpers/derhelpers"
	"golang.org/x/crypto/cryptobyte"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrNoPrivateKey indicates that no private key block was found in the member.
	ErrNoPrivateKey = errors.New("x509certs: no private key block found")

	// ErrParsePrivateKey indicates a failure to parse the private key.
	ErrParsePrivateKey = errors.New("x509certs: failed to parse private key")

	// ErrCurveMismatch indicates that an EC PARAMETERS block names a different
	// curve than the key that follows it.
	ErrCurveMismatch = errors.New("x509certs: EC parameters do not match private key curve")

	// ErrKeyMismatch indicates that a private key does not belong to a certificate.
	ErrKeyMismatch = errors.New("x509certs: private key does not match certificate")
)

const certBlockType = "CERTIFICATE"

// Decode decodes the first certificate in data.
//
// data may be a PEM "CERTIFICATE" block, a DER certificate, or a DER PKCS#7
// bundle, in which case its first certificate is returned.
func Decode(data []byte) (*x509.Certificate, error) {
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != certBlockType {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBlockType, block.Type)
		}
		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParsePKCS7
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// DecodeMultiple decodes every certificate in data, in order.
//
// PEM input may interleave other blocks; only "CERTIFICATE" blocks are
// decoded and the rest are skipped. Non-PEM input is parsed as concatenated
// DER certificates.
func DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if !IsPEM(data) {
		certs, err := x509.ParseCertificates(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		return certs, nil
	}

	var certs []*x509.Certificate
	for block, rest := pem.Decode(data); block != nil; block, rest = pem.Decode(rest) {
		if block.Type != certBlockType {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, ErrInvalidBlockType
	}

	return certs, nil
}

// IsPEM reports whether data holds at least one PEM block.
func IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// ParsePrivateKey parses the first private key block in a PEM member.
//
// Blocks that are not keys are skipped, except that an "EC PARAMETERS"
// block, as emitted by openssl ahead of the key, must name the curve of the
// EC key that follows. PKCS#1, PKCS#8 and SEC 1 encodings are accepted.
func ParsePrivateKey(data []byte) (crypto.Signer, error) {
	var params asn1.ObjectIdentifier
	for block, rest := pem.Decode(data); block != nil; block, rest = pem.Decode(rest) {
		if block.Type == "EC PARAMETERS" {
			s := cryptobyte.String(block.Bytes)
			if !s.ReadASN1ObjectIdentifier(&params) {
				return nil, fmt.Errorf("%w: malformed EC PARAMETERS block", ErrParsePrivateKey)
			}
			continue
		}
		if !strings.HasSuffix(block.Type, "PRIVATE KEY") {
			continue
		}

		key, err := derhelpers.ParsePrivateKeyDER(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParsePrivateKey, err)
		}
		if ec, ok := key.(*ecdsa.PrivateKey); ok && params != nil {
			if want, known := curveOIDs[ec.Curve]; known && !want.Equal(params) {
				return nil, fmt.Errorf("%w: %s", ErrCurveMismatch, params)
			}
		}
		return key, nil
	}

	return nil, ErrNoPrivateKey
}

// curveOIDs maps the named curves to their object identifiers (RFC 5480).
var curveOIDs = map[elliptic.Curve]asn1.ObjectIdentifier{
	elliptic.P224(): {1, 3, 132, 0, 33},
	elliptic.P256(): {1, 2, 840, 10045, 3, 1, 7},
	elliptic.P384(): {1, 3, 132, 0, 34},
	elliptic.P521(): {1, 3, 132, 0, 35},
}

// MatchKey checks that key is the private half of the public key in cert.
func MatchKey(cert *x509.Certificate, key crypto.Signer) error {
	certPub, err := x509.MarshalPKIXPublicKey(cert.PublicKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyMismatch, err)
	}
	keyPub, err := x509.MarshalPKIXPublicKey(key.Public())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKeyMismatch, err)
	}
	if !bytes.Equal(certPub, keyPub) {
		return ErrKeyMismatch
	}
	return nil
}

// EncodePEM encodes a certificate to PEM format.
func EncodePEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: certBlockType, Bytes: cert.Raw})
}
