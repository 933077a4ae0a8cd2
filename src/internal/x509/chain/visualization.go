// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the chain as a tree, root first, each certificate
// nested under its issuer. status maps serial numbers to the values from
// [Chain.Validity]; a nil map marks every node as unchecked.
func (ch *Chain) RenderASCIITree(status map[string]string) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates in chain\n"
	}

	var b strings.Builder
	depth := 0
	for i := len(ch.Certs) - 1; i >= 0; i-- {
		cert := ch.Certs[i]

		icon := "?"
		if s, ok := status[cert.SerialNumber.String()]; ok {
			icon = "x"
			if s == StatusValid {
				icon = "+"
			}
		}

		if depth > 0 {
			b.WriteString(strings.Repeat("    ", depth-1))
			b.WriteString("└── ")
		}
		fmt.Fprintf(&b, "[%s] %s (%s)\n", icon, cert.Subject.CommonName, ch.certificateRole(i))
		depth++
	}

	if ch.Key != nil {
		b.WriteString(strings.Repeat("    ", depth-1))
		fmt.Fprintf(&b, "└── [key] %s\n", keyDescription(ch.Key.Public()))
	}

	return b.String()
}

// RenderTable renders the chain as a markdown table, leaf first.
func (ch *Chain) RenderTable(status map[string]string) string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	if len(ch.Certs) == 0 {
		return "No certificates to display\n"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Status"})

	rows := make([][]string, 0, len(ch.Certs))
	for i, cert := range ch.Certs {
		s := "unchecked"
		if v, ok := status[cert.SerialNumber.String()]; ok {
			s = v
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.certificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.UTC().Format("2006-01-02"),
			keyDescription(cert.PublicKey),
			s,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

type certificateVizData struct {
	Index              int       `json:"index"`
	Role               string    `json:"role"`
	Subject            string    `json:"subject"`
	Issuer             string    `json:"issuer"`
	SerialNumber       string    `json:"serialNumber"`
	SignatureAlgorithm string    `json:"signatureAlgorithm"`
	PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
	KeySize            int       `json:"keySize"`
	NotBefore          time.Time `json:"notBefore"`
	NotAfter           time.Time `json:"notAfter"`
	IsCA               bool      `json:"isCA"`
	Status             string    `json:"status"`
}

type relationshipData struct {
	FromIndex int    `json:"fromIndex"`
	ToIndex   int    `json:"toIndex"`
	Type      string `json:"type"`
}

type visualizationData struct {
	CheckedAt     string               `json:"checkedAt,omitempty"`
	ChainLength   int                  `json:"chainLength"`
	KeyMatches    *bool                `json:"keyMatches,omitempty"`
	Certificates  []certificateVizData `json:"certificates"`
	Relationships []relationshipData   `json:"relationships"`
}

// ToVisualizationJSON converts the chain to indented JSON carrying each
// certificate, its status, and the signed_by edges found by checking
// signatures within the chain.
func (ch *Chain) ToVisualizationJSON(status map[string]string) ([]byte, error) {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	data := visualizationData{
		ChainLength:   len(ch.Certs),
		Certificates:  make([]certificateVizData, len(ch.Certs)),
		Relationships: []relationshipData{},
	}
	if !ch.CheckedAt.IsZero() {
		data.CheckedAt = ch.CheckedAt.UTC().Format(time.RFC3339)
	}
	if ch.Key != nil && len(ch.Certs) > 0 {
		matches := matchesLeaf(ch.Certs[0], ch.Key.Public())
		data.KeyMatches = &matches
	}

	for i, cert := range ch.Certs {
		algo, size := keyInfo(cert.PublicKey)

		s := "unchecked"
		if v, ok := status[cert.SerialNumber.String()]; ok {
			s = v
		}

		data.Certificates[i] = certificateVizData{
			Index:              i,
			Role:               ch.certificateRole(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            size,
			NotBefore:          cert.NotBefore.UTC(),
			NotAfter:           cert.NotAfter.UTC(),
			IsCA:               cert.IsCA,
			Status:             s,
		}

		if j := ch.issuerIndex(i); j >= 0 {
			data.Relationships = append(data.Relationships, relationshipData{
				FromIndex: i,
				ToIndex:   j,
				Type:      "signed_by",
			})
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

// certificateRole names the position of Certs[index] in the bundle.
func (ch *Chain) certificateRole(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "Device Certificate"
	case index == total-1:
		return "Root CA"
	default:
		return "Intermediate CA"
	}
}

func keyInfo(pub any) (string, int) {
	switch k := pub.(type) {
	case *rsa.PublicKey:
		return "RSA", k.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", k.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	default:
		return "unknown", 0
	}
}

func keyDescription(pub any) string {
	algo, size := keyInfo(pub)
	if size == 0 {
		return algo
	}
	return fmt.Sprintf("%d-bit %s", size, algo)
}

func matchesLeaf(leaf *x509.Certificate, pub crypto.PublicKey) bool {
	k, ok := pub.(interface{ Equal(crypto.PublicKey) bool })
	return ok && k.Equal(leaf.PublicKey)
}
