// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader

// Role identifies one of the four members of a PKI bundle.
type Role int

const (
	// RoleCertificate is the device certificate.
	RoleCertificate Role = iota
	// RolePrivateKey is the device private key.
	RolePrivateKey
	// RoleIntermediateCA is the issuing (sub) CA certificate.
	RoleIntermediateCA
	// RoleRootCA is the trust anchor.
	RoleRootCA
)

// Roles lists every role in header emission order.
var Roles = [...]Role{RoleCertificate, RolePrivateKey, RoleIntermediateCA, RoleRootCA}

var roleInfo = [...]struct {
	name, ident, suffix string
	chained             bool
}{
	RoleCertificate:    {"certificate", "my_cert", "_cert.pem", false},
	RolePrivateKey:     {"private-key", "my_key", "_key.pem", false},
	RoleIntermediateCA: {"intermediate-CA", "int_ca", "/1-subca-cert.pem", true},
	RoleRootCA:         {"root-CA", "root_ca", "/0-root-cert.pem", true},
}

func (r Role) String() string { return roleInfo[r].name }

// Identifier returns the C identifier the role is declared as.
func (r Role) Identifier() string { return roleInfo[r].ident }

// Suffix returns the archive-relative suffix appended to the member or chain prefix.
func (r Role) Suffix() string { return roleInfo[r].suffix }

// Chained reports whether the member lives under the chain prefix.
func (r Role) Chained() bool { return roleInfo[r].chained }
