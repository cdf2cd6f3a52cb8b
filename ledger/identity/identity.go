// Package identity holds the keypair an actor uses to prove custody.
// Addresses are one-way SHA-256 derivations of DER-encoded public keys, so
// any party can check custody with just the address, while signatures prove
// possession of the private key at transfer time.
package identity

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"fmt"
)

// AuthorizationMessage is the fixed message every transfer signature covers.
var AuthorizationMessage = []byte("I have authorized this transaction.")

// Identity owns a P-384 keypair. The private key never leaves the instance.
type Identity struct {
	key *ecdsa.PrivateKey
}

// New generates a fresh keypair from the platform's secure random source.
func New() (*Identity, error) {
	key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("identity: generate keypair: %w", err)
	}
	return &Identity{key: key}, nil
}

// Address derives the identity's transaction address together with the
// DER-serialized public key a verifier needs to recompute it. Both are
// lowercase hex.
func (id *Identity) Address() (address string, pubKey string, err error) {
	der, err := x509.MarshalPKIXPublicKey(&id.key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("identity: serialize public key: %w", err)
	}
	digest := sha256.Sum256(der)
	return hex.EncodeToString(digest[:]), hex.EncodeToString(der), nil
}

// Sign produces an ECDSA signature over the SHA-256 digest of message,
// ASN.1-encoded and returned as lowercase hex.
func (id *Identity) Sign(message []byte) (string, error) {
	digest := sha256.Sum256(message)
	sig, err := ecdsa.SignASN1(rand.Reader, id.key, digest[:])
	if err != nil {
		return "", fmt.Errorf("identity: sign: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// VerifyAddress reports whether pubKeyDER hashes to the given address. Pure
// function, no private key involved.
func VerifyAddress(address string, pubKeyDER []byte) bool {
	digest := sha256.Sum256(pubKeyDER)
	return hex.EncodeToString(digest[:]) == address
}

// VerifySignature reports whether sigHex is a valid signature by pubKeyDER's
// key over message. Malformed keys or signatures are verification failures,
// never faults.
func VerifySignature(message []byte, sigHex string, pubKeyDER []byte) bool {
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false
	}
	parsed, err := x509.ParsePKIXPublicKey(pubKeyDER)
	if err != nil {
		return false
	}
	pub, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return false
	}
	digest := sha256.Sum256(message)
	return ecdsa.VerifyASN1(pub, digest[:], sig)
}
