// Package jws signs and verifies the JWSCompact and JWSGeneral values of the
// core API. Cactus nodes sign their responses; a node's publicKeyPem is the
// key their signatures verify against.
package jws

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/go-jose/go-jose/v4"
	json "github.com/goccy/go-json"

	coreapi "github.com/hyperledger/cactus-core-api-go"
	"github.com/hyperledger/cactus-core-api-go/model"
)

var (
	// ErrMalformedCompact is returned for strings that are not three
	// dot-separated base64url segments within the JWSCompact length bounds.
	ErrMalformedCompact = errors.New("jws: malformed compact serialization")
	// ErrPrivateKeyPEM is returned when a PEM block holds a private key where
	// only a public key is allowed.
	ErrPrivateKeyPEM = errors.New("jws: PEM contains a private key")
	// ErrNoValidSignature is returned when no signature verifies.
	ErrNoValidSignature = errors.New("jws: no valid signature")
	// ErrUnsupportedKey is returned for keys without a matching algorithm.
	ErrUnsupportedKey = errors.New("jws: unsupported key type")
)

// Algorithms accepted when verifying.
var Algorithms = []jose.SignatureAlgorithm{
	jose.EdDSA,
	jose.ES256, jose.ES384, jose.ES512,
	jose.RS256, jose.RS384, jose.RS512,
	jose.PS256, jose.PS384, jose.PS512,
}

// The signature segment may be empty (unsecured JWS).
var compactRE = regexp.MustCompile(coreapi.JWSCompactPattern)

// ParseCompact splits s into a JWSGeneral with a single signature. It
// accepts exactly the strings the JWSCompact schema accepts; nothing is
// verified.
func ParseCompact(s model.JWSCompact) (model.JWSGeneral, error) {
	if n := len(s); n < coreapi.JWSCompactMinLength || n > coreapi.JWSCompactMaxLength {
		return model.JWSGeneral{}, fmt.Errorf("%w: length %d", ErrMalformedCompact, n)
	}
	if !compactRE.MatchString(string(s)) {
		return model.JWSGeneral{}, ErrMalformedCompact
	}
	parts := strings.Split(string(s), ".")
	return model.JWSGeneral{
		Payload:    parts[1],
		Signatures: []model.JWSRecipient{{Protected: parts[0], Signature: parts[2]}},
	}, nil
}

// Compact returns signature i of g in compact serialization. Signatures
// without a protected header have no compact form.
func Compact(g model.JWSGeneral, i int) (model.JWSCompact, error) {
	if i < 0 || i >= len(g.Signatures) {
		return "", fmt.Errorf("jws: signature index %d out of range [0,%d)", i, len(g.Signatures))
	}
	sig := g.Signatures[i]
	if sig.Protected == "" {
		return "", fmt.Errorf("%w: signature %d has no protected header", ErrMalformedCompact, i)
	}
	return model.JWSCompact(sig.Protected + "." + g.Payload + "." + sig.Signature), nil
}

// Algorithm returns the signature algorithm used for key.
func Algorithm(key crypto.Signer) (jose.SignatureAlgorithm, error) {
	switch k := key.(type) {
	case ed25519.PrivateKey:
		return jose.EdDSA, nil
	case *rsa.PrivateKey:
		return jose.RS256, nil
	case *ecdsa.PrivateKey:
		switch k.Curve {
		case elliptic.P256():
			return jose.ES256, nil
		case elliptic.P384():
			return jose.ES384, nil
		case elliptic.P521():
			return jose.ES512, nil
		}
		return "", fmt.Errorf("%w: curve %s", ErrUnsupportedKey, k.Curve.Params().Name)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
}

// Sign signs payload with key and returns the result with one signature.
func Sign(payload []byte, key crypto.Signer) (model.JWSGeneral, error) {
	alg, err := Algorithm(key)
	if err != nil {
		return model.JWSGeneral{}, err
	}
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: alg, Key: key}, nil)
	if err != nil {
		return model.JWSGeneral{}, fmt.Errorf("jws: new signer: %w", err)
	}
	obj, err := signer.Sign(payload)
	if err != nil {
		return model.JWSGeneral{}, fmt.Errorf("jws: sign: %w", err)
	}
	compact, err := obj.CompactSerialize()
	if err != nil {
		return model.JWSGeneral{}, fmt.Errorf("jws: serialize: %w", err)
	}
	return ParseCompact(model.JWSCompact(compact))
}

// SignJSON signs the RFC 8785 canonical JSON form of v, so that signer and
// verifier agree on the bytes regardless of key order or whitespace.
func SignJSON(v any, key crypto.Signer) (model.JWSGeneral, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return model.JWSGeneral{}, fmt.Errorf("jws: marshal payload: %w", err)
	}
	canon, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return model.JWSGeneral{}, fmt.Errorf("jws: canonicalize payload: %w", err)
	}
	return Sign(canon, key)
}

// ParsePublicKeyPEM decodes the first PEM block of data as a PKIX public key.
func ParsePublicKeyPEM(data string) (crypto.PublicKey, error) {
	block, _ := pem.Decode([]byte(data))
	if block == nil {
		return nil, errors.New("jws: no PEM block found")
	}
	if strings.Contains(block.Type, "PRIVATE KEY") {
		return nil, ErrPrivateKeyPEM
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jws: parse public key: %w", err)
	}
	return pub, nil
}

// Verify checks the signatures of g against the PEM encoded public key and
// returns the decoded payload of the first one that verifies.
func Verify(g model.JWSGeneral, publicKeyPEM string) ([]byte, error) {
	pub, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	var errs []error
	for i := range g.Signatures {
		compact, err := Compact(g, i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		obj, err := jose.ParseSignedCompact(string(compact), Algorithms)
		if err != nil {
			errs = append(errs, fmt.Errorf("signature %d: %w", i, err))
			continue
		}
		payload, err := obj.Verify(pub)
		if err != nil {
			errs = append(errs, fmt.Errorf("signature %d: %w", i, err))
			continue
		}
		return payload, nil
	}
	return nil, errors.Join(append([]error{ErrNoValidSignature}, errs...)...)
}

// VerifyNode verifies g against the public key the node publishes.
func VerifyNode(g model.JWSGeneral, node model.CactusNodeMeta) ([]byte, error) {
	return Verify(g, node.PublicKeyPEM)
}

// DecodePayload returns the base64url decoded payload of g without
// verifying anything.
func DecodePayload(g model.JWSGeneral) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(g.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedCompact, err)
	}
	return b, nil
}
