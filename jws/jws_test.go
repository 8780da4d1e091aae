package jws_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreapi "github.com/hyperledger/cactus-core-api-go"
	"github.com/hyperledger/cactus-core-api-go/jws"
	"github.com/hyperledger/cactus-core-api-go/model"
	"github.com/hyperledger/cactus-core-api-go/validate"
)

func publicPEM(t *testing.T, pub crypto.PublicKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func TestSignVerify_KeyTypes(t *testing.T) {
	ec256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ec384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	_, ed, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	rs, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name string
		key  crypto.Signer
		alg  jose.SignatureAlgorithm
	}{
		{"ecdsa-p256", ec256, jose.ES256},
		{"ecdsa-p384", ec384, jose.ES384},
		{"ed25519", ed, jose.EdDSA},
		{"rsa", rs, jose.RS256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, err := jws.Algorithm(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.alg, alg)

			g, err := jws.Sign([]byte(`{"hello":"world"}`), tt.key)
			require.NoError(t, err)
			require.Len(t, g.Signatures, 1)

			payload, err := jws.Verify(g, publicPEM(t, tt.key.Public()))
			require.NoError(t, err)
			assert.Equal(t, `{"hello":"world"}`, string(payload))
		})
	}
}

func TestVerify_Rejects(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	g, err := jws.Sign([]byte("payload"), key)
	require.NoError(t, err)

	_, err = jws.Verify(g, publicPEM(t, other.Public()))
	assert.ErrorIs(t, err, jws.ErrNoValidSignature)

	tampered := g
	tampered.Payload = "dGFtcGVyZWQ"
	_, err = jws.Verify(tampered, publicPEM(t, key.Public()))
	assert.ErrorIs(t, err, jws.ErrNoValidSignature)

	empty := model.JWSGeneral{Payload: g.Payload}
	_, err = jws.Verify(empty, publicPEM(t, key.Public()))
	assert.ErrorIs(t, err, jws.ErrNoValidSignature)
}

func TestVerifyNode_SecondSignatureMatches(t *testing.T) {
	a, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	_, b, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ga, err := jws.Sign([]byte("same"), a)
	require.NoError(t, err)
	gb, err := jws.Sign([]byte("same"), b)
	require.NoError(t, err)
	require.Equal(t, ga.Payload, gb.Payload)

	multi := model.JWSGeneral{
		Payload:    ga.Payload,
		Signatures: append(ga.Signatures, gb.Signatures...),
	}
	node := model.CactusNodeMeta{NodeAPIHost: "https://b.example.com", PublicKeyPEM: publicPEM(t, b.Public())}
	payload, err := jws.VerifyNode(multi, node)
	require.NoError(t, err)
	assert.Equal(t, "same", string(payload))
}

func TestSignJSON_Canonical(t *testing.T) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	g1, err := jws.SignJSON(map[string]any{"b": 2, "a": 1}, key)
	require.NoError(t, err)
	g2, err := jws.SignJSON(struct {
		A int `json:"a"`
		B int `json:"b"`
	}{1, 2}, key)
	require.NoError(t, err)
	assert.Equal(t, g1.Payload, g2.Payload)

	payload, err := jws.DecodePayload(g1)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(payload))
}

func TestParseCompact(t *testing.T) {
	g, err := jws.ParseCompact("aGVhZGVy.cGF5bG9hZA.c2ln")
	require.NoError(t, err)
	assert.Equal(t, "cGF5bG9hZA", g.Payload)
	assert.Equal(t, []model.JWSRecipient{{Protected: "aGVhZGVy", Signature: "c2ln"}}, g.Signatures)

	c, err := jws.Compact(g, 0)
	require.NoError(t, err)
	assert.Equal(t, model.JWSCompact("aGVhZGVy.cGF5bG9hZA.c2ln"), c)

	for _, bad := range []model.JWSCompact{"", "a.b", "a.b.c.d", "a+b.c.d", ".b.c"} {
		_, err := jws.ParseCompact(bad)
		assert.ErrorIs(t, err, jws.ErrMalformedCompact, "input %q", bad)
	}

	_, err = jws.Compact(g, 1)
	assert.Error(t, err)
	_, err = jws.Compact(model.JWSGeneral{Payload: "p", Signatures: []model.JWSRecipient{{Signature: "s"}}}, 0)
	assert.ErrorIs(t, err, jws.ErrMalformedCompact)
}

func TestSignedCompactMatchesSchema(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	g, err := jws.Sign([]byte("x"), key)
	require.NoError(t, err)
	c, err := jws.Compact(g, 0)
	require.NoError(t, err)

	v, _, err := validate.New(coreapi.Document(), validate.Options{})
	require.NoError(t, err)
	assert.NoError(t, v.Validate(coreapi.SchemaJWSCompact, c))
	assert.NoError(t, v.Validate(coreapi.SchemaJWSGeneral, g))
}

func TestParseCompactAgreesWithSchema(t *testing.T) {
	v, _, err := validate.New(coreapi.Document(), validate.Options{})
	require.NoError(t, err)

	long := strings.Repeat("a", coreapi.JWSCompactMaxLength)
	for _, in := range []string{
		"a.b.",
		"ab.c.",
		"a.b.c",
		"a.b.c.d",
		"a+b.cc.d",
		"." + long[:10] + ".x",
		long[:coreapi.JWSCompactMaxLength-4] + ".b.c",
		long[:coreapi.JWSCompactMaxLength-3] + ".b.c",
	} {
		_, parseErr := jws.ParseCompact(model.JWSCompact(in))
		schemaErr := v.Validate(coreapi.SchemaJWSCompact, in)
		assert.Equal(t, schemaErr == nil, parseErr == nil, "input of length %d: parse=%v schema=%v", len(in), parseErr, schemaErr)
	}

	_, err = jws.ParseCompact("a.b.")
	assert.ErrorIs(t, err, jws.ErrMalformedCompact)
}

func TestParsePublicKeyPEM(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pub, err := jws.ParsePublicKeyPEM(publicPEM(t, key.Public()))
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(pub))

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	priv := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	_, err = jws.ParsePublicKeyPEM(priv)
	assert.ErrorIs(t, err, jws.ErrPrivateKeyPEM)

	_, err = jws.ParsePublicKeyPEM("not pem")
	assert.Error(t, err)
}

func TestAlgorithm_Unsupported(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P224(), rand.Reader)
	require.NoError(t, err)
	_, err = jws.Algorithm(key)
	assert.ErrorIs(t, err, jws.ErrUnsupportedKey)
	_, err = jws.Sign([]byte("x"), key)
	assert.ErrorIs(t, err, jws.ErrUnsupportedKey)
}
