// Package coreapi holds the Cactus core API document: an OpenAPI 3.0.3
// description of the types shared by Cactus plugins (identifiers, the
// consortium/ledger/node data model and JSON Web Signature structures).
//
// The document declares no endpoints; plugins import the component schemas
// into their own API descriptions and generate bindings from them.
//
// Layout:
//
//   - openapi/   document model, JSON/YAML codecs and structural check
//   - validate/  compiles component schemas into instance validators
//   - model/     Go types mirroring the component schemas
//   - consortium/ lookups and integrity checks over a ConsortiumDatabase
//   - jws/       compact/general JWS conversion, signing and verification
//   - cmd/cactus-openapi  exporter CLI
//
// Typical usage:
//
//	doc := coreapi.Document()
//	b, err := coreapi.JSON()
//	err = coreapi.ExportToFileSystemAsJSON(ctx, "json/generated/openapi-spec.json")
package coreapi

//go:generate go run ./cmd/cactus-openapi
