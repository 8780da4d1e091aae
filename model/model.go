// Package model contains Go types for the component schemas of the Cactus
// core API document. JSON field names match the document; optional fields
// are omitted when empty.
package model

// PrimaryKey is a non-empty string of at most 128 characters.
type PrimaryKey string

// Identifiers.
type (
	ConsortiumID       PrimaryKey
	ConsortiumMemberID PrimaryKey
	CactusNodeID       PrimaryKey
	LedgerID           PrimaryKey
	PluginInstanceID   PrimaryKey
)

// Ledger is a distributed ledger reachable through the consortium.
type Ledger struct {
	ID         LedgerID   `json:"id"`
	LedgerType LedgerType `json:"ledgerType"`
	// ConsortiumMemberID is empty for permissionless ledgers that no
	// member operates.
	ConsortiumMemberID ConsortiumMemberID `json:"consortiumMemberId,omitempty"`
}

type Consortium struct {
	ID          ConsortiumID         `json:"id"`
	Name        string               `json:"name"`
	MainAPIHost string               `json:"mainApiHost"`
	MemberIDs   []ConsortiumMemberID `json:"memberIds"`
}

type ConsortiumMember struct {
	ID      ConsortiumMemberID `json:"id"`
	Name    string             `json:"name"`
	NodeIDs []CactusNodeID     `json:"nodeIds"`
}

// CactusNodeMeta is the part of a node other parties need to reach it and
// check its signatures.
type CactusNodeMeta struct {
	NodeAPIHost string `json:"nodeApiHost"`
	// PublicKeyPEM holds only a public key, never a private one.
	PublicKeyPEM string `json:"publicKeyPem"`
}

// CactusNode is a single server, or a set of servers behind a load balancer
// acting as one.
type CactusNode struct {
	CactusNodeMeta
	ID                CactusNodeID       `json:"id"`
	ConsortiumID      ConsortiumID       `json:"consortiumId"`
	MemberID          ConsortiumMemberID `json:"memberId"`
	PluginInstanceIDs []PluginInstanceID `json:"pluginInstanceIds"`
	LedgerIDs         []LedgerID         `json:"ledgerIds"`
}

type PluginInstance struct {
	ID          PluginInstanceID `json:"id"`
	PackageName string           `json:"packageName"`
}

// ConsortiumDatabase is a snapshot of the complete consortium state.
type ConsortiumDatabase struct {
	Consortium       []Consortium       `json:"consortium"`
	Ledger           []Ledger           `json:"ledger"`
	ConsortiumMember []ConsortiumMember `json:"consortiumMember"`
	CactusNode       []CactusNode       `json:"cactusNode"`
	PluginInstance   []PluginInstance   `json:"pluginInstance"`
}

// JWSCompact is a JSON Web Signature in compact serialization
// (RFC 7515 section 7.1).
type JWSCompact string

// JWSRecipient is one signature of a JWSGeneral.
type JWSRecipient struct {
	Signature string         `json:"signature"`
	Protected string         `json:"protected,omitempty"`
	Header    map[string]any `json:"header,omitempty"`
}

// JWSGeneral is a JSON Web Signature in general JSON serialization
// (RFC 7515 section 7.2.1).
type JWSGeneral struct {
	Payload    string         `json:"payload"`
	Signatures []JWSRecipient `json:"signatures"`
}
