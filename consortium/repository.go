// Package consortium answers questions about a ConsortiumDatabase snapshot:
// which nodes exist, which ledgers they route to and which member operates
// what. It also checks the identifier references between entities, which
// the schema itself cannot express.
package consortium

import (
	"fmt"
	"slices"

	json "github.com/goccy/go-json"

	"github.com/hyperledger/cactus-core-api-go/model"
	"github.com/hyperledger/cactus-core-api-go/openapi"
	"github.com/hyperledger/cactus-core-api-go/validate"
)

// SchemaName is the component schema a snapshot validates against.
const SchemaName = "ConsortiumDatabase"

// Repository is a read-only view over a snapshot.
type Repository struct {
	db model.ConsortiumDatabase
}

// NewRepository deep copies db, identifier lists included, so later
// changes to the caller's snapshot are not observed. Nil collections
// become empty ones.
func NewRepository(db *model.ConsortiumDatabase) *Repository {
	if db == nil {
		db = &model.ConsortiumDatabase{}
	}
	return &Repository{db: cloneDatabase(db)}
}

// Decode builds a Repository from a JSON encoded snapshot. It does not
// validate; see Validate and CheckReferences.
func Decode(data []byte) (*Repository, error) {
	var db model.ConsortiumDatabase
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("consortium: decode database: %w", err)
	}
	return NewRepository(&db), nil
}

func cloneDatabase(db *model.ConsortiumDatabase) model.ConsortiumDatabase {
	return model.ConsortiumDatabase{
		Consortium:       cloneEach(db.Consortium, cloneConsortium),
		Ledger:           cloneEach(db.Ledger, nil),
		ConsortiumMember: cloneEach(db.ConsortiumMember, cloneMember),
		CactusNode:       cloneEach(db.CactusNode, cloneNode),
		PluginInstance:   cloneEach(db.PluginInstance, nil),
	}
}

// cloneEach returns a non-nil copy of in with fn applied to every entry.
// A nil fn copies entries as they are.
func cloneEach[T any](in []T, fn func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		if fn != nil {
			v = fn(v)
		}
		out[i] = v
	}
	return out
}

func cloneConsortium(c model.Consortium) model.Consortium {
	c.MemberIDs = slices.Clone(c.MemberIDs)
	return c
}

func cloneMember(m model.ConsortiumMember) model.ConsortiumMember {
	m.NodeIDs = slices.Clone(m.NodeIDs)
	return m
}

func cloneNode(n model.CactusNode) model.CactusNode {
	n.PluginInstanceIDs = slices.Clone(n.PluginInstanceIDs)
	n.LedgerIDs = slices.Clone(n.LedgerIDs)
	return n
}

// Database returns a deep copy of the snapshot.
func (r *Repository) Database() model.ConsortiumDatabase {
	return cloneDatabase(&r.db)
}

// Consortium returns the first consortium of the snapshot. In practice a
// snapshot holds exactly one.
func (r *Repository) Consortium() (model.Consortium, bool) {
	if len(r.db.Consortium) == 0 {
		return model.Consortium{}, false
	}
	return cloneConsortium(r.db.Consortium[0]), true
}

func (r *Repository) NodeCount() int   { return len(r.db.CactusNode) }
func (r *Repository) LedgerCount() int { return len(r.db.Ledger) }
func (r *Repository) MemberCount() int { return len(r.db.ConsortiumMember) }

// AllNodes returns every node in snapshot order.
func (r *Repository) AllNodes() []model.CactusNode {
	return cloneEach(r.db.CactusNode, cloneNode)
}

func (r *Repository) NodeByID(id model.CactusNodeID) (model.CactusNode, bool) {
	n, ok := find(r.db.CactusNode, func(n model.CactusNode) bool { return n.ID == id })
	return cloneNode(n), ok
}

// NodesWithLedger returns the nodes that can route requests to the ledger.
func (r *Repository) NodesWithLedger(id model.LedgerID) []model.CactusNode {
	var out []model.CactusNode
	for _, n := range r.db.CactusNode {
		if slices.Contains(n.LedgerIDs, id) {
			out = append(out, cloneNode(n))
		}
	}
	return out
}

func (r *Repository) LedgerByID(id model.LedgerID) (model.Ledger, bool) {
	return find(r.db.Ledger, func(l model.Ledger) bool { return l.ID == id })
}

func (r *Repository) MemberByID(id model.ConsortiumMemberID) (model.ConsortiumMember, bool) {
	m, ok := find(r.db.ConsortiumMember, func(m model.ConsortiumMember) bool { return m.ID == id })
	return cloneMember(m), ok
}

// MembersOf returns the members listed by the consortium, skipping ids
// that do not resolve.
func (r *Repository) MembersOf(c model.Consortium) []model.ConsortiumMember {
	var out []model.ConsortiumMember
	for _, id := range c.MemberIDs {
		if m, ok := r.MemberByID(id); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *Repository) PluginInstanceByID(id model.PluginInstanceID) (model.PluginInstance, bool) {
	return find(r.db.PluginInstance, func(p model.PluginInstance) bool { return p.ID == id })
}

// Validate checks the snapshot against the ConsortiumDatabase schema.
func (r *Repository) Validate(v *validate.Validator) error {
	if err := v.Validate(SchemaName, r.db); err != nil {
		return fmt.Errorf("consortium: invalid database: %w", err)
	}
	return nil
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// issueAt builds an issue pointing into the snapshot.
func issueAt(code, msg string, tokens ...string) openapi.Issue {
	return openapi.Issue{Path: openapi.JoinPointer("", tokens...), Code: code, Message: msg}
}
