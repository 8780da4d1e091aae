package consortium

import (
	"fmt"
	"strconv"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

// CheckReferences reports duplicate primary keys within each collection and
// identifier references that point at no entity. It returns nil or
// openapi.Issues.
func (r *Repository) CheckReferences() error {
	var iss openapi.Issues
	db := &r.db

	consortia := make(map[string]bool, len(db.Consortium))
	for i, c := range db.Consortium {
		iss = unique(iss, consortia, string(c.ID), "consortium", i)
	}
	members := make(map[string]bool, len(db.ConsortiumMember))
	for i, m := range db.ConsortiumMember {
		iss = unique(iss, members, string(m.ID), "consortiumMember", i)
	}
	nodes := make(map[string]bool, len(db.CactusNode))
	for i, n := range db.CactusNode {
		iss = unique(iss, nodes, string(n.ID), "cactusNode", i)
	}
	ledgers := make(map[string]bool, len(db.Ledger))
	for i, l := range db.Ledger {
		iss = unique(iss, ledgers, string(l.ID), "ledger", i)
	}
	plugins := make(map[string]bool, len(db.PluginInstance))
	for i, p := range db.PluginInstance {
		iss = unique(iss, plugins, string(p.ID), "pluginInstance", i)
	}

	for i, c := range db.Consortium {
		for j, id := range c.MemberIDs {
			iss = resolves(iss, members, string(id), "consortiumMember", "consortium", strconv.Itoa(i), "memberIds", strconv.Itoa(j))
		}
	}
	for i, m := range db.ConsortiumMember {
		for j, id := range m.NodeIDs {
			iss = resolves(iss, nodes, string(id), "cactusNode", "consortiumMember", strconv.Itoa(i), "nodeIds", strconv.Itoa(j))
		}
	}
	for i, n := range db.CactusNode {
		at := strconv.Itoa(i)
		iss = resolves(iss, consortia, string(n.ConsortiumID), "consortium", "cactusNode", at, "consortiumId")
		iss = resolves(iss, members, string(n.MemberID), "consortiumMember", "cactusNode", at, "memberId")
		for j, id := range n.LedgerIDs {
			iss = resolves(iss, ledgers, string(id), "ledger", "cactusNode", at, "ledgerIds", strconv.Itoa(j))
		}
		for j, id := range n.PluginInstanceIDs {
			iss = resolves(iss, plugins, string(id), "pluginInstance", "cactusNode", at, "pluginInstanceIds", strconv.Itoa(j))
		}
	}
	for i, l := range db.Ledger {
		if l.ConsortiumMemberID == "" {
			continue
		}
		iss = resolves(iss, members, string(l.ConsortiumMemberID), "consortiumMember", "ledger", strconv.Itoa(i), "consortiumMemberId")
	}
	return iss.Err()
}

func unique(iss openapi.Issues, seen map[string]bool, id, collection string, i int) openapi.Issues {
	if seen[id] {
		return openapi.AppendIssues(iss, issueAt(openapi.CodeUniqueness,
			fmt.Sprintf("duplicate %s id %q", collection, id), collection, strconv.Itoa(i), "id"))
	}
	seen[id] = true
	return iss
}

func resolves(iss openapi.Issues, known map[string]bool, id, target string, path ...string) openapi.Issues {
	if known[id] {
		return iss
	}
	is := issueAt(openapi.CodeUnresolvedRef, fmt.Sprintf("no %s with id %q", target, id), path...)
	is.Params = map[string]any{"target": target, "id": id}
	return openapi.AppendIssues(iss, is)
}
