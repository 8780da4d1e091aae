package model

// LedgerType names a ledger vendor and major version range. BESU_1X covers
// [1.0.0, 2.0.0).
type LedgerType string

const (
	LedgerTypeBesu1X     LedgerType = "BESU_1X"
	LedgerTypeBesu2X     LedgerType = "BESU_2X"
	LedgerTypeBurrow0X   LedgerType = "BURROW_0X"
	LedgerTypeCorda4X    LedgerType = "CORDA_4X"
	LedgerTypeFabric14X  LedgerType = "FABRIC_14X"
	LedgerTypeFabric2    LedgerType = "FABRIC_2"
	LedgerTypeQuorum2X   LedgerType = "QUORUM_2X"
	LedgerTypeSawtooth1X LedgerType = "SAWTOOTH_1X"
)

// LedgerTypes returns every LedgerType in declaration order.
func LedgerTypes() []LedgerType {
	return []LedgerType{
		LedgerTypeBesu1X,
		LedgerTypeBesu2X,
		LedgerTypeBurrow0X,
		LedgerTypeCorda4X,
		LedgerTypeFabric14X,
		LedgerTypeFabric2,
		LedgerTypeQuorum2X,
		LedgerTypeSawtooth1X,
	}
}

func (t LedgerType) Valid() bool {
	for _, v := range LedgerTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// ConsensusAlgorithmFamily groups consensus algorithms by the guarantees
// Cactus relies on.
type ConsensusAlgorithmFamily string

const (
	ConsensusAlgorithmFamilyAuthority ConsensusAlgorithmFamily = "org.hyperledger.cactus.consensusalgorithm.PROOF_OF_AUTHORITY"
	ConsensusAlgorithmFamilyStake     ConsensusAlgorithmFamily = "org.hyperledger.cactus.consensusalgorithm.PROOF_OF_STAKE"
	ConsensusAlgorithmFamilyWork      ConsensusAlgorithmFamily = "org.hyperledger.cactus.consensusalgorithm.PROOF_OF_WORK"
)

// ConsensusAlgorithmFamilies returns every family in declaration order.
func ConsensusAlgorithmFamilies() []ConsensusAlgorithmFamily {
	return []ConsensusAlgorithmFamily{
		ConsensusAlgorithmFamilyAuthority,
		ConsensusAlgorithmFamilyStake,
		ConsensusAlgorithmFamilyWork,
	}
}

func (f ConsensusAlgorithmFamily) Valid() bool {
	for _, v := range ConsensusAlgorithmFamilies() {
		if f == v {
			return true
		}
	}
	return false
}
