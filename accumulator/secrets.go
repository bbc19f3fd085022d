package accumulator

import "github.com/dapol-go/dapol/secret"

// Secrets is the (master_secret, salt_b, salt_s) triple spec.md §3
// requires: master_secret derives per-entity/per-pad secrets, salt_b
// derives blinding factors, salt_s derives per-node salts. Grounded on
// original_source/src/accumulators/ndm_smt/ndm_smt_secrets.rs.
type Secrets struct {
	Master secret.Secret
	SaltB  secret.Secret
	SaltS  secret.Secret
}
