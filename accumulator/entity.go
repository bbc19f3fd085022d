package accumulator

// Entity is one input to the accumulator: a liability attributed to an id.
// There is a 1-1 mapping from Entity to a bottom-layer leaf node. Grounded
// on original_source/src/entity.rs's Entity/EntityId.
type Entity struct {
	ID        string
	Liability uint64
}

func validateEntities(entities []Entity) error {
	for _, e := range entities {
		if len(e.ID) > maxEntityIDBytes {
			return ErrEntityIDTooLong
		}
	}
	return nil
}

// maxEntityIDBytes matches secret.MaxLengthBytes. The id is hashed into the
// leaf; per-entity secrets are derived from the master secret and the
// entity's x-coordinate, not from the id.
const maxEntityIDBytes = 32
