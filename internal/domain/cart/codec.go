// internal/domain/cart/codec.go
package cart

import (
	"encoding/json"
	"fmt"
)

const stateVersion = 1

type persistedState struct {
	Version int        `json:"version"`
	Items   []LineItem `json:"items"`
}

// MarshalState serializes a cart, including full product snapshots
func MarshalState(state State) ([]byte, error) {
	items := state.Items
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(persistedState{Version: stateVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a persisted cart. Records that break the cart
// invariants are rejected with ErrCorruptState; duplicate keys are merged.
func UnmarshalState(data []byte) (State, error) {
	var persisted persistedState
	if err := json.Unmarshal(data, &persisted); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if persisted.Version != stateVersion {
		return State{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptState, persisted.Version)
	}

	state := State{Items: make([]LineItem, 0, len(persisted.Items))}
	index := make(map[LineKey]int, len(persisted.Items))
	for i, item := range persisted.Items {
		switch {
		case item.Product.ID == "":
			return State{}, fmt.Errorf("%w: item %d has no product id", ErrCorruptState, i)
		case !item.Size.IsValid():
			return State{}, fmt.Errorf("%w: item %d has unknown size %q", ErrCorruptState, i, item.Size)
		case item.Quantity < 1:
			return State{}, fmt.Errorf("%w: item %d has quantity %d", ErrCorruptState, i, item.Quantity)
		}

		if existing, ok := index[item.Key()]; ok {
			state.Items[existing].Quantity += item.Quantity
			continue
		}
		index[item.Key()] = len(state.Items)
		state.Items = append(state.Items, item)
	}
	return state, nil
}
