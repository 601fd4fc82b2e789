package diet

import (
	"encoding/json"
	"sort"
)

// FoodSet is an unordered set of food names. It encodes as a sorted JSON
// array so output is stable.
type FoodSet map[string]struct{}

// NewFoodSet builds a set from items.
func NewFoodSet(items ...string) FoodSet {
	fs := make(FoodSet, len(items))
	fs.Add(items...)
	return fs
}

// Add inserts items.
func (fs FoodSet) Add(items ...string) {
	for _, it := range items {
		fs[it] = struct{}{}
	}
}

// Remove deletes items that are present.
func (fs FoodSet) Remove(items ...string) {
	for _, it := range items {
		delete(fs, it)
	}
}

// Has reports membership.
func (fs FoodSet) Has(item string) bool {
	_, ok := fs[item]
	return ok
}

// Sorted returns the items in ascending order.
func (fs FoodSet) Sorted() []string {
	out := make([]string, 0, len(fs))
	for it := range fs {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON implements json.Marshaler.
func (fs FoodSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(fs.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
func (fs *FoodSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*fs = NewFoodSet(items...)
	return nil
}
