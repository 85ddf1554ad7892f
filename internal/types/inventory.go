package types

// InventorySection holds the trimmed output of one introspection command,
// keyed by its source label.
type InventorySection struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// RawInventory is the aggregate of all introspection commands that
// succeeded for one run. Sources whose command failed are simply absent.
// Sections keep the collector's battery order so serialization is
// deterministic. Immutable once the collector returns it.
type RawInventory struct {
	Sections []InventorySection `json:"sections"`
}

// Get returns the text collected under label, and whether it is present.
func (inv *RawInventory) Get(label string) (string, bool) {
	for _, s := range inv.Sections {
		if s.Label == label {
			return s.Text, true
		}
	}
	return "", false
}

// Labels returns the present source labels in collection order.
func (inv *RawInventory) Labels() []string {
	labels := make([]string, 0, len(inv.Sections))
	for _, s := range inv.Sections {
		labels = append(labels, s.Label)
	}
	return labels
}

// Empty reports whether every introspection command failed.
func (inv *RawInventory) Empty() bool {
	return inv == nil || len(inv.Sections) == 0
}
