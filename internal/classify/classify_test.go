package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidm/driver-scout/internal/oracle"
	"github.com/davidm/driver-scout/internal/types"
)

// fakeOracle returns a fixed response, or an error if set. It records the
// last prompt for assertions.
type fakeOracle struct {
	response string
	err      error
	prompt   string
}

func (f *fakeOracle) Query(_ context.Context, prompt string, _ oracle.ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeOracle) QueryJSON(_ context.Context, prompt string, _ oracle.ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeOracle) Close() error { return nil }

func inventoryWith(sections ...types.InventorySection) *types.RawInventory {
	return &types.RawInventory{Sections: sections}
}

func TestClassify_WellFormedResponse(t *testing.T) {
	fake := &fakeOracle{response: `{
		"CPU": {"model": "Cortex-A76", "vendor": "ARM"},
		"Wi-Fi": {"chipset": "BCM4339"},
		"GPU": {"model": "Mali-G610"}
	}`}
	c := New(fake)

	catalog, err := c.Classify(context.Background(), inventoryWith(
		types.InventorySection{Label: "cpu_info", Text: "processor : 0"},
	))
	require.NoError(t, err)

	require.Len(t, catalog.Components, 3)
	assert.Equal(t, "CPU", catalog.Components[0].Type)
	assert.Equal(t, "Wi-Fi", catalog.Components[1].Type)
	assert.Equal(t, "GPU", catalog.Components[2].Type)
	assert.Equal(t, map[string]string{"model": "Cortex-A76", "vendor": "ARM"}, catalog.Components[0].Details)
}

func TestClassify_PromptContainsInventorySections(t *testing.T) {
	fake := &fakeOracle{response: `{}`}
	c := New(fake)

	_, err := c.Classify(context.Background(), inventoryWith(
		types.InventorySection{Label: "cpu_info", Text: "model name : Kryo 680"},
		types.InventorySection{Label: "kernel_log", Text: "[0.1] usb 1-1: new device"},
	))
	require.NoError(t, err)

	assert.Contains(t, fake.prompt, "## cpu_info")
	assert.Contains(t, fake.prompt, "model name : Kryo 680")
	assert.Contains(t, fake.prompt, "## kernel_log")
}

func TestClassify_NonJSONResponseYieldsEmptyCatalog(t *testing.T) {
	fake := &fakeOracle{response: "I could not identify any hardware, sorry."}
	c := New(fake)

	catalog, err := c.Classify(context.Background(), inventoryWith())
	require.Error(t, err)

	var cerr *Error
	assert.True(t, errors.As(err, &cerr))
	assert.True(t, catalog.Empty())
}

func TestClassify_OracleFailureYieldsEmptyCatalog(t *testing.T) {
	fake := &fakeOracle{err: &oracle.ServiceError{Message: "deadline exceeded"}}
	c := New(fake)

	catalog, err := c.Classify(context.Background(), inventoryWith())
	require.Error(t, err)
	assert.True(t, catalog.Empty())
}

func TestClassify_NonObjectComponentValueRejected(t *testing.T) {
	fake := &fakeOracle{response: `{"CPU": "Cortex-A76"}`}
	c := New(fake)

	catalog, err := c.Classify(context.Background(), inventoryWith())
	require.Error(t, err)
	assert.True(t, catalog.Empty())
}

func TestDecodeCatalog_OrderPreserved(t *testing.T) {
	catalog, err := decodeCatalog(`{"Zeta": {}, "Alpha": {}, "Mid": {}}`)
	require.NoError(t, err)

	got := make([]string, 0, 3)
	for _, comp := range catalog.Components {
		got = append(got, comp.Type)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, got)
}

func TestDecodeCatalog_DuplicateTypeLastWins(t *testing.T) {
	catalog, err := decodeCatalog(`{
		"CPU": {"model": "old"},
		"GPU": {"model": "Mali"},
		"CPU": {"model": "new"}
	}`)
	require.NoError(t, err)

	require.Len(t, catalog.Components, 2)
	assert.Equal(t, "GPU", catalog.Components[0].Type)
	assert.Equal(t, "CPU", catalog.Components[1].Type)
	assert.Equal(t, "new", catalog.Components[1].Details["model"])
}

func TestDecodeCatalog_EmptyTypeDropped(t *testing.T) {
	catalog, err := decodeCatalog(`{"": {"model": "x"}, "CPU": {}}`)
	require.NoError(t, err)

	require.Len(t, catalog.Components, 1)
	assert.Equal(t, "CPU", catalog.Components[0].Type)
}

func TestDecodeCatalog_ScalarAttributesCoerced(t *testing.T) {
	catalog, err := decodeCatalog(`{"CPU": {"cores": 8, "64bit": true, "freq": {"max": "2.8GHz"}}}`)
	require.NoError(t, err)

	require.Len(t, catalog.Components, 1)
	assert.Equal(t, "8", catalog.Components[0].Details["cores"])
	assert.Equal(t, "true", catalog.Components[0].Details["64bit"])
	assert.Equal(t, `{"max":"2.8GHz"}`, catalog.Components[0].Details["freq"])
}

func TestValidateCatalogJSON(t *testing.T) {
	assert.NoError(t, validateCatalogJSON(`{"CPU": {"model": "x"}}`))
	assert.NoError(t, validateCatalogJSON(`{}`))
	assert.Error(t, validateCatalogJSON(`not json`))
	assert.Error(t, validateCatalogJSON(`["CPU"]`))
	assert.Error(t, validateCatalogJSON(`{"CPU": "bare string"}`))
}
