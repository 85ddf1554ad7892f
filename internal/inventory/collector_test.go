package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidm/driver-scout/internal/transport"
)

// fakeRunner serves canned output per command, failing everything else.
type fakeRunner struct {
	outputs map[string]string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return "", &transport.Error{Kind: transport.KindExecutionFailed, Detail: "command failed: " + key}
}

func TestCollect_AllSourcesPresent(t *testing.T) {
	outputs := make(map[string]string)
	for _, src := range Sources {
		outputs[strings.Join(src.Args, " ")] = "output for " + src.Label
	}
	c := NewCollector(&fakeRunner{outputs: outputs}, 2)

	inv := c.Collect(context.Background())

	require.Len(t, inv.Sections, len(Sources))
	for i, src := range Sources {
		assert.Equal(t, src.Label, inv.Sections[i].Label)
		assert.Equal(t, "output for "+src.Label, inv.Sections[i].Text)
	}
}

func TestCollect_PartialFailureOmitsSources(t *testing.T) {
	c := NewCollector(&fakeRunner{outputs: map[string]string{
		"shell cat /proc/cpuinfo": "processor : 0\nmodel name : Cortex-A76",
		"shell dmesg":             "[0.000000] Booting Linux",
	}}, 0)

	inv := c.Collect(context.Background())

	// Only the succeeding sources appear, in battery order.
	assert.Equal(t, []string{"cpu_info", "kernel_log"}, inv.Labels())

	text, ok := inv.Get("cpu_info")
	assert.True(t, ok)
	assert.Contains(t, text, "Cortex-A76")

	_, ok = inv.Get("pci_devices")
	assert.False(t, ok)
}

func TestCollect_AllFailuresYieldEmptyInventory(t *testing.T) {
	c := NewCollector(&fakeRunner{outputs: map[string]string{}}, 3)

	inv := c.Collect(context.Background())

	assert.True(t, inv.Empty())
	assert.NotNil(t, inv)
}

func TestSources_FixedBattery(t *testing.T) {
	labels := make([]string, 0, len(Sources))
	for _, src := range Sources {
		labels = append(labels, src.Label)
	}
	assert.Equal(t, []string{
		"system_properties", "cpu_info", "device_classes", "device_nodes",
		"kernel_log", "pci_devices", "usb_devices",
	}, labels)
}
