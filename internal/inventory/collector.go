// Package inventory collects raw hardware-introspection output from an
// attached device by running a fixed battery of commands through the
// transport.
package inventory

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/davidm/driver-scout/internal/transport"
	"github.com/davidm/driver-scout/internal/types"
)

// Source pairs a RawInventory label with the device command that produces
// its text.
type Source struct {
	Label string
	Args  []string
}

// Sources is the introspection battery. Order is fixed: it determines the
// section order of the RawInventory and therefore the blob the classifier
// sees.
var Sources = []Source{
	{Label: "system_properties", Args: []string{"shell", "getprop"}},
	{Label: "cpu_info", Args: []string{"shell", "cat", "/proc/cpuinfo"}},
	{Label: "device_classes", Args: []string{"shell", "ls", "-R", "/sys/class"}},
	{Label: "device_nodes", Args: []string{"shell", "ls", "-l", "/dev"}},
	{Label: "kernel_log", Args: []string{"shell", "dmesg"}},
	{Label: "pci_devices", Args: []string{"shell", "ls", "-l", "/sys/bus/pci/devices"}},
	{Label: "usb_devices", Args: []string{"shell", "ls", "-l", "/sys/bus/usb/devices"}},
}

// DefaultConcurrency bounds how many introspection commands run against the
// device at once.
const DefaultConcurrency = 4

// Collector runs the introspection battery and aggregates the results.
type Collector struct {
	runner      transport.Runner
	sources     []Source
	concurrency int
}

// NewCollector creates a collector over the given transport. A concurrency
// of zero or less uses DefaultConcurrency.
func NewCollector(runner transport.Runner, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Collector{
		runner:      runner,
		sources:     Sources,
		concurrency: concurrency,
	}
}

// Collect runs every source command and returns the aggregate inventory.
// A failing command only omits its own section; an all-failure run yields
// an empty inventory, not an error. Commands run concurrently, bounded so
// the device bridge is not overwhelmed.
func (c *Collector) Collect(ctx context.Context) *types.RawInventory {
	results := make([]*string, len(c.sources))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, src := range c.sources {
		i, src := i, src
		g.Go(func() error {
			out, err := c.runner.Run(ctx, src.Args...)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: introspection source %s failed: %v\n", src.Label, err)
				return nil
			}
			results[i] = &out
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures are tolerated above

	inv := &types.RawInventory{}
	for i, src := range c.sources {
		if results[i] != nil {
			inv.Sections = append(inv.Sections, types.InventorySection{
				Label: src.Label,
				Text:  *results[i],
			})
		}
	}
	return inv
}
