package transport

import (
	"context"
	"strings"
)

// Device is one entry from `adb devices`.
type Device struct {
	Serial string
	State  string
}

// ListDevices returns the devices currently visible to the transport.
func ListDevices(ctx context.Context, r Runner) ([]Device, error) {
	out, err := r.Run(ctx, "devices")
	if err != nil {
		return nil, err
	}
	return parseDevices(out), nil
}

// parseDevices parses `adb devices` output. The first line is a banner;
// each following non-empty line is "<serial>\t<state>".
func parseDevices(out string) []Device {
	var devices []Device
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(line, "List of devices") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		devices = append(devices, Device{Serial: fields[0], State: fields[1]})
	}
	return devices
}
