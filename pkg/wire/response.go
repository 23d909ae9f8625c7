package wire

import (
	"fmt"
	"strings"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

// FormatConfig renders cfg the way the firmware answers a config command:
// uppercase keys grouped into axes, hat switches and buttons.
func FormatConfig(cfg model.Config) string {
	var b strings.Builder

	b.WriteString("\n" + SectionMarker + "\n")
	protocol := "Unknown"
	if cfg.Protocol.Transmits() {
		protocol = strings.ToUpper(cfg.Protocol.String())
	}
	fmt.Fprintf(&b, "Protocol: %s\n", protocol)

	writeGroup := func(title string, g model.Group) {
		fmt.Fprintf(&b, "\n--- %s ---\n", title)
		for _, in := range model.InputsInGroup(g) {
			fmt.Fprintf(&b, "%s: %d\n", strings.ToUpper(in.Key()), cfg.Channel(in))
		}
	}
	writeGroup("Axes", model.GroupAxis)
	writeGroup("Hat Switches", model.GroupHat)
	writeGroup("Buttons", model.GroupButton)

	b.WriteString("=============================\n")
	return b.String()
}
