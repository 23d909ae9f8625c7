package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/stayzeef/rc-gamepad-configurator/pkg/model"
)

// PrintConfig writes cfg grouped like the firmware's config listing, with
// disabled inputs shown as "-".
func PrintConfig(w io.Writer, cfg model.Config) {
	fmt.Fprintf(w, "Protocol: %s\n", cfg.Protocol)
	for _, g := range []model.Group{model.GroupAxis, model.GroupHat, model.GroupButton} {
		fmt.Fprintf(w, "--- %s ---\n", groupTitle(g))
		for _, in := range model.InputsInGroup(g) {
			fmt.Fprintf(w, "  %-14s %s\n", in.Key(), channelText(cfg.Channel(in)))
		}
	}
	for _, warn := range cfg.DuplicateWarnings() {
		fmt.Fprintf(w, "Warning: %s\n", warn.Reason)
	}
}

func groupTitle(g model.Group) string {
	switch g {
	case model.GroupAxis:
		return "Axes"
	case model.GroupHat:
		return "Hat Switches"
	default:
		return "Buttons"
	}
}

func channelText(ch model.Channel) string {
	if !ch.Enabled() {
		return "-"
	}
	return strconv.Itoa(int(ch))
}

// PrintChannels writes a channel list on one line.
func PrintChannels(w io.Writer, in model.Input, chs []model.Channel) {
	fmt.Fprintf(w, "%s:", in.Key())
	for _, ch := range chs {
		if ch == model.ChannelDisabled {
			fmt.Fprint(w, " 0(off)")
			continue
		}
		fmt.Fprintf(w, " %d", ch)
	}
	fmt.Fprintln(w)
}
