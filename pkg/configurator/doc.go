// Package configurator ties the dongle configuration model to the device and
// to configuration files.
//
// A Configurator owns the working configuration. Edits go through the
// channel exclusivity rules of the model package, while device and file
// loads store values as found and report duplicates as warnings. Progress,
// warnings and errors are delivered as events to a log.Logger, so a
// presentation layer subscribes to the event stream instead of polling:
//
//	events := log.NewChanLogger(64)
//	c := configurator.New(configurator.Config{
//		Transport: transport.NewSerial("/dev/ttyACM0", 115200),
//		Events:    events,
//	})
//	go func() {
//		for ev := range events.Events() {
//			fmt.Println(log.Format(ev))
//		}
//	}()
//	if _, err := c.LoadFromDevice(); err != nil {
//		...
//	}
package configurator
