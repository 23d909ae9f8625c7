// Package transport provides the byte-stream link to the dongle.
//
// A Transport is opened for the duration of one operation, written to one
// command line at a time, and read with a timed wait:
//
//	t := transport.NewSerial("/dev/ttyACM0", transport.DefaultBaudRate)
//	if err := t.Open(); err != nil { ... } // *PortError
//	defer t.Close()
//	_ = t.Write([]byte("config\n"))
//	chunk, _ := t.WaitAndReadAvailable(time.Second)
//
// WaitAndReadAvailable returns an empty chunk when the window elapses without
// data; that is not an error.
package transport
