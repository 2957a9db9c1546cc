package wayland

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Client-assigned object ids (client range: 2–0xfeffffff). wl_display is
// always object 1.
const (
	objDisplay   uint32 = 1
	objRegistry  uint32 = 2
	objSyncA     uint32 = 3 // callback for the globals sync
	objSeat      uint32 = 4
	objDCManager uint32 = 5 // zwlr_data_control_manager_v1
	objDCSource  uint32 = 6 // zwlr_data_control_source_v1
	objDCDevice  uint32 = 7 // zwlr_data_control_device_v1
	objSyncB     uint32 = 8 // callback confirming selection ownership
)

// Serve claims the clipboard selection and blocks, answering each paste
// request by writing the bytes for the requested MIME type to the fd the
// compositor hands over. onReady, if non-nil, runs once the compositor has
// confirmed the selection claim. Serve returns when another client takes
// the selection (source cancelled) or the compositor goes away.
func Serve(formats map[string][]byte, onReady func()) error {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return fmt.Errorf("wayland: XDG_RUNTIME_DIR not set")
	}
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		display = "wayland-0"
	}

	sockPath := filepath.Join(runtimeDir, display)
	c, err := dial(sockPath)
	if err != nil {
		return fmt.Errorf("wayland: connect %s: %w", sockPath, err)
	}
	defer c.close()

	seatName, managerName, err := discoverGlobals(c)
	if err != nil {
		return err
	}

	if err := claimSelection(c, seatName, managerName, formats); err != nil {
		return err
	}
	if onReady != nil {
		onReady()
	}

	return serveLoop(c, formats)
}

// discoverGlobals asks for the registry and collects the global names of
// wl_seat and the wlr data-control manager, synchronizing on a wl_display
// sync callback so the full global list has been seen.
func discoverGlobals(c *conn) (seatName, managerName uint32, err error) {
	if err = c.request(objDisplay, 1 /*get_registry*/, putUint32(objRegistry)); err != nil {
		return
	}
	if err = c.request(objDisplay, 0 /*sync*/, putUint32(objSyncA)); err != nil {
		return
	}

	var seatFound, managerFound bool
	for {
		objectID, opcode, payload, fd, evErr := c.event()
		if evErr != nil {
			err = evErr
			return
		}
		if fd >= 0 {
			syscall.Close(fd) //nolint:errcheck
		}

		switch {
		case objectID == objRegistry && opcode == 0 /*global*/:
			if len(payload) < 4 {
				continue
			}
			name := order.Uint32(payload[:4])
			iface, _, decErr := getString(payload[4:])
			if decErr != nil {
				continue
			}
			switch iface {
			case "wl_seat":
				seatName = name
				seatFound = true
			case "zwlr_data_control_manager_v1":
				managerName = name
				managerFound = true
			}

		case objectID == objSyncA && opcode == 0 /*done*/:
			if !seatFound {
				err = fmt.Errorf("wayland: wl_seat not found")
				return
			}
			if !managerFound {
				err = fmt.Errorf("wayland: zwlr_data_control_manager_v1 not found (compositor may not support wlr-data-control)")
				return
			}
			return
		}
	}
}

// claimSelection binds the globals, creates a data source offering every
// MIME type, and sets it as the selection. A second sync confirms the
// compositor processed the claim before the serve loop starts.
func claimSelection(c *conn, seatName, managerName uint32, formats map[string][]byte) error {
	// wl_registry.bind encodes new_id inline: name, interface, version, id.
	if err := c.request(objRegistry, 0 /*bind*/, args(
		putUint32(seatName),
		putString("wl_seat"),
		putUint32(1),
		putUint32(objSeat),
	)); err != nil {
		return err
	}
	if err := c.request(objRegistry, 0 /*bind*/, args(
		putUint32(managerName),
		putString("zwlr_data_control_manager_v1"),
		putUint32(2),
		putUint32(objDCManager),
	)); err != nil {
		return err
	}

	if err := c.request(objDCManager, 0 /*create_data_source*/, putUint32(objDCSource)); err != nil {
		return err
	}
	for mimeType := range formats {
		if err := c.request(objDCSource, 0 /*offer*/, putString(mimeType)); err != nil {
			return err
		}
	}

	if err := c.request(objDCManager, 1 /*get_data_device*/, args(
		putUint32(objDCDevice),
		putUint32(objSeat),
	)); err != nil {
		return err
	}
	if err := c.request(objDCDevice, 0 /*set_selection*/, putUint32(objDCSource)); err != nil {
		return err
	}

	if err := c.request(objDisplay, 0 /*sync*/, putUint32(objSyncB)); err != nil {
		return err
	}
	for {
		objectID, opcode, _, fd, err := c.event()
		if err != nil {
			return err
		}
		if fd >= 0 {
			syscall.Close(fd) //nolint:errcheck
		}
		if objectID == objSyncB && opcode == 0 /*done*/ {
			return nil
		}
	}
}

func serveLoop(c *conn, formats map[string][]byte) error {
	for {
		objectID, opcode, payload, fd, err := c.event()
		if err != nil {
			// Connection closed means the compositor exited; nothing left
			// to serve.
			return nil
		}

		if objectID != objDCSource {
			if fd >= 0 {
				syscall.Close(fd) //nolint:errcheck
			}
			continue
		}

		switch opcode {
		case 0: // zwlr_data_control_source_v1.send
			mimeType, _, _ := getString(payload)
			if fd >= 0 {
				if data, ok := formats[mimeType]; ok {
					syscall.Write(fd, data) //nolint:errcheck
				}
				syscall.Close(fd) //nolint:errcheck
			}
		case 1: // zwlr_data_control_source_v1.cancelled
			return nil
		}
	}
}
