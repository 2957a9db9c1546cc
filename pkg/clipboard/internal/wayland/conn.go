// Package wayland implements just enough of the Wayland wire protocol to
// own the clipboard selection via zwlr_data_control_v1 and serve the offered
// MIME types on demand. No compositor library is involved; the protocol is
// spoken raw over the compositor's unix socket.
package wayland

import (
	"encoding/binary"
	"fmt"
	"syscall"
)

var order = binary.LittleEndian

// conn is a buffered connection to the compositor socket. Incoming file
// descriptors from SCM_RIGHTS ancillary data are queued in arrival order and
// paired with messages as they are decoded.
type conn struct {
	fd        int
	readBuf   []byte
	queuedFds []int
}

func dial(sockPath string) (*conn, error) {
	fd, err := syscall.Socket(syscall.AF_UNIX, syscall.SOCK_STREAM, 0)
	if err != nil {
		return nil, err
	}
	if err := syscall.Connect(fd, &syscall.SockaddrUnix{Name: sockPath}); err != nil {
		syscall.Close(fd) //nolint:errcheck
		return nil, err
	}
	return &conn{fd: fd}, nil
}

func (c *conn) close() {
	syscall.Close(c.fd) //nolint:errcheck
}

// request sends one Wayland request: 32-bit object id, then opcode in the
// low 16 bits and total size in the high 16 bits of the second word.
func (c *conn) request(objectID uint32, opcode uint16, args []byte) error {
	size := uint16(8 + len(args))
	msg := make([]byte, size)
	order.PutUint32(msg[0:], objectID)
	order.PutUint32(msg[4:], uint32(opcode)|uint32(size)<<16)
	copy(msg[8:], args)
	_, err := syscall.Write(c.fd, msg)
	return err
}

// event blocks until a complete event is buffered and returns it together
// with an ancillary fd, or -1 when the message carried none.
func (c *conn) event() (objectID uint32, opcode uint16, payload []byte, fd int, err error) {
	fd = -1
	for {
		if len(c.readBuf) >= 8 {
			word := order.Uint32(c.readBuf[4:8])
			size := int(word >> 16)
			if size >= 8 && len(c.readBuf) >= size {
				objectID = order.Uint32(c.readBuf[0:4])
				opcode = uint16(word & 0xffff)
				payload = make([]byte, size-8)
				copy(payload, c.readBuf[8:size])
				c.readBuf = c.readBuf[size:]
				if len(c.queuedFds) > 0 {
					fd = c.queuedFds[0]
					c.queuedFds = c.queuedFds[1:]
				}
				return
			}
		}

		if err = c.fill(); err != nil {
			return
		}
	}
}

func (c *conn) fill() error {
	buf := make([]byte, 4096)
	oob := make([]byte, syscall.CmsgSpace(4*8)) // room for up to 8 fds
	n, oobn, _, _, err := syscall.Recvmsg(c.fd, buf, oob, 0)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("wayland: connection closed")
	}
	c.readBuf = append(c.readBuf, buf[:n]...)

	if oobn > 0 {
		msgs, err := syscall.ParseSocketControlMessage(oob[:oobn])
		if err != nil {
			return nil
		}
		for _, m := range msgs {
			if fds, err := syscall.ParseUnixRights(&m); err == nil {
				c.queuedFds = append(c.queuedFds, fds...)
			}
		}
	}
	return nil
}

func putUint32(v uint32) []byte {
	b := make([]byte, 4)
	order.PutUint32(b, v)
	return b
}

// putString encodes a Wayland string argument: uint32 length including the
// null terminator, the bytes, then padding to 4-byte alignment.
func putString(s string) []byte {
	raw := append([]byte(s), 0)
	padded := (len(raw) + 3) &^ 3
	b := make([]byte, 4+padded)
	order.PutUint32(b[0:], uint32(len(raw)))
	copy(b[4:], raw)
	return b
}

// getString decodes a Wayland string argument, returning the remainder of
// the payload after it.
func getString(data []byte) (string, []byte, error) {
	if len(data) < 4 {
		return "", data, fmt.Errorf("wayland: short string length field")
	}
	length := int(order.Uint32(data[:4]))
	data = data[4:]
	if length == 0 {
		return "", data, nil
	}
	padded := (length + 3) &^ 3
	if len(data) < padded {
		return "", data, fmt.Errorf("wayland: short string data")
	}
	s := string(data[:length-1]) // drop the null terminator
	return s, data[padded:], nil
}

func args(parts ...[]byte) []byte {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
