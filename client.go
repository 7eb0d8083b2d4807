package amt8000

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/caarlos0/sync/cio"
	logp "github.com/charmbracelet/log"
	"github.com/j-keck/arping"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "isecnet",
})

// DefaultTimeout bounds the dial and every read unless WithTimeout says
// otherwise.
const DefaultTimeout = 2 * time.Second

// AllPartitions arms or disarms every partition at once.
const AllPartitions = 0xff

const (
	subCmdDisarm = 0x00
	subCmdArm    = 0x01
)

// Panic kinds.
const (
	PanicSilent  byte = 0x00
	PanicAudible byte = 0x01
	PanicFire    byte = 0x02
)

const (
	armAck   = 0x91
	panicAck = 0xfe
)

type sessionState byte

const (
	stateDisconnected sessionState = iota
	stateConnected
	stateAuthenticated
)

// Client talks to an AMT-8000 central over TCP. It is not safe for
// concurrent use, commands are strict request and reply exchanges on a
// single connection.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	state   sessionState
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the dial and read timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the central at host:port. Nothing is dialed
// until Connect.
func New(host, port string, opts ...Option) *Client {
	cli := &Client{
		addr:    net.JoinHostPort(host, port),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// MacAddress finds the mac address of the central in the given IP.
func MacAddress(ip string) (string, error) {
	hw, _, err := arping.Ping(net.ParseIP(ip))
	if err != nil {
		return "", fmt.Errorf("could not get the mac address: %w", err)
	}
	return hw.String(), nil
}

// Connect dials the central.
func (c *Client) Connect() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("could not connect: %w", err)
	}
	c.conn = conn
	c.state = stateConnected
	return nil
}

// Auth authenticates the session. The password must be exactly 6 digits,
// anything else is rejected before a single byte goes out.
func (c *Client) Auth(password string) error {
	if c.state == stateDisconnected {
		return ErrNotConnected
	}
	if !validPassword(password) {
		return ErrPasswordFormat
	}
	log.Debug("auth")
	raw, err := c.roundTrip(makeAuthFrame(password))
	if err != nil {
		return fmt.Errorf("could not auth: %w", err)
	}
	payload := framePayload(raw)
	if len(payload) == 0 {
		return fmt.Errorf("could not auth: empty response")
	}
	switch payload[0] {
	case 0:
		c.state = stateAuthenticated
		return nil
	case 1:
		return ErrInvalidPassword
	case 2:
		return ErrIncorrectSoftwareVersion
	case 3:
		return ErrPanelCallback
	case 4:
		return ErrWaitingPermission
	default:
		return fmt.Errorf("could not auth: unknown result 0x%02x", payload[0])
	}
}

// RawStatus asks the central for its status report and returns the raw
// response frame. DecodeStatus turns it into a Status.
func (c *Client) RawStatus() ([]byte, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	log.Debug("status")
	raw, err := c.roundTrip(makeFrame(cmdStatus, nil))
	if err != nil {
		return nil, fmt.Errorf("could not gather status: %w", err)
	}
	return raw, nil
}

// Arm arms the given partition, or every one of them when partition is 0,
// and reports whether the central acknowledged it.
func (c *Client) Arm(partition int) (bool, error) {
	log.Debug("arm", "partition", partition)
	return c.armDisarm("arm", partition, subCmdArm)
}

// Disarm disarms the given partition, or every one of them when partition
// is 0, and reports whether the central acknowledged it.
func (c *Client) Disarm(partition int) (bool, error) {
	log.Debug("disarm", "partition", partition)
	return c.armDisarm("disarm", partition, subCmdDisarm)
}

func (c *Client) armDisarm(op string, partition int, sub byte) (bool, error) {
	if err := c.requireAuth(); err != nil {
		return false, err
	}
	part := byte(partition)
	if partition == 0 {
		part = AllPartitions
	}
	raw, err := c.roundTrip(makeFrame(cmdArm, []byte{part, sub}))
	if err != nil {
		return false, fmt.Errorf("could not %s partition %d: %w", op, partition, err)
	}
	return len(raw) > 8 && raw[8] == armAck, nil
}

// Panic triggers a panic event of the given kind and reports whether the
// central acknowledged it. The acknowledgment frame is one byte shorter
// than the arm one, the marker sits at offset 7.
func (c *Client) Panic(kind byte) (bool, error) {
	if err := c.requireAuth(); err != nil {
		return false, err
	}
	log.Debug("panic", "kind", kind)
	raw, err := c.roundTrip(makeFrame(cmdPanic, []byte{kind}))
	if err != nil {
		return false, fmt.Errorf("could not panic: %w", err)
	}
	return len(raw) > 7 && raw[7] == panicAck, nil
}

// PairedSensors returns the 1-based numbers of the zones with a sensor
// paired, in ascending order.
func (c *Client) PairedSensors() ([]int, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	log.Debug("paired sensors")
	raw, err := c.roundTrip(makeFrame(cmdPairedSensors, nil))
	if err != nil {
		return nil, fmt.Errorf("could not list paired sensors: %w", err)
	}
	payload := framePayload(raw)
	var zones []int
	for i := 0; i < 8 && i < len(payload); i++ {
		for j := 0; j < 8; j++ {
			if payload[i]&(1<<j) > 0 {
				zones = append(zones, i*8+j+1)
			}
		}
	}
	return zones, nil
}

// Close tells the central we are leaving and closes the connection. Closing
// a client that never connected, or closing twice, is a no-op.
func (c *Client) Close() error {
	if c.state == stateDisconnected {
		return nil
	}
	_, _ = c.conn.Write(makeFrame(cmdDisconnect, nil))
	err := c.conn.Close()
	c.conn = nil
	c.state = stateDisconnected
	if err != nil {
		return fmt.Errorf("could not disconnect: %w", err)
	}
	return nil
}

func (c *Client) requireAuth() error {
	switch c.state {
	case stateDisconnected:
		return ErrNotConnected
	case stateConnected:
		return ErrNotAuthenticated
	default:
		return nil
	}
}

func (c *Client) roundTrip(frame []byte) ([]byte, error) {
	if _, err := c.conn.Write(frame); err != nil {
		return nil, err
	}
	return c.readFrame()
}

// readFrame reads one whole frame, header first, then whatever the length
// field promises, and validates it.
func (c *Client) readFrame() ([]byte, error) {
	r := cio.TimeoutReader(c.conn, c.timeout)
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	length := mergeOctets(header[4:6])
	if length < 2 {
		return nil, fmt.Errorf("%w: advertised length %d", ErrShortFrame, length)
	}
	rest := make([]byte, length-2+1)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, fmt.Errorf("could not read body: %w", err)
	}
	raw := append(header, rest...)
	if _, err := parseFrame(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func validPassword(pwd string) bool {
	if len(pwd) != 6 {
		return false
	}
	for i := 0; i < len(pwd); i++ {
		if pwd[i] < '0' || pwd[i] > '9' {
			return false
		}
	}
	return true
}
