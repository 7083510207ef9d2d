// Package smbus drives the two-phase register transaction used by Smart Battery
// System devices: select a command byte, let the device settle, then read.
//
// A device that does not answer produces no data rather than an error. Word reads
// of an absent device therefore look like a genuine zero unless the caller checks
// the returned ok flag.
package smbus

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the SBS smart battery slave address.
const DefaultAddr = 0x0B

// DefaultSettle is the turnaround delay between command select and data read.
const DefaultSettle = 10 * time.Millisecond

// MaxBlock is the longest block payload SMBus allows.
const MaxBlock = 32

// Transport is the bus channel a Conn drives. Write addresses the device, sends w
// and releases the bus. Read requests len(r) bytes and reports how many arrived.
type Transport interface {
	Write(addr uint16, w []byte) error
	Read(addr uint16, r []byte) (int, error)
}

type busTransport struct {
	bus i2c.Bus
}

// FromBus adapts a periph I2C bus. A failed read phase reports zero bytes.
func FromBus(bus i2c.Bus) Transport {
	return &busTransport{bus: bus}
}

func (b *busTransport) Write(addr uint16, w []byte) error {
	return b.bus.Tx(addr, w, nil)
}

func (b *busTransport) Read(addr uint16, r []byte) (int, error) {
	if err := b.bus.Tx(addr, nil, r); err != nil {
		return 0, err
	}
	return len(r), nil
}

// Options tune the transaction discipline for a device family.
type Options struct {
	// Settle is the wait after the command byte. Zero means DefaultSettle.
	Settle time.Duration
	// Retries is how many extra attempts are made when no byte comes back.
	Retries int
	// RetryDelay is the pause before each retry.
	RetryDelay time.Duration
	// PEC enables Packet Error Code verification on word and block reads.
	PEC bool

	Logger logrus.FieldLogger
}

// Response is the outcome of one transaction.
type Response struct {
	Addr uint16
	Cmd  byte
	// Data holds only the bytes the device actually returned.
	Data []byte
}

// OK reports whether the device returned anything at all.
func (r Response) OK() bool {
	return len(r.Data) > 0
}

// Conn is a single SBS device on a bus. Transactions never interleave.
type Conn struct {
	mu   sync.Mutex
	t    Transport
	addr uint16
	opts Options
	log  logrus.FieldLogger

	sleep func(time.Duration)
}

// New returns a connection to the device at addr.
func New(t Transport, addr uint16, opts Options) *Conn {
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Conn{
		t:     t,
		addr:  addr,
		opts:  opts,
		log:   log.WithField("prefix", "smbus"),
		sleep: time.Sleep,
	}
}

// Addr returns the device address in use.
func (c *Conn) Addr() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addr
}

// SetAddr points the connection at another device. It waits for any transaction
// in flight to finish.
func (c *Conn) SetAddr(addr uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debugf("address 0x%02X -> 0x%02X", c.addr, addr)
	c.addr = addr
}

// Transact selects cmd on the current device and reads up to n bytes back.
// Attempts that return nothing are retried up to Options.Retries times.
func (c *Conn) Transact(cmd byte, n int) Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transact(c.addr, cmd, n)
}

// TransactAt is Transact against addr, whatever SetAddr last selected.
func (c *Conn) TransactAt(addr uint16, cmd byte, n int) Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transact(addr, cmd, n)
}

// transact runs the retry loop. Caller holds mu.
func (c *Conn) transact(addr uint16, cmd byte, n int) Response {
	resp := Response{Addr: addr, Cmd: cmd}
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			c.log.Debugf("cmd 0x%02X: retry %d/%d", cmd, attempt, c.opts.Retries)
			if c.opts.RetryDelay > 0 {
				c.sleep(c.opts.RetryDelay)
			}
		}
		if data := c.once(addr, cmd, n); len(data) > 0 {
			resp.Data = data
			return resp
		}
	}
	c.log.Debugf("cmd 0x%02X: no data from 0x%02X", cmd, addr)
	return resp
}

// once runs a single write, settle, read sequence. Caller holds mu.
func (c *Conn) once(addr uint16, cmd byte, n int) []byte {
	if err := c.t.Write(addr, []byte{cmd}); err != nil {
		c.log.Debugf("cmd 0x%02X: select: %v", cmd, err)
		return nil
	}
	c.sleep(c.opts.Settle)

	buf := make([]byte, n)
	got, err := c.t.Read(addr, buf)
	if err != nil {
		c.log.Debugf("cmd 0x%02X: read: %v", cmd, err)
	}
	if got < 0 {
		got = 0
	}
	if got > n {
		got = n
	}
	return buf[:got]
}
