package smbus

import (
	"encoding/binary"

	"github.com/sigurn/crc8"
)

var pecTable = crc8.MakeTable(crc8.CRC8)

// ReadWord reads a little-endian word. ok is false when fewer than two bytes
// arrived, in which case the value is 0.
func (c *Conn) ReadWord(cmd byte) (v uint16, ok bool) {
	return c.word(c.Transact(cmd, c.wordLen()))
}

// ReadWordAt is ReadWord against addr.
func (c *Conn) ReadWordAt(addr uint16, cmd byte) (v uint16, ok bool) {
	return c.word(c.TransactAt(addr, cmd, c.wordLen()))
}

func (c *Conn) wordLen() int {
	if c.opts.PEC {
		return 3
	}
	return 2
}

func (c *Conn) word(resp Response) (uint16, bool) {
	if len(resp.Data) < 2 {
		return 0, false
	}
	if c.opts.PEC {
		if len(resp.Data) < 3 || !c.checkPEC(resp, resp.Data[:2], resp.Data[2]) {
			return 0, false
		}
	}
	return binary.LittleEndian.Uint16(resp.Data), true
}

// ReadRegister is ReadWord without the ok flag: a failed read yields 0, the same
// as a register that genuinely holds 0.
func (c *Conn) ReadRegister(cmd byte) uint16 {
	v, _ := c.ReadWord(cmd)
	return v
}

// ReadBlock reads a length-prefixed block and returns at most maxLen payload
// bytes in a fresh slice. The length byte is never part of the payload. A block
// shorter than declared is truncated to what arrived.
func (c *Conn) ReadBlock(cmd byte, maxLen int) (payload []byte, ok bool) {
	maxLen = clampBlock(maxLen)
	return c.block(c.Transact(cmd, c.blockLen(maxLen)), maxLen)
}

// ReadBlockAt is ReadBlock against addr.
func (c *Conn) ReadBlockAt(addr uint16, cmd byte, maxLen int) (payload []byte, ok bool) {
	maxLen = clampBlock(maxLen)
	return c.block(c.TransactAt(addr, cmd, c.blockLen(maxLen)), maxLen)
}

func clampBlock(maxLen int) int {
	if maxLen < 0 {
		return 0
	}
	if maxLen > MaxBlock {
		return MaxBlock
	}
	return maxLen
}

// blockLen is the read size for a block of maxLen: length byte, payload, PEC.
func (c *Conn) blockLen(maxLen int) int {
	n := maxLen + 1
	if c.opts.PEC {
		n++
	}
	return n
}

func (c *Conn) block(resp Response, maxLen int) ([]byte, bool) {
	if !resp.OK() {
		return []byte{}, false
	}

	declared := int(resp.Data[0])
	body := resp.Data[1:]
	if c.opts.PEC && declared <= maxLen && len(body) > declared {
		if !c.checkPEC(resp, resp.Data[:declared+1], body[declared]) {
			return []byte{}, false
		}
	}

	count := declared
	if count > maxLen {
		count = maxLen
	}
	if count > len(body) {
		c.log.Debugf("cmd 0x%02X: short block, declared %d got %d", resp.Cmd, declared, len(body))
		count = len(body)
	}
	payload := make([]byte, count)
	copy(payload, body[:count])
	return payload, true
}

// checkPEC verifies the SMBus packet error code over the whole read frame,
// including both address bytes and the command.
func (c *Conn) checkPEC(resp Response, data []byte, pec byte) bool {
	frame := make([]byte, 0, len(data)+3)
	frame = append(frame, byte(resp.Addr<<1), resp.Cmd, byte(resp.Addr<<1)|1)
	frame = append(frame, data...)
	if want := crc8.Checksum(frame, pecTable); want != pec {
		c.log.Warnf("cmd 0x%02X: PEC mismatch, want 0x%02X got 0x%02X", resp.Cmd, want, pec)
		return false
	}
	return true
}
