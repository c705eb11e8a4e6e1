package maxcomm

import "fmt"

type Err string

func (e Err) Error() string {
	return string(e)
}

const (
	ErrFraming         = Err("framing error")
	ErrLength          = Err("length mismatch")
	ErrChecksum        = Err("checksum mismatch")
	ErrUnknownField    = Err("unknown field")
	ErrMalformedNumber = Err("malformed number")
	ErrTruncated       = Err("truncated fragment")
	ErrRange           = Err("value out of range")
	ErrLookupMiss      = Err("lookup miss")
	ErrTooLong         = Err("packet longer than 255 characters")
	ErrNoReply         = Err("no reply")
	ErrDuplicate       = Err("duplicate entry")
)

// Wire delimiters
const (
	startMarker = '{'
	endMarker   = '}'
	// Devices may terminate all but the last fragment of a reply with this
	fragmentEnd  = ')'
	recordSep    = ';'
	groupSep     = '|'
	unitSep      = ':'
	valueSep     = '='
	maxFrameSize = 255
)

// Well-known device addresses
const (
	AddrBroadcast                = 0
	AddrNetworkMaster            = 250
	AddrAlternativeNetworkMaster = 251
	AddrMaxDisplay               = 252
	AddrUninitialized            = 255
)

// Protocol ports
const (
	PortUserData         = 100
	PortCommand          = 200
	PortMsgFromInterface = 1000
)

// ParseError reports where in a fragment parsing stopped.
type ParseError struct {
	Err      error
	Pos      int
	Fragment string
	Detail   string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at position %d in %q", e.Err, e.Pos, e.Fragment)
	}
	return fmt.Sprintf("%v at position %d in %q: %s", e.Err, e.Pos, e.Fragment, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
