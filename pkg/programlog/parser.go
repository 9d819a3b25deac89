// Package programlog parses Solana program logs as returned by transaction
// simulation and arranges them into the tree of program invocations that
// produced them.
//
// Example usage:
//
//	trace := programlog.BuildTrace(result.Logs)
//	if err := programlog.Render(os.Stdout, trace); err != nil {
//	    return err
//	}
package programlog

import (
	"encoding/base64"
	"regexp"
	"strconv"
)

// Kind is the kind of a single log line.
type Kind int

const (
	// KindUnknown is a line the parser does not recognize.
	KindUnknown Kind = iota
	// KindInvoke is "Program X invoke [N]".
	KindInvoke
	// KindSuccess is "Program X success".
	KindSuccess
	// KindFailed is "Program X failed: REASON".
	KindFailed
	// KindLog is "Program log: MESSAGE".
	KindLog
	// KindData is "Program data: BASE64".
	KindData
	// KindConsumed is "Program X consumed N of M compute units".
	KindConsumed
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindInvoke:
		return "invoke"
	case KindSuccess:
		return "success"
	case KindFailed:
		return "failed"
	case KindLog:
		return "log"
	case KindData:
		return "data"
	case KindConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Line is one parsed log line.
type Line struct {
	Kind Kind

	// Program is set for invoke, success, failed and consumed lines.
	Program string

	// Depth is the invocation depth (1 for top-level instructions).
	// Only set for invoke lines.
	Depth int

	// Message is the text of a log line or the reason of a failed line.
	Message string

	// Data is the decoded payload of a data line. Nil when the payload
	// is not valid base64.
	Data []byte

	Consumed uint64
	Limit    uint64

	// Raw is the original line.
	Raw string
}

// Parser parses program log lines.
type Parser struct {
	invoke   *regexp.Regexp
	success  *regexp.Regexp
	failed   *regexp.Regexp
	log      *regexp.Regexp
	data     *regexp.Regexp
	consumed *regexp.Regexp
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{
		invoke:   regexp.MustCompile(`^Program (\S+) invoke \[(\d+)\]$`),
		success:  regexp.MustCompile(`^Program (\S+) success$`),
		failed:   regexp.MustCompile(`^Program (\S+) failed(?:: (.*))?$`),
		log:      regexp.MustCompile(`^Program log: (.*)$`),
		data:     regexp.MustCompile(`^Program data: (.*)$`),
		consumed: regexp.MustCompile(`^Program (\S+) consumed (\d+) of (\d+) compute units$`),
	}
}

// Parse parses a single log line.
func (p *Parser) Parse(raw string) Line {
	line := Line{Kind: KindUnknown, Raw: raw}

	// "Program log:" and "Program data:" go first, "log:" would otherwise
	// read as a program id.
	if m := p.log.FindStringSubmatch(raw); m != nil {
		line.Kind = KindLog
		line.Message = m[1]
		return line
	}

	if m := p.data.FindStringSubmatch(raw); m != nil {
		line.Kind = KindData
		if decoded, err := base64.StdEncoding.DecodeString(m[1]); err == nil {
			line.Data = decoded
		}
		line.Message = m[1]
		return line
	}

	if m := p.invoke.FindStringSubmatch(raw); m != nil {
		line.Kind = KindInvoke
		line.Program = m[1]
		line.Depth, _ = strconv.Atoi(m[2])
		return line
	}

	if m := p.success.FindStringSubmatch(raw); m != nil {
		line.Kind = KindSuccess
		line.Program = m[1]
		return line
	}

	if m := p.failed.FindStringSubmatch(raw); m != nil {
		line.Kind = KindFailed
		line.Program = m[1]
		line.Message = m[2]
		return line
	}

	if m := p.consumed.FindStringSubmatch(raw); m != nil {
		line.Kind = KindConsumed
		line.Program = m[1]
		line.Consumed, _ = strconv.ParseUint(m[2], 10, 64)
		line.Limit, _ = strconv.ParseUint(m[3], 10, 64)
		return line
	}

	return line
}

// ParseAll parses every line.
func (p *Parser) ParseAll(raw []string) []Line {
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, p.Parse(r))
	}
	return lines
}

// Messages returns the text of every "Program log:" line.
func (p *Parser) Messages(raw []string) []string {
	var messages []string
	for _, r := range raw {
		if line := p.Parse(r); line.Kind == KindLog {
			messages = append(messages, line.Message)
		}
	}
	return messages
}
