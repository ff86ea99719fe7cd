package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/internal/pcerr"
)

// LoadTrace parses one or more trace files into a Trace. Each line is
// whitespace-separated integers (decimal, or hex/octal/binary with a
// 0x/0o/0b prefix; a leading 0 alone also reads as octal): SIP DIP SPORT
// DPORT PROTO expected_rule_id. Ports are truncated to 16 bits, protocol to 8 bits;
// expected priority is the 1-based rule id minus one.
func LoadTrace(path string) (classify.Trace, error) {
	readers, closeAll, err := openMulti(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	var tr classify.Trace
	err = scanLines(readers, func(srcPath string, lineNo int, line string) error {
		if len(tr) >= classify.PktMax {
			return pcerr.Wrap(pcerr.CapacityExceeded, nil, "too many packets",
				"path", srcPath, "limit", classify.PktMax)
		}
		p, perr := parseTraceLine(line)
		if perr != nil {
			return pcerr.Wrap(pcerr.ParseFormat, perr, "illegal packet format",
				"path", srcPath, "line", lineNo)
		}
		tr = append(tr, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func parseTraceLine(line string) (classify.Packet, error) {
	var p classify.Packet

	f := strings.Fields(line)
	if len(f) != 6 {
		return p, fmt.Errorf("expected 6 fields, got %d", len(f))
	}

	vals := make([]uint64, 6)
	for i, tok := range f {
		v, err := strconv.ParseUint(tok, 0, 64)
		if err != nil {
			return p, fmt.Errorf("bad field %d %q: %w", i, tok, err)
		}
		vals[i] = v
	}

	p.Val[classify.DimSIP] = uint32(vals[0])
	p.Val[classify.DimDIP] = uint32(vals[1])
	p.Val[classify.DimSPort] = classify.Trunc(classify.DimSPort, uint32(vals[2]))
	p.Val[classify.DimDPort] = classify.Trunc(classify.DimDPort, uint32(vals[3]))
	p.Val[classify.DimProto] = classify.Trunc(classify.DimProto, uint32(vals[4]))
	p.Expected = int(vals[5]) - 1

	return p, nil
}
