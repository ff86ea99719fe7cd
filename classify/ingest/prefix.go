package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/internal/pcerr"
)

// LoadPrefixRules parses one or more prefix-rule files into a
// PrefixRuleSet for the TSS engine. Each line has the form:
//
//	@A.B.C.D/m E.F.G.H/m sport/mlen dport/mlen PP/MM id
func LoadPrefixRules(path string) (classify.PrefixRuleSet, error) {
	readers, closeAll, err := openMulti(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	var rs classify.PrefixRuleSet
	err = scanLines(readers, func(srcPath string, lineNo int, line string) error {
		if len(rs) >= classify.RuleMax {
			return pcerr.Wrap(pcerr.CapacityExceeded, nil, "too many rules",
				"path", srcPath, "limit", classify.RuleMax)
		}
		r, perr := parsePrefixRuleLine(line)
		if perr != nil {
			return pcerr.Wrap(pcerr.ParseFormat, perr, "illegal rule format",
				"path", srcPath, "line", lineNo)
		}
		rs = append(rs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func parsePrefixRuleLine(line string) (classify.PrefixRule, error) {
	var r classify.PrefixRule

	f := strings.Fields(strings.TrimPrefix(line, "@"))
	if len(f) != 6 {
		return r, fmt.Errorf("expected 6 fields, got %d", len(f))
	}

	sip, sipLen, err := parseIPMask(f[0])
	if err != nil {
		return r, err
	}
	dip, dipLen, err := parseIPMask(f[1])
	if err != nil {
		return r, err
	}
	sport, sportLen, err := parseValueMlen(f[2], 16)
	if err != nil {
		return r, err
	}
	dport, dportLen, err := parseValueMlen(f[3], 16)
	if err != nil {
		return r, err
	}
	proto, mask, err := parseProtoMask(f[4])
	if err != nil {
		return r, err
	}
	id, err := strconv.ParseInt(f[5], 10, 64)
	if err != nil {
		return r, err
	}

	r.Value[classify.DimSIP] = sip & classify.Mask(classify.DimSIP, sipLen)
	r.PrefixLen[classify.DimSIP] = sipLen
	r.Value[classify.DimDIP] = dip & classify.Mask(classify.DimDIP, dipLen)
	r.PrefixLen[classify.DimDIP] = dipLen
	r.Value[classify.DimSPort] = sport & classify.Mask(classify.DimSPort, sportLen)
	r.PrefixLen[classify.DimSPort] = sportLen
	r.Value[classify.DimDPort] = dport & classify.Mask(classify.DimDPort, dportLen)
	r.PrefixLen[classify.DimDPort] = dportLen

	if mask == 0xFF {
		r.Value[classify.DimProto] = proto
		r.PrefixLen[classify.DimProto] = 8
	} else {
		r.Value[classify.DimProto] = 0
		r.PrefixLen[classify.DimProto] = 0
	}

	r.Priority = int(id) - 1
	return r, nil
}

// parseValueMlen parses "value/mlen" where mlen is a prefix length in
// 0..maxLen bits (ports: 0..16).
func parseValueMlen(tok string, maxLen uint8) (value uint32, mlen uint8, err error) {
	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected value/mlen, got %q", tok)
	}
	v, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad value %q: %w", parts[0], err)
	}
	m, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("bad prefix length %q: %w", parts[1], err)
	}
	if m > uint64(maxLen) {
		return 0, 0, fmt.Errorf("prefix length %d exceeds maximum %d", m, maxLen)
	}
	return uint32(v), uint8(m), nil
}
