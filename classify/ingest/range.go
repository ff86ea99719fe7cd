package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nsllab/pceval/classify"
	"github.com/nsllab/pceval/internal/pcerr"
)

// LoadRangeRules parses one or more Classbench range-rule files (path may
// be a glob pattern, see openMulti) into a RangeRuleSet for the
// HyperSplit engine. Each line has the form:
//
//	@A.B.C.D/m E.F.G.H/m sp_lo : sp_hi dp_lo : dp_hi PP/MM id
func LoadRangeRules(path string) (classify.RangeRuleSet, error) {
	readers, closeAll, err := openMulti(path)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	var rs classify.RangeRuleSet
	err = scanLines(readers, func(srcPath string, lineNo int, line string) error {
		if len(rs) >= classify.RuleMax {
			return pcerr.Wrap(pcerr.CapacityExceeded, nil, "too many rules",
				"path", srcPath, "limit", classify.RuleMax)
		}
		r, perr := parseRangeRuleLine(line)
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

// parseRangeRuleLine parses "@A.B.C.D/m E.F.G.H/m sp_lo : sp_hi dp_lo :
// dp_hi PP/MM id" into a RangeRule. Ports are swapped if given out of
// order; the protocol mask must be FF (exact) or 00 (wildcard).
func parseRangeRuleLine(line string) (classify.RangeRule, error) {
	var r classify.RangeRule

	f := strings.Fields(strings.TrimPrefix(line, "@"))
	if len(f) != 10 {
		return r, fmt.Errorf("expected 10 fields, got %d", len(f))
	}
	if f[3] != ":" || f[6] != ":" {
		return r, fmt.Errorf("expected ':' separators in port ranges")
	}

	sip, sipLen, err := parseIPMask(f[0])
	if err != nil {
		return r, err
	}
	dip, dipLen, err := parseIPMask(f[1])
	if err != nil {
		return r, err
	}

	spLo, err := strconv.ParseUint(f[2], 10, 16)
	if err != nil {
		return r, err
	}
	spHi, err := strconv.ParseUint(f[4], 10, 16)
	if err != nil {
		return r, err
	}
	dpLo, err := strconv.ParseUint(f[5], 10, 16)
	if err != nil {
		return r, err
	}
	dpHi, err := strconv.ParseUint(f[7], 10, 16)
	if err != nil {
		return r, err
	}
	proto, mask, err := parseProtoMask(f[8])
	if err != nil {
		return r, err
	}
	id, err := strconv.ParseInt(f[9], 10, 64)
	if err != nil {
		return r, err
	}

	sipLo, sipHi := prefixFromMask32(sip, sipLen)
	dipLo, dipHi := prefixFromMask32(dip, dipLen)
	r.Low[classify.DimSIP], r.High[classify.DimSIP] = sipLo, sipHi
	r.Low[classify.DimDIP], r.High[classify.DimDIP] = dipLo, dipHi

	if spLo > spHi {
		spLo, spHi = spHi, spLo
	}
	if dpLo > dpHi {
		dpLo, dpHi = dpHi, dpLo
	}
	r.Low[classify.DimSPort], r.High[classify.DimSPort] = uint32(spLo), uint32(spHi)
	r.Low[classify.DimDPort], r.High[classify.DimDPort] = uint32(dpLo), uint32(dpHi)

	if mask == 0xFF {
		r.Low[classify.DimProto] = proto
		r.High[classify.DimProto] = proto
	} else {
		r.Low[classify.DimProto] = 0
		r.High[classify.DimProto] = 0xFF
	}

	r.Priority = int(id) - 1
	return r, nil
}
