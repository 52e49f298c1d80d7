package chess

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// epdOpcodeKind classifies how an EPD opcode's operands should be
// interpreted, following the conventional EPD opcode table (acd/acn/acs,
// bm/am/pv, pm/sm, and the argument-less status opcodes).
type epdOpcodeKind int

const (
	epdOpString epdOpcodeKind = iota
	epdOpInt
	epdOpMove
	epdOpMoveList
	epdOpNone
)

var epdOpcodeKinds = map[string]epdOpcodeKind{
	"acd": epdOpInt, "acn": epdOpInt, "acs": epdOpInt, "rc": epdOpInt,
	"fmvn": epdOpInt, "hmvc": epdOpInt,
	"bm": epdOpMoveList, "am": epdOpMoveList, "pv": epdOpMoveList,
	"pm": epdOpMove, "sm": epdOpMove,
	"resign": epdOpNone, "draw_accept": epdOpNone, "draw_claim": epdOpNone,
	"draw_offer": epdOpNone, "draw_reject": epdOpNone, "noop": epdOpNone,
}

func epdOpcodeKindOf(opcode string) epdOpcodeKind {
	if k, ok := epdOpcodeKinds[opcode]; ok {
		return k
	}
	return epdOpString
}

// splitEPDFields peels the four FEN-shaped fields off the front of an EPD
// record, leaving the opcode section (which may itself contain spaces inside
// quoted string operands) untouched.
func splitEPDFields(epd string) (fields []string, rest string) {
	s := epd
	for i := 0; i < 4; i++ {
		s = strings.TrimLeft(s, " \t")
		j := strings.IndexByte(s, ' ')
		if j < 0 {
			fields = append(fields, s)
			s = ""
			break
		}
		fields = append(fields, s[:j])
		s = s[j:]
	}
	return fields, strings.TrimSpace(s)
}

// splitEPDOperation scans one "<opcode> <operands...>;" record off the front
// of s, respecting double-quoted string operands (with '\\' and '\"'
// escapes) so an embedded ';' or ' ' inside a quoted comment doesn't split
// prematurely. This is the opcode/after-opcode/string/string-escape half of
// the EPD operand scanner; tokenizeEPDOperands below runs the
// numeric/san/string split within a single operand section.
func splitEPDOperation(s string) (opcode, operandStr, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t;")
	if i < 0 {
		return s, "", ""
	}
	opcode = s[:i]
	s = s[i:]

	inQuote := false
	j := 0
	for j < len(s) {
		switch ch := s[j]; {
		case ch == '"':
			inQuote = !inQuote
		case ch == '\\' && inQuote && j+1 < len(s):
			j++
		case ch == ';' && !inQuote:
			operandStr = strings.TrimSpace(s[:j])
			rest = strings.TrimSpace(s[j+1:])
			return opcode, operandStr, rest
		}
		j++
	}
	return opcode, strings.TrimSpace(s), ""
}

// tokenizeEPDOperands splits one opcode's operand section on whitespace,
// treating a double-quoted run (with backslash escapes) as a single token.
func tokenizeEPDOperands(s string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '"':
			inQuote = !inQuote
		case ch == '\\' && inQuote && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case (ch == ' ' || ch == '\t') && !inQuote:
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// parseEPDOperations runs the scanner over the opcode section of an EPD
// record, resolving san/pm/bm/am move operands against the board's current
// (already-applied) position.
func (b *Board) parseEPDOperations(s string) (map[string]interface{}, error) {
	ops := make(map[string]interface{})
	for len(s) > 0 {
		opcode, operandStr, rest := splitEPDOperation(s)
		s = rest
		if opcode == "" {
			continue
		}
		tokens := tokenizeEPDOperands(operandStr)
		switch epdOpcodeKindOf(opcode) {
		case epdOpNone:
			ops[opcode] = nil
		case epdOpInt:
			if len(tokens) == 0 {
				return nil, newMoveError(ValueError, "epd opcode %q expects an integer operand", opcode)
			}
			n, err := strconv.Atoi(tokens[0])
			if err != nil {
				return nil, newMoveError(ValueError, "epd opcode %q has invalid integer operand %q", opcode, tokens[0])
			}
			ops[opcode] = n
		case epdOpMove:
			if len(tokens) == 0 {
				return nil, newMoveError(ValueError, "epd opcode %q expects a move operand", opcode)
			}
			m, err := b.ParseSAN(tokens[0])
			if err != nil {
				return nil, err
			}
			ops[opcode] = m
		case epdOpMoveList:
			moves := make([]Move, 0, len(tokens))
			for _, t := range tokens {
				m, err := b.ParseSAN(t)
				if err != nil {
					return nil, err
				}
				moves = append(moves, m)
			}
			ops[opcode] = moves
		default:
			if len(tokens) == 0 {
				ops[opcode] = ""
			} else {
				ops[opcode] = strings.Join(tokens, " ")
			}
		}
	}
	return ops, nil
}

// SetEPD replaces the board's position from an EPD record's four FEN-shaped
// fields and returns its parsed opcode/operand map. "hmvc" and "fmvn"
// opcodes, when present, seed the halfmove clock and fullmove number (EPD
// itself carries neither field).
func (b *Board) SetEPD(epd string) (map[string]interface{}, error) {
	fields, rest := splitEPDFields(strings.TrimSpace(epd))
	if len(fields) < 4 {
		return nil, newMoveError(ValueError, "epd should consist of at least 4 parts: %q", epd)
	}
	if err := b.setFEN(strings.Join(fields, " ") + " 0 1"); err != nil {
		return nil, err
	}
	ops, err := b.parseEPDOperations(rest)
	if err != nil {
		return nil, err
	}
	if n, ok := ops["hmvc"].(int); ok {
		b.halfmoveClock = n
	}
	if n, ok := ops["fmvn"].(int); ok && n > 0 {
		b.fullmoveNumber = n
	}
	return ops, nil
}

// epdQuote wraps an operand in double quotes with '\\'/'"' escaped, only
// when needed to keep the scanner from misreading it.
func epdQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\";") {
		return s
	}
	escaped := strings.ReplaceAll(s, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
	return "\"" + escaped + "\""
}

// EPD renders the board's four FEN-shaped fields plus ops as an EPD record.
// Opcodes are emitted in sorted order for determinism; supported operand
// types are nil (argument-less opcodes like "noop"), int, string, Move, and
// []Move (rendered as SAN against the position being described).
func (b *Board) EPD(ops map[string]interface{}) string {
	var sb strings.Builder
	sb.WriteString(b.boardFen(false))
	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castlingFen())
	sb.WriteByte(' ')
	sb.WriteString(b.epFenField(epLegal))

	keys := maps.Keys(ops)
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		switch v := ops[k].(type) {
		case nil:
		case int:
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(v))
		case Move:
			sb.WriteByte(' ')
			sb.WriteString(b.sanWithoutSuffix(v))
		case []Move:
			for _, m := range v {
				sb.WriteByte(' ')
				sb.WriteString(b.sanWithoutSuffix(m))
			}
		case string:
			sb.WriteByte(' ')
			sb.WriteString(epdQuote(v))
		}
		sb.WriteByte(';')
	}
	return sb.String()
}
