package html

import "strings"

// namedEntities is the external named-character-reference table the
// tokenizer's CharacterReference states consult by longest-prefix
// match (spec.md §4.2). The full WHATWG table has ~2,200 entries
// generated from entities.json; this is the practically-common subset
// carried over (and extended with a few more multi-character
// references, e.g. "notin") from the teacher's html/tokenizer.go,
// which is exactly the kind of external collaborator the Tokenizer's
// contract leaves unspecified ("table is external", §2 components
// table).
//
// Keys never include a trailing ';' — that's matched separately so
// the "missing semicolon" parse error can be raised independent of
// resolution.
var namedEntities = map[string]string{
	"amp": "&", "AMP": "&",
	"lt": "<", "LT": "<",
	"gt": ">", "GT": ">",
	"quot": "\"", "QUOT": "\"",
	"apos":   "'",
	"nbsp":   " ",
	"copy":   "©", "COPY": "©",
	"reg":    "®", "REG": "®",
	"trade":  "™",
	"deg":    "°",
	"plusmn": "±",
	"cent":   "¢",
	"pound":  "£",
	"euro":   "€",
	"yen":    "¥",
	"sect":   "§",
	"para":   "¶",
	"middot": "·",
	"bull":   "•",
	"hellip": "…",
	"prime":  "′",
	"Prime":  "″",
	"ndash":  "–",
	"mdash":  "—",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"sbquo":  "‚",
	"bdquo":  "„",
	"laquo":  "«",
	"raquo":  "»",
	"thinsp": " ",
	"ensp":   " ",
	"emsp":   " ",
	"times":  "×",
	"divide": "÷",
	"minus":  "−",
	"lowast": "∗",
	"le":     "≤",
	"ge":     "≥",
	"ne":     "≠",
	"equiv":  "≡",
	"asymp":  "≈",
	"infin":  "∞",
	"sum":    "∑",
	"prod":   "∏",
	"radic":  "√",
	"part":   "∂",
	"int":    "∫",
	"notin":  "∉",
	"isin":   "∈",
	"cap":    "∩",
	"cup":    "∪",
	"sub":    "⊂",
	"sup":    "⊃",
	"forall": "∀",
	"exist":  "∃",
	"empty":  "∅",
	"nabla":  "∇",
	"larr":   "←",
	"uarr":   "↑",
	"rarr":   "→",
	"darr":   "↓",
	"harr":   "↔",
	"lArr":   "⇐",
	"uArr":   "⇑",
	"rArr":   "⇒",
	"dArr":   "⇓",
	"hArr":   "⇔",
	"alpha":  "α", "Alpha": "Α",
	"beta":   "β", "Beta": "Β",
	"gamma":  "γ", "Gamma": "Γ",
	"delta":  "δ", "Delta": "Δ",
	"epsilon": "ε",
	"pi":     "π", "Pi": "Π",
	"sigma":  "σ", "Sigma": "Σ",
	"omega":  "ω", "Omega": "Ω",
	"iexcl":  "¡",
	"iquest": "¿",
	"loz":    "◊",
	"spades": "♠",
	"clubs":  "♣",
	"hearts": "♥",
	"diams":  "♦",
	"frac12": "½",
	"frac14": "¼",
	"frac34": "¾",
}

// lookupNamedEntity performs the longest-prefix match spec.md §4.2
// describes: repeatedly try the longest candidate substring of buf
// that's a key in the table, shrinking by one byte at a time.
// Returns the matched prefix of buf (including a trailing ';' when one
// was present), its replacement text, and whether any match was found.
func lookupNamedEntity(buf string) (matched, replacement string, ok bool) {
	for end := len(buf); end > 0; end-- {
		candidate := buf[:end]
		name := strings.TrimSuffix(candidate, ";")
		if repl, found := namedEntities[name]; found {
			return candidate, repl, true
		}
	}
	return "", "", false
}

// c1ControlReplacements is the fixed 27-entry Windows-1252 remap table
// HTML5 §13.4 (numeric-character-reference-end-state) applies to
// C1-control code points 0x80-0x9F. The five code points it does not
// list (0x81, 0x8D, 0x8F, 0x90, 0x9D) are kept as-is and reported as
// ControlCharacterReference by isControlReference.
var c1ControlReplacements = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

const replacementChar = '�'

// resolveNumericReference post-processes an accumulated numeric
// character reference's code point per HTML5 §13.4, reporting the
// parse error raised (if any) alongside the resolved scalar.
func resolveNumericReference(code int64) (rune, ParseErrorKind, bool) {
	if code == 0 {
		return replacementChar, NullCharacterReference, true
	}
	if code > 0x10FFFF {
		return replacementChar, CharacterReferenceOutsideOfUnicodeRange, true
	}
	if code >= 0xD800 && code <= 0xDFFF {
		return replacementChar, SurrogateCharacterReference, true
	}
	if repl, ok := c1ControlReplacements[rune(code)]; ok {
		return repl, ControlCharacterReference, true
	}
	if isNoncharacter(rune(code)) {
		return rune(code), NoncharacterCharacterReference, true
	}
	if isControlReference(rune(code)) {
		return rune(code), ControlCharacterReference, true
	}
	return rune(code), 0, false
}

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	switch r & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return true
	}
	return false
}

func isControlReference(r rune) bool {
	if r >= 0x01 && r <= 0x1F && r != 0x09 && r != 0x0A && r != 0x0C {
		return true
	}
	return r >= 0x7F && r <= 0x9F
}

// saturatingAdd10 and saturatingAdd16 accumulate a decimal/hex numeric
// character reference digit, saturating at a value safely above
// 0x10FFFF rather than overflowing — spec.md §4.2's defense against
// a denial-of-service via an arbitrarily long digit run.
const numericReferenceCeiling = int64(0x10FFFF) + 1

func saturatingAdd10(acc int64, digit int64) int64 {
	if acc > numericReferenceCeiling {
		return acc
	}
	acc = acc*10 + digit
	if acc > numericReferenceCeiling {
		return numericReferenceCeiling
	}
	return acc
}

func saturatingAdd16(acc int64, digit int64) int64 {
	if acc > numericReferenceCeiling {
		return acc
	}
	acc = acc*16 + digit
	if acc > numericReferenceCeiling {
		return numericReferenceCeiling
	}
	return acc
}
