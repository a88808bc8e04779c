package runtime

import "fmt"

// Opcode identifies a builtin operator.
type Opcode int

const (
	OpInvalid Opcode = iota

	// relational
	OpEQ
	OpNEQ
	OpLT
	OpGT
	OpLE
	OpGE

	// boolean
	OpNot
	OpAnd
	OpOr

	// type-generic
	OpForeach
	OpSort
	OpNLocale

	// collections
	OpSize
	OpLookup
	OpHasKey
	OpAdd
	OpRemove
	OpSelect
	OpContains
	OpFilter
	OpMaplist
	OpFlatten
	OpToSet
	OpMerge

	// arithmetic
	OpPlus
	OpMinus
	OpMult
	OpDiv
	OpMod
	OpNeg
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpLShift
	OpRShift

	// conversions and strings
	OpFind
	OpSubstring
	OpToUpper
	OpToLower
	OpToInteger
	OpToFloat
	OpToPath

	// terms and builtins
	OpSymbol
	OpArgs
	OpCall

	opcodeCount
)

var opcodeNames = [...]string{
	OpInvalid:   "invalid",
	OpEQ:        "eq",
	OpNEQ:       "neq",
	OpLT:        "lt",
	OpGT:        "gt",
	OpLE:        "le",
	OpGE:        "ge",
	OpNot:       "not",
	OpAnd:       "and",
	OpOr:        "or",
	OpForeach:   "foreach",
	OpSort:      "sort",
	OpNLocale:   "nlocale",
	OpSize:      "size",
	OpLookup:    "lookup",
	OpHasKey:    "haskey",
	OpAdd:       "add",
	OpRemove:    "remove",
	OpSelect:    "select",
	OpContains:  "contains",
	OpFilter:    "filter",
	OpMaplist:   "maplist",
	OpFlatten:   "flatten",
	OpToSet:     "toset",
	OpMerge:     "merge",
	OpPlus:      "plus",
	OpMinus:     "minus",
	OpMult:      "mult",
	OpDiv:       "div",
	OpMod:       "mod",
	OpNeg:       "neg",
	OpBitAnd:    "bitand",
	OpBitOr:     "bitor",
	OpBitXor:    "bitxor",
	OpBitNot:    "bitnot",
	OpLShift:    "lshift",
	OpRShift:    "rshift",
	OpFind:      "find",
	OpSubstring: "substring",
	OpToUpper:   "toupper",
	OpToLower:   "tolower",
	OpToInteger: "tointeger",
	OpToFloat:   "tofloat",
	OpToPath:    "topath",
	OpSymbol:    "symbol",
	OpArgs:      "args",
	OpCall:      "call",
}

var opcodesByName = func() map[string]Opcode {
	out := make(map[string]Opcode, len(opcodeNames))
	for code, name := range opcodeNames {
		if Opcode(code) == OpInvalid {
			continue
		}
		out[name] = Opcode(code)
	}
	return out
}()

func (c Opcode) String() string {
	if c >= 0 && c < opcodeCount {
		return opcodeNames[c]
	}
	return fmt.Sprintf("opcode_%d", int(c))
}

// OpcodeByName resolves the lowercase opcode name used in registries and
// serialized programs.
func OpcodeByName(name string) (Opcode, bool) {
	code, ok := opcodesByName[name]
	return code, ok
}
