package term

// State is a parser state from spec.md §4.1's DEC/ANSI state machine.
type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosPmApcString

	numStates
)

// Action is one of the transition actions named in spec.md §4.1.
type Action int

const (
	ActionNone Action = iota
	ActionPrint
	ActionExecute
	ActionClear
	ActionCollect
	ActionParam
	ActionEscDispatch
	ActionCsiDispatch
	ActionHook
	ActionPut
	ActionUnhook
	ActionOscStart
	ActionOscPut
	ActionOscEnd
	ActionIgnore

	numActions
)

// transitionTable is byte-packed exactly like the production DEC
// parser generator this is grounded on (other_examples'
// grafana-loki__transition_table.go): value = action<<4 | nextState,
// index = state<<8 | inputByte.
type transitionTable []byte

const (
	transitionActionShift = 4
	transitionStateMask   = 0x0F
	indexStateShift       = 8
)

func newTransitionTable() transitionTable {
	return make(transitionTable, int(numStates)<<indexStateShift)
}

func (t transitionTable) setDefault(action Action, next State) {
	for i := range t {
		t[i] = byte(action)<<transitionActionShift | byte(next)
	}
}

func (t transitionTable) addOne(code byte, s State, action Action, next State) {
	idx := int(s)<<indexStateShift | int(code)
	t[idx] = byte(action)<<transitionActionShift | byte(next)
}

func (t transitionTable) addRange(lo, hi byte, s State, action Action, next State) {
	for c := int(lo); c <= int(hi); c++ {
		t.addOne(byte(c), s, action, next)
	}
}

func (t transitionTable) addMany(codes []byte, s State, action Action, next State) {
	for _, c := range codes {
		t.addOne(c, s, action, next)
	}
}

func (t transitionTable) lookup(s State, code byte) (Action, State) {
	v := t[int(s)<<indexStateShift|int(code)]
	return Action(v >> transitionActionShift), State(v & transitionStateMask)
}

// vtTable is the module-wide transition table, built once.
var vtTable = buildTransitionTable()

func buildTransitionTable() transitionTable {
	t := newTransitionTable()
	t.setDefault(ActionIgnore, StateGround)

	execRanges := func(s State, next State) {
		t.addRange(0x00, 0x17, s, ActionExecute, next)
		t.addOne(0x19, s, ActionExecute, next)
		t.addRange(0x1C, 0x1F, s, ActionExecute, next)
	}

	// Ground
	execRanges(StateGround, StateGround)
	t.addRange(0x20, 0x7E, StateGround, ActionPrint, StateGround)
	t.addOne(0x7F, StateGround, ActionIgnore, StateGround)

	// Escape
	execRanges(StateEscape, StateEscape)
	t.addOne(0x7F, StateEscape, ActionIgnore, StateEscape)
	t.addRange(0x20, 0x2F, StateEscape, ActionCollect, StateEscapeIntermediate)
	t.addRange(0x30, 0x4F, StateEscape, ActionEscDispatch, StateGround)
	t.addRange(0x51, 0x57, StateEscape, ActionEscDispatch, StateGround)
	t.addOne(0x59, StateEscape, ActionEscDispatch, StateGround)
	t.addOne(0x5A, StateEscape, ActionEscDispatch, StateGround)
	t.addOne(0x5C, StateEscape, ActionEscDispatch, StateGround)
	t.addRange(0x60, 0x7E, StateEscape, ActionEscDispatch, StateGround)
	t.addOne(0x50, StateEscape, ActionClear, StateDcsEntry)   // 'P' DCS
	t.addOne(0x5B, StateEscape, ActionClear, StateCsiEntry)   // '[' CSI
	t.addOne(0x5D, StateEscape, ActionOscStart, StateOscString) // ']' OSC
	t.addOne(0x58, StateEscape, ActionIgnore, StateSosPmApcString) // 'X' SOS
	t.addOne(0x5E, StateEscape, ActionIgnore, StateSosPmApcString) // '^' PM
	t.addOne(0x5F, StateEscape, ActionIgnore, StateSosPmApcString) // '_' APC

	// EscapeIntermediate
	execRanges(StateEscapeIntermediate, StateEscapeIntermediate)
	t.addRange(0x20, 0x2F, StateEscapeIntermediate, ActionCollect, StateEscapeIntermediate)
	t.addRange(0x30, 0x7E, StateEscapeIntermediate, ActionEscDispatch, StateGround)
	t.addOne(0x7F, StateEscapeIntermediate, ActionIgnore, StateEscapeIntermediate)

	// CsiEntry
	execRanges(StateCsiEntry, StateCsiEntry)
	t.addOne(0x7F, StateCsiEntry, ActionIgnore, StateCsiEntry)
	t.addRange(0x20, 0x2F, StateCsiEntry, ActionCollect, StateCsiIntermediate)
	t.addRange(0x30, 0x39, StateCsiEntry, ActionParam, StateCsiParam)
	t.addOne(0x3B, StateCsiEntry, ActionParam, StateCsiParam)
	t.addOne(0x3A, StateCsiEntry, ActionIgnore, StateCsiParam)
	t.addRange(0x3C, 0x3F, StateCsiEntry, ActionCollect, StateCsiParam)
	t.addRange(0x40, 0x7E, StateCsiEntry, ActionCsiDispatch, StateGround)

	// CsiParam
	execRanges(StateCsiParam, StateCsiParam)
	t.addRange(0x30, 0x39, StateCsiParam, ActionParam, StateCsiParam)
	t.addOne(0x3B, StateCsiParam, ActionParam, StateCsiParam)
	t.addOne(0x3A, StateCsiParam, ActionIgnore, StateCsiParam)
	t.addRange(0x3C, 0x3F, StateCsiParam, ActionIgnore, StateCsiIgnore)
	t.addRange(0x20, 0x2F, StateCsiParam, ActionCollect, StateCsiIntermediate)
	t.addRange(0x40, 0x7E, StateCsiParam, ActionCsiDispatch, StateGround)
	t.addOne(0x7F, StateCsiParam, ActionIgnore, StateCsiParam)

	// CsiIntermediate
	execRanges(StateCsiIntermediate, StateCsiIntermediate)
	t.addRange(0x20, 0x2F, StateCsiIntermediate, ActionCollect, StateCsiIntermediate)
	t.addRange(0x30, 0x3F, StateCsiIntermediate, ActionIgnore, StateCsiIgnore)
	t.addRange(0x40, 0x7E, StateCsiIntermediate, ActionCsiDispatch, StateGround)
	t.addOne(0x7F, StateCsiIntermediate, ActionIgnore, StateCsiIntermediate)

	// CsiIgnore
	execRanges(StateCsiIgnore, StateCsiIgnore)
	t.addRange(0x20, 0x3F, StateCsiIgnore, ActionIgnore, StateCsiIgnore)
	t.addRange(0x40, 0x7E, StateCsiIgnore, ActionIgnore, StateGround)
	t.addOne(0x7F, StateCsiIgnore, ActionIgnore, StateCsiIgnore)

	// DcsEntry
	t.addRange(0x00, 0x17, StateDcsEntry, ActionIgnore, StateDcsEntry)
	t.addOne(0x19, StateDcsEntry, ActionIgnore, StateDcsEntry)
	t.addRange(0x1C, 0x1F, StateDcsEntry, ActionIgnore, StateDcsEntry)
	t.addOne(0x7F, StateDcsEntry, ActionIgnore, StateDcsEntry)
	t.addRange(0x20, 0x2F, StateDcsEntry, ActionCollect, StateDcsIntermediate)
	t.addRange(0x30, 0x39, StateDcsEntry, ActionParam, StateDcsParam)
	t.addOne(0x3B, StateDcsEntry, ActionParam, StateDcsParam)
	t.addOne(0x3A, StateDcsEntry, ActionIgnore, StateDcsParam)
	t.addRange(0x3C, 0x3F, StateDcsEntry, ActionCollect, StateDcsParam)
	t.addRange(0x40, 0x7E, StateDcsEntry, ActionHook, StateDcsPassthrough)

	// DcsParam
	t.addRange(0x00, 0x17, StateDcsParam, ActionIgnore, StateDcsParam)
	t.addOne(0x19, StateDcsParam, ActionIgnore, StateDcsParam)
	t.addRange(0x1C, 0x1F, StateDcsParam, ActionIgnore, StateDcsParam)
	t.addRange(0x30, 0x39, StateDcsParam, ActionParam, StateDcsParam)
	t.addOne(0x3B, StateDcsParam, ActionParam, StateDcsParam)
	t.addOne(0x3A, StateDcsParam, ActionIgnore, StateDcsParam)
	t.addRange(0x3C, 0x3F, StateDcsParam, ActionIgnore, StateDcsIgnore)
	t.addRange(0x20, 0x2F, StateDcsParam, ActionCollect, StateDcsIntermediate)
	t.addRange(0x40, 0x7E, StateDcsParam, ActionHook, StateDcsPassthrough)
	t.addOne(0x7F, StateDcsParam, ActionIgnore, StateDcsParam)

	// DcsIntermediate
	t.addRange(0x00, 0x17, StateDcsIntermediate, ActionIgnore, StateDcsIntermediate)
	t.addOne(0x19, StateDcsIntermediate, ActionIgnore, StateDcsIntermediate)
	t.addRange(0x1C, 0x1F, StateDcsIntermediate, ActionIgnore, StateDcsIntermediate)
	t.addRange(0x20, 0x2F, StateDcsIntermediate, ActionCollect, StateDcsIntermediate)
	t.addRange(0x30, 0x3F, StateDcsIntermediate, ActionIgnore, StateDcsIgnore)
	t.addRange(0x40, 0x7E, StateDcsIntermediate, ActionHook, StateDcsPassthrough)
	t.addOne(0x7F, StateDcsIntermediate, ActionIgnore, StateDcsIntermediate)

	// DcsPassthrough
	t.addRange(0x00, 0x17, StateDcsPassthrough, ActionPut, StateDcsPassthrough)
	t.addOne(0x19, StateDcsPassthrough, ActionPut, StateDcsPassthrough)
	t.addRange(0x1C, 0x1F, StateDcsPassthrough, ActionPut, StateDcsPassthrough)
	t.addRange(0x20, 0x7E, StateDcsPassthrough, ActionPut, StateDcsPassthrough)
	t.addOne(0x7F, StateDcsPassthrough, ActionIgnore, StateDcsPassthrough)

	// DcsIgnore
	t.addRange(0x00, 0x7F, StateDcsIgnore, ActionIgnore, StateDcsIgnore)

	// OscString: BEL (0x07) terminates; everything else 0x20-0xFF is put.
	t.addRange(0x00, 0x06, StateOscString, ActionIgnore, StateOscString)
	t.addRange(0x08, 0x17, StateOscString, ActionIgnore, StateOscString)
	t.addOne(0x19, StateOscString, ActionIgnore, StateOscString)
	t.addRange(0x1C, 0x1F, StateOscString, ActionIgnore, StateOscString)
	t.addOne(0x07, StateOscString, ActionOscEnd, StateGround)
	t.addRange(0x20, 0xFF, StateOscString, ActionOscPut, StateOscString)

	// SosPmApcString: contents are discarded.
	t.addRange(0x00, 0xFF, StateSosPmApcString, ActionIgnore, StateSosPmApcString)

	// String-terminator / abort handling for the four "collecting" states:
	// CAN/SUB abort silently to Ground; ESC exits to Escape so a
	// following '\' (ST) is consumed by the normal Escape dispatch,
	// but the string is closed (hook/put handler unhooked, OSC ended)
	// right away rather than waiting for that final byte.
	stringStates := []struct {
		state  State
		onExit Action
	}{
		{StateDcsPassthrough, ActionUnhook},
		{StateDcsIgnore, ActionIgnore},
		{StateOscString, ActionOscEnd},
		{StateSosPmApcString, ActionIgnore},
	}
	for _, ss := range stringStates {
		t.addOne(0x1B, ss.state, ss.onExit, StateEscape)
		t.addMany([]byte{0x18, 0x1A}, ss.state, ss.onExit, StateGround)
		t.addOne(0x9C, ss.state, ss.onExit, StateGround) // ST as a bare C1 byte
	}

	// Anywhere: CAN/SUB abort to Ground, ESC clears to Escape. Applied
	// last so the string-state overrides above win where they differ.
	for s := State(0); s < numStates; s++ {
		switch s {
		case StateDcsPassthrough, StateDcsIgnore, StateOscString, StateSosPmApcString:
			continue
		}
		t.addMany([]byte{0x18, 0x1A}, s, ActionExecute, StateGround)
		t.addOne(0x1B, s, ActionClear, StateEscape)
	}

	return t
}
