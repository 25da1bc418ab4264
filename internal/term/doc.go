// Package term implements a headless, VT/ANSI-compatible terminal
// emulation core.
//
// The package is organized around these types:
//
//   - Parser: a table-driven DEC/ANSI escape-sequence state machine
//   - Buffer: a cursor-addressed grid of cells with scroll region,
//     saved cursor, and tab stops, backed by a RingOfLines
//   - BufferSet: the normal (scrollback) and alternate screen buffers
//   - Terminal: the command-dispatch layer that wires Parser actions
//     to Buffer mutations and implements mode/SGR/charset semantics
//   - HostDelegate: the narrow callback surface a host UI/transport
//     implements to receive replies, title changes, bell, and so on
//
// Terminal is single-threaded and synchronous: Feed runs to completion
// on the caller's goroutine and never re-enters itself. Callers that
// need concurrent access must serialize calls externally.
//
// The package does not spawn processes, open pseudo-terminals, or
// render pixels — see cmd/vtdemo for a reference host that does.
package term
