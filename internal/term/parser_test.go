package term

import (
	"reflect"
	"testing"
)

func TestParserPrintRun(t *testing.T) {
	p := NewParser()
	var got []byte
	p.OnPrint(func(data []byte) { got = append(got, data...) })
	p.Feed([]byte("hello world"))
	if string(got) != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestParserCSIDispatch(t *testing.T) {
	p := NewParser()
	var gotParams []int
	var gotCollect string
	var gotFinal byte
	p.OnCSI('H', func(params []int, collect string, final byte) {
		gotParams, gotCollect, gotFinal = params, collect, final
	})
	p.Feed([]byte("\x1b[12;34H"))
	if !reflect.DeepEqual(gotParams, []int{12, 34}) {
		t.Fatalf("params = %v", gotParams)
	}
	if gotCollect != "" || gotFinal != 'H' {
		t.Fatalf("collect=%q final=%c", gotCollect, gotFinal)
	}
}

func TestParserCSIPrivateMode(t *testing.T) {
	p := NewParser()
	var gotCollect string
	var gotParams []int
	p.OnCSI('h', func(params []int, collect string, final byte) {
		gotParams, gotCollect = params, collect
	})
	p.Feed([]byte("\x1b[?25h"))
	if gotCollect != "?" {
		t.Fatalf("collect = %q, want %q", gotCollect, "?")
	}
	if !reflect.DeepEqual(gotParams, []int{25}) {
		t.Fatalf("params = %v", gotParams)
	}
}

func TestParserCSIOmittedParamsAreEmpty(t *testing.T) {
	p := NewParser()
	var gotParams []int
	seen := false
	p.OnCSI('J', func(params []int, _ string, _ byte) {
		gotParams = params
		seen = true
	})
	p.Feed([]byte("\x1b[J"))
	if !seen {
		t.Fatal("handler not called")
	}
	if len(gotParams) != 0 {
		t.Fatalf("params = %v, want empty", gotParams)
	}
}

func TestParserEscDispatch(t *testing.T) {
	p := NewParser()
	called := false
	p.OnEsc("c", func(string, byte) { called = true })
	p.Feed([]byte("\x1bc"))
	if !called {
		t.Fatal("ESC c handler not called")
	}
}

func TestParserEscWithCollect(t *testing.T) {
	p := NewParser()
	var gotCollect string
	var gotFinal byte
	p.OnEsc("(0", func(collect string, final byte) { gotCollect, gotFinal = collect, final })
	p.Feed([]byte("\x1b(0"))
	if gotCollect != "(" || gotFinal != '0' {
		t.Fatalf("collect=%q final=%c", gotCollect, gotFinal)
	}
}

func TestParserExecuteInterleavedWithCSI(t *testing.T) {
	p := NewParser()
	var order []string
	p.OnExecute(0x0A, func(byte) { order = append(order, "LF") })
	p.OnCSI('m', func([]int, string, byte) { order = append(order, "SGR") })
	// A C0 control arriving mid-CSI-param must execute immediately
	// without derailing the sequence, per the DEC parser's "anywhere"
	// execute rule.
	p.Feed([]byte("\x1b[1\n;2m"))
	if !reflect.DeepEqual(order, []string{"LF", "SGR"}) {
		t.Fatalf("order = %v", order)
	}
}

func TestParserOSCDispatch(t *testing.T) {
	p := NewParser()
	var got string
	p.OnOSC(0, func(payload []byte) { got = string(payload) })
	p.Feed([]byte("\x1b]0;my title\x07"))
	if got != "my title" {
		t.Fatalf("got %q", got)
	}
}

func TestParserOSCTerminatedByST(t *testing.T) {
	p := NewParser()
	var got string
	p.OnOSC(2, func(payload []byte) { got = string(payload) })
	p.Feed([]byte("\x1b]2;window title\x1b\\"))
	if got != "window title" {
		t.Fatalf("got %q", got)
	}
}

type recordingDCS struct {
	hooked bool
	put    []byte
	final  byte
	done   bool
}

func (d *recordingDCS) Hook(collect string, params []int, final byte) {
	d.hooked = true
	d.final = final
}
func (d *recordingDCS) Put(data []byte)  { d.put = append(d.put, data...) }
func (d *recordingDCS) Unhook()          { d.done = true }

func TestParserDCSRoundTrip(t *testing.T) {
	p := NewParser()
	h := &recordingDCS{}
	p.OnDCS("$q", h)
	p.Feed([]byte("\x1bP$qm\x1b\\"))
	if !h.hooked || !h.done {
		t.Fatalf("hooked=%v done=%v", h.hooked, h.done)
	}
	if string(h.put) != "m" {
		t.Fatalf("put = %q", h.put)
	}
}

func TestParserCANAbortsCSI(t *testing.T) {
	p := NewParser()
	csiCalled := false
	var printed []byte
	p.OnCSI('m', func([]int, string, byte) { csiCalled = true })
	p.OnPrint(func(data []byte) { printed = append(printed, data...) })
	// CAN aborts the in-progress CSI; "A" afterward is ordinary print.
	p.Feed([]byte("\x1b[31\x18A"))
	if csiCalled {
		t.Fatal("CSI handler should not fire after CAN abort")
	}
	if string(printed) != "A" {
		t.Fatalf("printed = %q", printed)
	}
}

func TestParserUnknownCSIFallback(t *testing.T) {
	p := NewParser()
	var gotFinal byte
	p.OnCSIFallback(func(_ []int, _ string, final byte) { gotFinal = final })
	p.Feed([]byte("\x1b[5y"))
	if gotFinal != 'y' {
		t.Fatalf("final = %c", gotFinal)
	}
}

func TestParserC1IntroducerMidSequence(t *testing.T) {
	p := NewParser()
	var gotFinal byte
	p.OnCSI('H', func(_ []int, _ string, final byte) { gotFinal = final })
	// C1 recognition only applies once a sequence is already open: in
	// Ground a 0x80-0x9F byte (such as the 8-bit CSI 0x9B) is part of a
	// print run. So this exercises the mid-sequence case: an 8-bit ST
	// (0x9C) closing an OSC string.
	var oscGot string
	p.OnOSC(0, func(payload []byte) { oscGot = string(payload) })
	p.Feed(append([]byte("\x1b]0;hi"), 0x9C))
	if oscGot != "hi" {
		t.Fatalf("osc = %q", oscGot)
	}
	_ = gotFinal
}

func TestParserResetClearsInFlightState(t *testing.T) {
	p := NewParser()
	p.Feed([]byte("\x1b[12;3"))
	p.Reset()
	var gotParams []int
	p.OnCSI('m', func(params []int, _ string, _ byte) { gotParams = params })
	p.Feed([]byte("\x1b[7m"))
	if !reflect.DeepEqual(gotParams, []int{7}) {
		t.Fatalf("params = %v, reset did not clear prior sequence", gotParams)
	}
}
