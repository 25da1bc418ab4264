package term

import "fmt"

// dcsRequest implements DCSHandler for DECRQSS (DCS $ q Pt ST), per
// spec.md §4.3: it accumulates the requested setting name across Put
// calls and replies with the serialized current value on Unhook.
type dcsRequest struct {
	t  *Terminal
	pt []byte
}

func (d *dcsRequest) Hook(collect string, params []int, final byte) {
	d.pt = d.pt[:0]
}

func (d *dcsRequest) Put(data []byte) {
	d.pt = append(d.pt, data...)
}

func (d *dcsRequest) Unhook() {
	reply, ok := d.t.decrqssReply(string(d.pt))
	valid := 0
	if ok {
		valid = 1
	}
	d.t.delegate.Send([]byte(fmt.Sprintf("\x1bP%d$r%s\x1b\\", valid, reply)))
}

func (t *Terminal) registerDCSHandlers() {
	t.dcsReply = &dcsRequest{t: t}
	t.parser.OnDCS("$q", t.dcsReply)
}

// decrqssReply serializes the current setting named by pt: "m" (SGR,
// stubbed to "0m" whatever the current attributes), "r" (DECSTBM), `"p`
// (DECSCL), or `"q` (DECSCA).
func (t *Terminal) decrqssReply(pt string) (reply string, ok bool) {
	switch pt {
	case "m":
		return "0m", true
	case "r":
		buf := t.bufs.Active()
		top, bottom := buf.ScrollRegion()
		return fmt.Sprintf("%d;%dr", top+1, bottom+1), true
	case "\"p":
		return "61;1\"p", true
	case "\"q":
		return "0\"q", true
	default:
		return "", false
	}
}
