package term

// registerOSCHandlers wires OSC 0/1/2 (title/icon) per spec.md §4.3.
// Unknown codes are logged, matching the "Unknown codes are logged"
// contract.
func (t *Terminal) registerOSCHandlers() {
	p := t.parser
	p.OnOSC(0, func(payload []byte) { t.setTitle(string(payload)) })
	p.OnOSC(1, func(payload []byte) { t.iconName = string(payload) })
	p.OnOSC(2, func(payload []byte) { t.setTitle(string(payload)) })
	p.OnOSCFallback(func(payload []byte) {
		t.logf("protocol", "unhandled OSC", "payload", string(payload))
	})
}

func (t *Terminal) setTitle(title string) {
	t.title = title
	t.delegate.SetTerminalTitle(title)
}
