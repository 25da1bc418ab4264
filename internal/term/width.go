package term

import "github.com/rivo/uniseg"

// RuneWidth returns the display width of r in columns: 0 for
// combining marks that fold into the previous cell, 1 for narrow
// characters, 2 for wide (East Asian / emoji) characters, per
// spec.md §4.3's width table requirement.
func RuneWidth(r rune) int {
	return uniseg.StringWidth(string(r))
}

// IsCombining reports whether r has zero display width and should be
// folded into the preceding cell rather than occupying one of its
// own.
func IsCombining(r rune) bool {
	return RuneWidth(r) == 0
}
