package editor

import "strings"

// KeyKind identifies the class of a decoded key event.
type KeyKind int

const (
	// KeyNone is an unrecognized key; the editor ignores it.
	KeyNone KeyKind = iota
	// KeyRune is a printable rune (possibly with Ctrl held).
	KeyRune
	// KeyEsc is the escape key.
	KeyEsc
	// KeyEnter is the return key.
	KeyEnter
	// KeyBackspace is the backspace key.
	KeyBackspace
)

// Key is a single decoded key event.
type Key struct {
	Kind KeyKind
	Rune rune
	Ctrl bool
}

// RuneKey wraps a printable rune.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// CtrlKey wraps a rune with the Ctrl modifier.
func CtrlKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r, Ctrl: true}
}

// ParseKey decodes a Bubble Tea key string (tea.KeyMsg.String()) into a
// Key. Unrecognized sequences return a KeyNone key.
func ParseKey(s string) Key {
	switch s {
	case "esc":
		return Key{Kind: KeyEsc}
	case "enter":
		return Key{Kind: KeyEnter}
	case "backspace":
		return Key{Kind: KeyBackspace}
	case "tab":
		return RuneKey('\t')
	case " ", "space":
		return RuneKey(' ')
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		r := []rune(rest)
		if len(r) == 1 {
			return CtrlKey(r[0])
		}
		return Key{Kind: KeyNone}
	}
	r := []rune(s)
	if len(r) == 1 {
		return RuneKey(r[0])
	}
	return Key{Kind: KeyNone}
}
