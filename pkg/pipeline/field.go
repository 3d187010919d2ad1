package pipeline

// TextField is an in-memory EntryField. The zero value is an empty,
// unfocused field.
type TextField struct {
	value   string
	focused bool
}

// Set replaces the field text, as typing would.
func (f *TextField) Set(v string) { f.value = v }

func (f *TextField) Value() string { return f.value }

func (f *TextField) Clear() { f.value = "" }

func (f *TextField) Focus() { f.focused = true }

// Blur removes input focus.
func (f *TextField) Blur() { f.focused = false }

func (f *TextField) Focused() bool { return f.focused }
