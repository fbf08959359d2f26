package tui

import "time"

const statusTimeout = 3 * time.Second

// saveMsg fires when the debounce window of save seq has elapsed.
type saveMsg struct{ seq int }

type statusDoneMsg struct{ seq int }
