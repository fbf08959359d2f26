package cli

import (
	"errors"
	"fmt"
)

var errNotTerminal = errors.New("the panel needs a terminal; use `serverpanel servers ...` for scripting")

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type unknownKeyError struct {
	key string
}

func (e unknownKeyError) Error() string {
	return fmt.Sprintf("unknown config key: %s (want one of %v)", e.key, configKeys)
}
