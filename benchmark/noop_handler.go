package benchmark

import (
	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/handler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Execute(record *core.Record) error {
	_ = len(record.Message)
	return nil
}
