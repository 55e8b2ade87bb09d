package cache

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

func encodeTo(w io.WriteCloser, p *Payload) error {
	if err := msgpack.NewEncoder(w).Encode(p); err != nil {
		return err
	}
	return w.Close()
}
