package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kilianp07/powerplan/core/model"
)

// readPayload decodes and validates the payload stored in path. "-" reads stdin.
func readPayload(path string, stdin io.Reader) (model.Payload, error) {
	var p model.Payload
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return p, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decode payload: %w", err)
	}
	return p, p.Validate()
}
