package output

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/crimson-sun/armnn2perfetto/internal/perfetto"
)

// Encode serializes doc. Map keys are sorted so identical input always
// yields identical bytes. pretty indents with two spaces.
func Encode(doc perfetto.Document, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	} else {
		data, err = sonic.ConfigStd.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("encode trace: %w", err)
	}
	return append(data, '\n'), nil
}
