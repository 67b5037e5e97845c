package notifier

import (
	"context"
	"fmt"
	"io"
)

// Writer prints messages instead of posting them, for dry runs.
type Writer struct {
	W io.Writer
}

func (w Writer) Name() string { return "writer" }

func (w Writer) Publish(_ context.Context, message string) error {
	_, err := fmt.Fprintln(w.W, message)
	return err
}
