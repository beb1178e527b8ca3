package exporter

import (
	"context"
	"io"
)

type StandingsExporter interface {
	Export(ctx context.Context, contestID uint64, writer io.Writer) error
}
