package factory

import (
	"github.com/codearena/contest_relay/service/exporter"
	"github.com/codearena/contest_relay/service/exporter/csv"
	"github.com/codearena/contest_relay/service/exporter/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StandingsExporterType string

const (
	CSVStandingsExporter  StandingsExporterType = "csv"
	XLSXStandingsExporter StandingsExporterType = "xlsx"
)

type StandingsExporterFactory struct {
	factory map[StandingsExporterType]exporter.StandingsExporter
	db      *gorm.DB
	log     *zap.Logger
}

func NewStandingsExporterFactory(db *gorm.DB, log *zap.Logger) *StandingsExporterFactory {
	return &StandingsExporterFactory{
		factory: map[StandingsExporterType]exporter.StandingsExporter{
			CSVStandingsExporter:  csv.NewStreamableCSVStandingsExporter(db, log),
			XLSXStandingsExporter: xlsx.NewStreamableXLSXStandingsExporter(db, log),
		},
		db:  db,
		log: log,
	}
}

func (f *StandingsExporterFactory) GetStandingsExporter(exporterType StandingsExporterType) exporter.StandingsExporter {
	if exp, exists := f.factory[exporterType]; exists {
		return exp
	}

	switch exporterType {
	case CSVStandingsExporter:
		f.factory[CSVStandingsExporter] = csv.NewStreamableCSVStandingsExporter(f.db, f.log)
		return f.factory[CSVStandingsExporter]
	case XLSXStandingsExporter:
		f.factory[XLSXStandingsExporter] = xlsx.NewStreamableXLSXStandingsExporter(f.db, f.log)
		return f.factory[XLSXStandingsExporter]
	}

	return nil
}
