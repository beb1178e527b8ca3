package factory

import (
	"sync"

	"github.com/codearena/contest_relay/service/exporter"
	"github.com/codearena/contest_relay/service/exporter/csv"
	"github.com/codearena/contest_relay/service/exporter/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExporterType string

const (
	CSVStandings     ExporterType = "csv-standings"
	XLSXStandings    ExporterType = "xlsx-standings"
	CSVSubmissionLog ExporterType = "csv-submissions"
)

var ExporterSuffixMap = map[ExporterType]string{
	CSVStandings:     ".csv",
	XLSXStandings:    ".xlsx",
	CSVSubmissionLog: ".csv",
}

type ExporterFactory struct {
	factory map[ExporterType]exporter.StandingsExporter
	db      *gorm.DB
	log     *zap.Logger
	mux     sync.RWMutex
}

func NewExporterFactory(db *gorm.DB, log *zap.Logger) *ExporterFactory {
	return &ExporterFactory{
		factory: make(map[ExporterType]exporter.StandingsExporter), // 延迟创建
		db:      db,
		log:     log,
	}
}

func (f *ExporterFactory) GetExporter(exporterType ExporterType) exporter.StandingsExporter {
	f.mux.RLock()
	if exp, exists := f.factory[exporterType]; exists {
		f.mux.RUnlock()
		return exp
	}
	f.mux.RUnlock()

	f.mux.Lock()
	defer f.mux.Unlock()

	// 双重检查，避免重复创建
	if exp, exists := f.factory[exporterType]; exists {
		return exp
	}

	switch exporterType {
	case CSVStandings:
		f.factory[CSVStandings] = csv.NewStreamableCSVStandingsExporter(f.db, f.log)
		return f.factory[CSVStandings]
	case XLSXStandings:
		f.factory[XLSXStandings] = xlsx.NewStreamableXLSXStandingsExporter(f.db, f.log)
		return f.factory[XLSXStandings]
	case CSVSubmissionLog:
		f.factory[CSVSubmissionLog] = csv.NewCSVSubmissionLogExporter(f.db, f.log)
		return f.factory[CSVSubmissionLog]
	}

	return nil
}
