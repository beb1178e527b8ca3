package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/service/exporter"
	"github.com/codearena/contest_relay/service/exporter/common"
	"github.com/to404hanga/pkg404/gotools/transform"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StreamableCSVStandingsExporter struct {
	log *zap.Logger
	db  *gorm.DB
}

var _ exporter.StandingsExporter = (*StreamableCSVStandingsExporter)(nil)

func NewStreamableCSVStandingsExporter(db *gorm.DB, log *zap.Logger) *StreamableCSVStandingsExporter {
	return &StreamableCSVStandingsExporter{
		db:  db,
		log: log,
	}
}

func (e *StreamableCSVStandingsExporter) Export(ctx context.Context, contestID uint64, writer io.Writer) error {
	ectx, cancel := context.WithCancel(ctx)
	defer cancel()

	batchSize := 1000
	page := 1
	rowCh := make(chan []model.Standing, 3)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)
		for {
			select {
			case <-ectx.Done():
				errCh <- ectx.Err()
				return
			default:
				rows, errGoroutine := common.FetchStandings(e.db, ectx, contestID, page, batchSize)
				if errGoroutine != nil {
					errCh <- errGoroutine
					return
				}
				if len(rows) == 0 {
					return
				}
				rowCh <- rows
				page++
			}
		}
	}()

	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	err := e.writeHeader(csvWriter)
	if err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	var goroutineErr error
	for {
		select {
		case rows, ok := <-rowCh:
			if !ok {
				if goroutineErr != nil {
					return fmt.Errorf("sub goroutine fetch standings failed: %w", goroutineErr)
				}
				return nil
			}
			if err = e.processRows(csvWriter, rows); err != nil {
				return fmt.Errorf("process standings failed: %w", err)
			}
		case err = <-errCh:
			if err != nil {
				goroutineErr = err
			}
		}
	}
}

// processRows 将榜单行转换为 CSV 记录
func (e *StreamableCSVStandingsExporter) processRows(csvWriter *csv.Writer, rows []model.Standing) error {
	records := transform.SliceFromSlice(rows, func(idx int, row model.Standing) []string {
		return []string{
			strconv.Itoa(row.Rank),                    // 名次
			strconv.FormatUint(row.UserID, 10),        // 用户ID
			strconv.Itoa(row.ProblemsSolved),          // 通过题目数
			strconv.Itoa(row.TotalPenalty),            // 总罚时(分钟)
			strconv.Itoa(row.TotalPoints),             // 总得分
		}
	})
	return csvWriter.WriteAll(records)
}

// writeHeader 写入 CSV 头部
func (e *StreamableCSVStandingsExporter) writeHeader(csvWriter *csv.Writer) error {
	headers := []string{
		"名次",
		"用户ID",
		"通过题目数",
		"总罚时(分钟)",
		"总得分",
	}
	return csvWriter.Write(headers)
}
