package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/codearena/contest_relay/model"
	"github.com/codearena/contest_relay/service/exporter"
	"github.com/codearena/contest_relay/service/exporter/common"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StreamableXLSXStandingsExporter struct {
	log *zap.Logger
	db  *gorm.DB
}

var _ exporter.StandingsExporter = (*StreamableXLSXStandingsExporter)(nil)

func NewStreamableXLSXStandingsExporter(db *gorm.DB, log *zap.Logger) *StreamableXLSXStandingsExporter {
	return &StreamableXLSXStandingsExporter{
		db:  db,
		log: log,
	}
}

func (e *StreamableXLSXStandingsExporter) Export(ctx context.Context, contestID uint64, writer io.Writer) error {
	ectx, cancel := context.WithCancel(ctx)
	defer cancel()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.Error("close excel file failed", zap.Error(err))
		}
	}()

	sheetName := "榜单"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)

	if err = e.writeHeader(f, sheetName); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

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

	currentRow := 2 // 首行为表头
	var goroutineErr error

	for {
		select {
		case rows, ok := <-rowCh:
			if !ok {
				if goroutineErr != nil {
					return fmt.Errorf("sub goroutine fetch standings failed: %w", goroutineErr)
				}
				if err = f.Write(writer); err != nil {
					return fmt.Errorf("write excel file failed: %w", err)
				}
				return nil
			}
			if err = e.processRows(f, sheetName, rows, &currentRow); err != nil {
				return fmt.Errorf("process standings failed: %w", err)
			}
		case err = <-errCh:
			if err != nil {
				goroutineErr = err
			}
		}
	}
}

// processRows 将榜单行写入 Excel 文件
func (e *StreamableXLSXStandingsExporter) processRows(f *excelize.File, sheetName string, rows []model.Standing, currentRow *int) error {
	for _, row := range rows {
		rowData := []interface{}{
			row.Rank,           // 名次
			row.UserID,         // 用户ID
			row.ProblemsSolved, // 通过题目数
			row.TotalPenalty,   // 总罚时(分钟)
			row.TotalPoints,    // 总得分
		}

		for col, value := range rowData {
			cell, err := excelize.CoordinatesToCellName(col+1, *currentRow)
			if err != nil {
				return fmt.Errorf("get cell name failed: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("set cell value failed: %w", err)
			}
		}
		*currentRow++
	}
	return nil
}

// writeHeader 写入Excel表头
func (e *StreamableXLSXStandingsExporter) writeHeader(f *excelize.File, sheetName string) error {
	headers := []string{
		"名次",
		"用户ID",
		"通过题目数",
		"总罚时(分钟)",
		"总得分",
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("get cell name failed: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("set header value failed: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style failed: %w", err)
		}
	}

	columnWidths := map[string]float64{
		"A": 10, // 名次
		"B": 15, // 用户ID
		"C": 15, // 通过题目数
		"D": 18, // 总罚时
		"E": 12, // 总得分
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}

	return nil
}
