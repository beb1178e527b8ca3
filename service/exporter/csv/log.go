package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/codearena/contest_relay/service/exporter"
	"github.com/codearena/contest_relay/service/exporter/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CSVSubmissionLogExporter 导出比赛全部提交记录, 用于赛后仲裁
type CSVSubmissionLogExporter struct {
	log *zap.Logger
	db  *gorm.DB
}

var _ exporter.StandingsExporter = (*CSVSubmissionLogExporter)(nil)

func NewCSVSubmissionLogExporter(db *gorm.DB, log *zap.Logger) *CSVSubmissionLogExporter {
	return &CSVSubmissionLogExporter{
		db:  db,
		log: log,
	}
}

func (e *CSVSubmissionLogExporter) Export(ctx context.Context, contestID uint64, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	headers := []string{
		"提交ID",
		"用户ID",
		"题目",
		"语言",
		"远程提交ID",
		"判题结果",
		"通过测试点",
		"耗时(毫秒)",
		"内存(字节)",
		"提交时间",
	}
	err := csvWriter.Write(headers)
	if err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	batchSize := 1000
	page := 1
	record := make([]string, 0, len(headers))
	for {
		subs, err := common.FetchSubmissionLog(e.db, ctx, contestID, page, batchSize)
		if err != nil {
			return fmt.Errorf("csv exporter fetch submission log failed: %w", err)
		}
		if len(subs) == 0 {
			return nil
		}
		for _, sub := range subs {
			record = record[:0]
			record = append(record,
				strconv.FormatUint(sub.ID, 10),
				strconv.FormatUint(sub.UserID, 10),
				sub.ProblemCode,
				sub.Language,
				strconv.FormatInt(sub.JudgeSubmissionID, 10),
				string(sub.Verdict),
				strconv.Itoa(sub.TestsPassed),
				strconv.FormatInt(sub.TimeUsed, 10),
				strconv.FormatInt(sub.MemoryUsed, 10),
				sub.SubmittedAt.Format("2006-01-02 15:04:05"))
			if err = csvWriter.Write(record); err != nil {
				return fmt.Errorf("write record failed: %w", err)
			}
		}
		page++
	}
}
