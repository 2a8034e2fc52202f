package stores

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"elb-stats/internal/models"
	"elb-stats/internal/shared/filestorages"
)

// csvHeader is the first row of every report.
var csvHeader = []string{"service", "method", "url", "count"}

// StatsReportStore persists finished reports. The report key encodes the
// window boundaries, so re-running an identical window targets the same
// file. Deciding whether to overwrite a pre-existing report is the
// caller's job (it prompts the operator); Exists is the check it uses.
//
//go:generate mockgen -source=stats_report_store.go -destination=./mocks/stats_report_store_mock.go -package=mocks
type StatsReportStore interface {
	Exists(ctx context.Context, window models.TimeWindow) (bool, error)
	// Write renders the report as CSV and returns the absolute path it
	// landed at. An existing report for the same window is overwritten.
	Write(ctx context.Context, report *models.StatsReport) (string, error)
}

type statsReportStore struct {
	fileStorage filestorages.FileStorage
}

func NewStatsReportStore(fileStorage filestorages.FileStorage) StatsReportStore {
	return &statsReportStore{fileStorage: fileStorage}
}

func (s *statsReportStore) Exists(ctx context.Context, window models.TimeWindow) (bool, error) {
	exists, err := s.fileStorage.Exists(ctx, reportKey(window))
	if err != nil {
		return false, fmt.Errorf("failed to check report existence: %w", err)
	}
	return exists, nil
}

func (s *statsReportStore) Write(ctx context.Context, report *models.StatsReport) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range report.Rows {
		record := []string{row.Key.Service, row.Key.Method, row.Key.URL, strconv.FormatInt(row.Count, 10)}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	key := reportKey(report.Window)
	_, err := s.fileStorage.Put(ctx, key, &buf, filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return "", fmt.Errorf("failed to put report: %w", err)
	}
	return s.fileStorage.FullPath(key), nil
}

func reportKey(window models.TimeWindow) string {
	return fmt.Sprintf("api-usage_%s.csv", window)
}
