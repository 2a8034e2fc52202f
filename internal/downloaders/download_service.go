package downloaders

import (
	"bytes"
	"context"
	"path"
	"strings"
	"time"

	"elb-stats/internal/models"
	"elb-stats/internal/objectstore"
	"elb-stats/internal/shared/configs"
	"elb-stats/internal/shared/filestorages"
	"elb-stats/internal/shared/loggers"
	"elb-stats/internal/shared/progress"
)

const stageDownload = "download"

//go:generate mockgen -source=download_service.go -destination=./mocks/download_service_mock.go -package=mocks
type DownloadService interface {
	// Download stages every in-window archive for the enabled sources.
	// Archives already staged are skipped unless force is set.
	Download(ctx context.Context, window models.TimeWindow, sources []models.Source, force bool) error
}

type downloadService struct {
	objectStore objectstore.ObjectStore
	staging     filestorages.FileStorage
	reporter    progress.Reporter
	bucket      string
	basePrefix  string
}

func NewDownloadService(objectStore objectstore.ObjectStore, staging filestorages.FileStorage, reporter progress.Reporter, cfg configs.S3Config) DownloadService {
	return &downloadService{
		objectStore: objectStore,
		staging:     staging,
		reporter:    reporter,
		bucket:      cfg.Bucket,
		basePrefix:  cfg.BasePrefix,
	}
}

func (s *downloadService) Download(ctx context.Context, window models.TimeWindow, sources []models.Source, force bool) error {
	logger := loggers.Ctx(ctx)

	for _, date := range window.Dates() {
		logger.Info().
			Str(loggers.FieldDate, date.Format("2006-01-02")).
			Msg("start downloading files")

		for _, source := range sources {
			if err := s.downloadDay(ctx, window, source, date, force); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *downloadService) downloadDay(ctx context.Context, window models.TimeWindow, source models.Source, date time.Time, force bool) error {
	logger := loggers.Ctx(ctx)
	prefix := source.ListingPrefix(s.basePrefix, date)

	keys, err := s.objectStore.List(ctx, s.bucket, prefix)
	if err != nil {
		return errInternalObjectStoreFailed(err)
	}
	if len(keys) == 0 {
		return errNoObjectsFound(prefix)
	}
	logger.Debug().
		Str(loggers.FieldSource, source.Name).
		Str(loggers.FieldPrefix, prefix).
		Msgf("listing returned %d objects", len(keys))

	inRange, err := filterKeysInWindow(keys, prefix, window)
	if err != nil {
		return err
	}
	if len(inRange) == 0 {
		return errNoObjectsInRange(prefix)
	}

	downloaded, skipped := 0, 0
	total := len(inRange)
	for _, key := range inRange {
		stagingKey := path.Join(source.Dir, strings.TrimPrefix(key, prefix))

		if !force {
			exists, err := s.staging.Exists(ctx, stagingKey)
			if err != nil {
				return errInternalStagingFailed(err)
			}
			if exists {
				total--
				skipped++
				metricFilesSkippedTotal.WithLabelValues(source.Name).Inc()
				continue
			}
		}

		if err := s.fetch(ctx, key, stagingKey); err != nil {
			return err
		}
		downloaded++
		metricFilesDownloadedTotal.WithLabelValues(source.Name).Inc()
		s.reporter.Report(stageDownload, downloaded, total)
	}
	s.reporter.Done(stageDownload, downloaded, skipped)
	return nil
}

func (s *downloadService) fetch(ctx context.Context, key, stagingKey string) error {
	var buf bytes.Buffer
	if err := s.objectStore.Download(ctx, s.bucket, key, &buf); err != nil {
		return errInternalObjectStoreFailed(err)
	}

	_, err := s.staging.Put(ctx, stagingKey, &buf, filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return errInternalStagingFailed(err)
	}
	return nil
}

// filterKeysInWindow keeps the keys whose embedded timestamp lies strictly
// inside the window. Listing order is preserved.
func filterKeysInWindow(keys []string, prefix string, window models.TimeWindow) ([]string, error) {
	var inRange []string
	for _, key := range keys {
		t, err := models.TimestampFromName(strings.TrimPrefix(key, prefix))
		if err != nil {
			return nil, errInvalidKeyTimestamp(key, err)
		}
		if window.Contains(t) {
			inRange = append(inRange, key)
		}
	}
	return inRange, nil
}
