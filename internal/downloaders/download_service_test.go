package downloaders

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"elb-stats/internal/models"
	"elb-stats/internal/objectstore/mocks"
	"elb-stats/internal/shared/configs"
	"elb-stats/internal/shared/filestorages"
	"elb-stats/internal/shared/progress"
	"elb-stats/internal/shared/svcerrors"
)

var testS3Config = configs.S3Config{
	Bucket:     "prod-lbs-access-log",
	Region:     "ap-northeast-1",
	BasePrefix: "AWSLogs/710026814108/elasticloadbalancing/ap-northeast-1",
}

const externalKeyPrefix = "710026814108_elasticloadbalancing_ap-northeast-1_app.api-prod-elb."

func newTestService(t *testing.T, store *mocks.MockObjectStore) (DownloadService, filestorages.FileStorage) {
	t.Helper()
	staging, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	reporter := progress.NewReporter(zerolog.Nop())
	return NewDownloadService(store, staging, reporter, testS3Config), staging
}

func windowMarch21() models.TimeWindow {
	return models.NewTimeWindow(
		time.Date(2018, 3, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 3, 21, 23, 0, 0, 0, time.UTC),
	)
}

func externalPrefix(date time.Time) string {
	return models.NewExternalSource(externalKeyPrefix).ListingPrefix(testS3Config.BasePrefix, date)
}

func writeBody(body string) func(ctx context.Context, bucket, key string, w io.Writer) error {
	return func(ctx context.Context, bucket, key string, w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	}
}

func TestDownload_FetchesOnlyKeysInWindow(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, staging := newTestService(t, store)

	window := windowMarch21()
	prefix := externalPrefix(window.Start)

	keys := []string{
		prefix + "stub_20180321T0000Z_1.2.3.4.log.gz", // equal to start, excluded
		prefix + "stub_20180321T0100Z_1.2.3.4.log.gz",
		prefix + "stub_20180321T2200Z_1.2.3.4.log.gz",
		prefix + "stub_20180321T2300Z_1.2.3.4.log.gz", // equal to end, excluded
	}

	store.EXPECT().List(gomock.Any(), testS3Config.Bucket, prefix).Return(keys, nil)
	store.EXPECT().Download(gomock.Any(), testS3Config.Bucket, keys[1], gomock.Any()).DoAndReturn(writeBody("one"))
	store.EXPECT().Download(gomock.Any(), testS3Config.Bucket, keys[2], gomock.Any()).DoAndReturn(writeBody("two"))

	sources := []models.Source{models.NewExternalSource(externalKeyPrefix)}
	require.NoError(t, service.Download(context.Background(), window, sources, false))

	content, err := os.ReadFile(staging.FullPath("ext/stub_20180321T0100Z_1.2.3.4.log.gz"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(content))

	exists, err := staging.Exists(context.Background(), "ext/stub_20180321T0000Z_1.2.3.4.log.gz")
	require.NoError(t, err)
	assert.False(t, exists, "boundary key must not be fetched")
}

func TestDownload_SecondRunDownloadsNothing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, _ := newTestService(t, store)

	window := windowMarch21()
	prefix := externalPrefix(window.Start)
	keys := []string{prefix + "stub_20180321T0100Z_1.2.3.4.log.gz"}
	sources := []models.Source{models.NewExternalSource(externalKeyPrefix)}

	store.EXPECT().List(gomock.Any(), testS3Config.Bucket, prefix).Return(keys, nil).Times(2)
	// Exactly one fetch across both runs.
	store.EXPECT().Download(gomock.Any(), testS3Config.Bucket, keys[0], gomock.Any()).DoAndReturn(writeBody("x")).Times(1)

	require.NoError(t, service.Download(context.Background(), window, sources, false))
	require.NoError(t, service.Download(context.Background(), window, sources, false))
}

func TestDownload_ForceRefetchesExisting(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, staging := newTestService(t, store)

	window := windowMarch21()
	prefix := externalPrefix(window.Start)
	keys := []string{prefix + "stub_20180321T0100Z_1.2.3.4.log.gz"}
	sources := []models.Source{models.NewExternalSource(externalKeyPrefix)}

	store.EXPECT().List(gomock.Any(), testS3Config.Bucket, prefix).Return(keys, nil).Times(2)
	store.EXPECT().Download(gomock.Any(), testS3Config.Bucket, keys[0], gomock.Any()).DoAndReturn(writeBody("old")).Times(1)
	require.NoError(t, service.Download(context.Background(), window, sources, false))

	store.EXPECT().Download(gomock.Any(), testS3Config.Bucket, keys[0], gomock.Any()).DoAndReturn(writeBody("new")).Times(1)
	require.NoError(t, service.Download(context.Background(), window, sources, true))

	content, err := os.ReadFile(staging.FullPath("ext/stub_20180321T0100Z_1.2.3.4.log.gz"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestDownload_EmptyListing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, _ := newTestService(t, store)

	window := windowMarch21()
	store.EXPECT().List(gomock.Any(), testS3Config.Bucket, externalPrefix(window.Start)).Return(nil, nil)

	err := service.Download(context.Background(), window, []models.Source{models.NewExternalSource(externalKeyPrefix)}, false)
	assert.ErrorIs(t, err, ErrNoObjectsFound)
}

func TestDownload_NoKeysInRange(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, _ := newTestService(t, store)

	window := windowMarch21()
	prefix := externalPrefix(window.Start)
	// Non-empty listing, but everything outside the window.
	keys := []string{prefix + "stub_20180322T0100Z_1.2.3.4.log.gz"}
	store.EXPECT().List(gomock.Any(), testS3Config.Bucket, prefix).Return(keys, nil)

	err := service.Download(context.Background(), window, []models.Source{models.NewExternalSource(externalKeyPrefix)}, false)
	assert.ErrorIs(t, err, ErrNoObjectsInRange)
	assert.NotErrorIs(t, err, ErrNoObjectsFound)
}

func TestDownload_MalformedKeyTimestamp(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, _ := newTestService(t, store)

	window := windowMarch21()
	prefix := externalPrefix(window.Start)
	keys := []string{prefix + "stub_not-a-timestamp_1.2.3.4.log.gz"}
	store.EXPECT().List(gomock.Any(), testS3Config.Bucket, prefix).Return(keys, nil)

	err := service.Download(context.Background(), window, []models.Source{models.NewExternalSource(externalKeyPrefix)}, false)
	svcErr, ok := svcerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "DL_1002", svcErr.Code)
}

func TestDownload_IteratesEveryDayAndSource(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	service, _ := newTestService(t, store)

	window := models.NewTimeWindow(
		time.Date(2018, 3, 21, 12, 0, 0, 0, time.UTC),
		time.Date(2018, 3, 22, 12, 0, 0, 0, time.UTC),
	)
	external := models.NewExternalSource(externalKeyPrefix)
	internal := models.NewInternalSource("710026814108_elasticloadbalancing_ap-northeast-1_app.api-prod-internal-elb.")

	for _, date := range window.Dates() {
		for _, source := range []models.Source{external, internal} {
			prefix := source.ListingPrefix(testS3Config.BasePrefix, date)
			key := prefix + "stub_20180321T1300Z_1.2.3.4.log.gz"
			if date.Day() == 22 {
				key = prefix + "stub_20180322T1100Z_1.2.3.4.log.gz"
			}
			store.EXPECT().List(gomock.Any(), testS3Config.Bucket, prefix).Return([]string{key}, nil)
			store.EXPECT().Download(gomock.Any(), testS3Config.Bucket, key, gomock.Any()).DoAndReturn(writeBody("x"))
		}
	}

	err := service.Download(context.Background(), window, []models.Source{external, internal}, false)
	require.NoError(t, err)
}
