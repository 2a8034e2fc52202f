package app

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"elb-stats/internal/downloaders"
	"elb-stats/internal/models"
	"elb-stats/internal/objectstore/mocks"
	"elb-stats/internal/shared/configs"
)

const externalKeyPrefix = "710026814108_elasticloadbalancing_ap-northeast-1_app.api-prod-elb."

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	return &configs.Config{
		Log: configs.LogConfig{Level: "info"},
		S3: configs.S3Config{
			Bucket:         "prod-lbs-access-log",
			Region:         "ap-northeast-1",
			BasePrefix:     "AWSLogs/710026814108/elasticloadbalancing/ap-northeast-1",
			ExternalPrefix: externalKeyPrefix,
			InternalPrefix: "710026814108_elasticloadbalancing_ap-northeast-1_app.internal-elb.",
		},
		Staging: configs.StagingConfig{RootDir: t.TempDir()},
		Report:  configs.ReportConfig{OutputDir: t.TempDir()},
	}
}

func newTestApp(t *testing.T, store *mocks.MockObjectStore) *App {
	t.Helper()
	application, err := newApp(testConfig(t), zerolog.Nop(), store)
	require.NoError(t, err)
	return application
}

// accessLogLine renders one ALB-style access-log line. The request is a
// single quoted field; splitting the line on spaces puts the method at
// index 12 and the URL at index 13.
func accessLogLine(timestamp, method, url string) string {
	return strings.Join([]string{
		"https", timestamp, "app/api-prod-elb/50dc6c495c0c9188",
		"1.2.3.4:5402", "10.0.0.1:80", "0.000", "0.001", "0.000",
		"200", "200", "34", "366",
		`"` + method + " " + url + ` HTTP/1.1"`,
	}, " ")
}

func gzipBody(t *testing.T, lines ...string) func(ctx context.Context, bucket, key string, w io.Writer) error {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := zw.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	body := buf.Bytes()

	return func(ctx context.Context, bucket, key string, w io.Writer) error {
		_, err := w.Write(body)
		return err
	}
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	application := newTestApp(t, store)

	window := models.NewTimeWindow(
		time.Date(2018, 3, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 3, 21, 23, 0, 0, 0, time.UTC),
	)
	prefix := models.NewExternalSource(externalKeyPrefix).
		ListingPrefix("AWSLogs/710026814108/elasticloadbalancing/ap-northeast-1", window.Start)
	key := prefix + "stub_20180321T0910Z_1.2.3.4.log.gz"

	store.EXPECT().List(gomock.Any(), "prod-lbs-access-log", prefix).Return([]string{key}, nil)
	store.EXPECT().Download(gomock.Any(), "prod-lbs-access-log", key, gomock.Any()).DoAndReturn(gzipBody(t,
		accessLogLine("2018-03-21T09:10:01.000000Z", "GET", "https://api.soocii.me:443/graph/v1.2/123?cursor=abc"),
		accessLogLine("2018-03-21T09:10:02.000000Z", "GET", "https://api.soocii.me:443/graph/v1.2/456?cursor=def"),
		accessLogLine("2018-03-21T09:10:03.000000Z", "POST", "https://api.soocii.me:443/api/v1/posts/9"),
		accessLogLine("2018-03-21T09:10:04.000000Z", "GET", "https://api.soocii.me:443/api/v1/content/corpus/7"),
	))

	path, err := application.Run(context.Background(), RunOptions{Window: window, External: true})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"service,method,url,count\n"+
			"pepper,GET,https://api.soocii.me:443/graph/v1.2/<id>,2\n"+
			"jarvis,POST,https://api.soocii.me:443/api/v1/posts/<id>,1\n",
		string(content))
}

func TestRun_OutputExistsAfterRun(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	application := newTestApp(t, store)

	window := models.NewTimeWindow(
		time.Date(2018, 3, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 3, 21, 23, 0, 0, 0, time.UTC),
	)
	prefix := models.NewExternalSource(externalKeyPrefix).
		ListingPrefix("AWSLogs/710026814108/elasticloadbalancing/ap-northeast-1", window.Start)
	key := prefix + "stub_20180321T0100Z_1.2.3.4.log.gz"

	store.EXPECT().List(gomock.Any(), gomock.Any(), prefix).Return([]string{key}, nil)
	store.EXPECT().Download(gomock.Any(), gomock.Any(), key, gomock.Any()).DoAndReturn(gzipBody(t,
		accessLogLine("2018-03-21T01:00:01.000000Z", "GET", "/healthcheck"),
	))

	exists, err := application.OutputExists(context.Background(), window)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = application.Run(context.Background(), RunOptions{Window: window, External: true})
	require.NoError(t, err)

	exists, err = application.OutputExists(context.Background(), window)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRun_DownloadFailureStopsPipeline(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStore(ctrl)
	application := newTestApp(t, store)

	window := models.NewTimeWindow(
		time.Date(2018, 3, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 3, 21, 23, 0, 0, 0, time.UTC),
	)
	store.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := application.Run(context.Background(), RunOptions{Window: window, External: true})
	assert.ErrorIs(t, err, downloaders.ErrNoObjectsFound)
}
