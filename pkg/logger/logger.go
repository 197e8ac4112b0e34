package logger

import (
	"context"
	"fmt"
	"os"
	"sync"

	appconfig "leaguelake/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// Logger writes run logs to a temporary file that is shipped to the
// log bucket after the run, mirroring every line to the console.
type Logger struct {
	mu       sync.Mutex
	console  zerolog.Logger
	logFile  *os.File
	filePath string
	lake     appconfig.LakeConfiguration
}

// NewLogger creates the log instance with a temporary file.
func NewLogger(cfg *appconfig.Config) (*Logger, error) {
	f, err := os.CreateTemp("", "leaguelake-run-*.log")
	if err != nil {
		return nil, err
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	console := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()

	return &Logger{
		console:  console,
		logFile:  f,
		filePath: f.Name(),
		lake:     cfg.Lake,
	}, nil
}

// Infof logs a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.console.Info().Msgf(format, args...)
	l.write("[INFO]", format, args...)
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...any) {
	l.console.Error().Msgf(format, args...)
	l.write("[ERROR]", format, args...)
}

// write appends a formatted line to the run file.
func (l *Logger) write(infoType string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("%-8s %s\n", infoType, fmt.Sprintf(format, args...))
	l.logFile.WriteString(line)
}

// CleanFile truncates the run file contents.
func (l *Logger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// UploadToBucket ships the run log to the log bucket under the given key.
// The file is cleaned after a successful upload.
func (l *Logger) UploadToBucket(ctx context.Context, objectKey string) error {
	if l.lake.LogBucket == "" {
		return nil
	}

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %v", err)
	}

	cfg := aws.Config{
		Region: l.lake.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				l.lake.AccessKey,
				l.lake.AccessSecret,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if l.lake.Endpoint != "" {
			o.BaseEndpoint = aws.String(l.lake.Endpoint)
		}
	})

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.lake.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to the log bucket: %v", objectKey, err)
	}

	l.CleanFile()

	return nil
}
