package blob

import (
	"context"
	"fmt"

	"clinicore/internal/config"
	"clinicore/internal/infra/blob/fs"
	"clinicore/internal/infra/blob/memory"
	"clinicore/internal/infra/blob/s3"
)

// Open selects a Store implementation from the loaded configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch Driver(cfg.BlobDriver) {
	case DriverFilesystem:
		return fs.New(cfg.BlobFSRoot)
	case DriverS3:
		return s3.New(ctx, s3.Config{
			Bucket:           cfg.S3Bucket,
			Region:           cfg.S3Region,
			Endpoint:         cfg.S3Endpoint,
			AccessKeyID:      cfg.S3AccessKey,
			SecretAccessKey:  cfg.S3SecretKey,
			PathStyle:        cfg.S3UsePathStyle,
			DisableTLSVerify: cfg.S3DisableVerify,
		})
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
	}
}
