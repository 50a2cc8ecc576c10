package condition

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

type objectStater interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// MinioCondition считает условие выполненным, если в бакете лежит документ-подтверждение
// с ключом "<prefix>/<param>".
type MinioCondition struct {
	client objectStater
	bucket string
	prefix string
}

func NewMinioCondition(client objectStater, bucket, prefix string) *MinioCondition {
	return &MinioCondition{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (m *MinioCondition) VerifyCondition(ctx context.Context, param int64) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, m.objectKey(param), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}

	if isNotFound(err) {
		return false, nil
	}

	return false, e.Wrap(whereami.WhereAmI(), err)
}

func (m *MinioCondition) objectKey(param int64) string {
	if m.prefix == "" {
		return fmt.Sprintf("%d", param)
	}

	return fmt.Sprintf("%s/%d", m.prefix, param)
}

// isNotFound распознаёт ответ S3 об отсутствующем объекте.
func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchObject", "NotFound":
		return true
	default:
		return false
	}
}
