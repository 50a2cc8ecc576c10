package condition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestAllowList(t *testing.T) {
	list := NewAllowList(1, 42, -7)
	ctx := context.Background()

	for _, p := range []int64{1, 42, -7} {
		ok, err := list.VerifyCondition(ctx, p)
		require.NoError(t, err)
		require.True(t, ok, "param %d", p)
	}

	ok, err := list.VerifyCondition(ctx, 2)
	require.NoError(t, err)
	require.False(t, ok)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = list.VerifyCondition(canceled, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithTimeout(t *testing.T) {
	slow := Func(func(ctx context.Context, _ int64) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	})

	_, err := WithTimeout(slow, 10*time.Millisecond).VerifyCondition(context.Background(), 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	inner := NewAllowList(1)
	require.Same(t, inner, WithTimeout(inner, 0))
}

type fakeRedis struct {
	key    string
	member interface{}
	result bool
	err    error
}

func (f *fakeRedis) SIsMember(_ context.Context, key string, member interface{}) *redis.BoolCmd {
	f.key = key
	f.member = member
	return redis.NewBoolResult(f.result, f.err)
}

func TestRedisCondition(t *testing.T) {
	client := &fakeRedis{result: true}
	cond := NewRedisCondition(client, "registry:verified-params")

	ok, err := cond.VerifyCondition(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "registry:verified-params", client.key)
	require.Equal(t, "42", client.member)

	client.result = false
	ok, err = cond.VerifyCondition(context.Background(), 42)
	require.NoError(t, err)
	require.False(t, ok)

	boom := errors.New("connection refused")
	client.err = boom
	_, err = cond.VerifyCondition(context.Background(), 42)
	require.ErrorIs(t, err, boom)
}

type fakeRow struct {
	exists bool
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.exists
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (f *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.args = args
	return f.row
}

func TestPostgresCondition(t *testing.T) {
	db := &fakeQuerier{row: fakeRow{exists: true}}
	cond := NewPostgresCondition(db)

	ok, err := cond.VerifyCondition(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []any{int64(7)}, db.args)

	db.row = fakeRow{exists: false}
	ok, err = cond.VerifyCondition(context.Background(), 7)
	require.NoError(t, err)
	require.False(t, ok)

	db.row = fakeRow{err: pgx.ErrNoRows}
	_, err = cond.VerifyCondition(context.Background(), 7)
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

type fakeStater struct {
	bucket string
	object string
	err    error
}

func (f *fakeStater) StatObject(_ context.Context, bucketName, objectName string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	f.bucket = bucketName
	f.object = objectName
	return minio.ObjectInfo{}, f.err
}

func TestMinioCondition(t *testing.T) {
	client := &fakeStater{}
	cond := NewMinioCondition(client, "attest", "/attestations/")

	ok, err := cond.VerifyCondition(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "attest", client.bucket)
	require.Equal(t, "attestations/42", client.object)

	client.err = minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	ok, err = cond.VerifyCondition(context.Background(), 42)
	require.NoError(t, err)
	require.False(t, ok)

	client.err = minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}
	_, err = cond.VerifyCondition(context.Background(), 42)
	require.Error(t, err)
}

func TestMinioCondition_NoPrefix(t *testing.T) {
	client := &fakeStater{}
	_, err := NewMinioCondition(client, "attest", "").VerifyCondition(context.Background(), -1)
	require.NoError(t, err)
	require.Equal(t, "-1", client.object)
}
