package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func exerciseContract(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "user")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "user", []byte(`{"email":"a@b.c"}`)))
	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, `{"email":"a@b.c"}`, string(got))

	require.NoError(t, s.Set(ctx, "user", []byte("second")))
	got, err = s.Get(ctx, "user")
	require.NoError(t, err)
	require.Equal(t, "second", string(got))

	require.NoError(t, s.Delete(ctx, "user"))
	_, err = s.Get(ctx, "user")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, s.Delete(ctx, "user"))
}

func TestMemoryContract(t *testing.T) {
	exerciseContract(t, NewMemory())
}

func TestMemoryZeroValueAndCopies(t *testing.T) {
	var m Memory
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
	got[1] = 'z'

	again, _ := m.Get(ctx, "k")
	require.Equal(t, "abc", string(again))
	require.Equal(t, 1, m.Len())
}

func TestFileContract(t *testing.T) {
	exerciseContract(t, NewFile(filepath.Join(t.TempDir(), "nested", "state")))
}

func TestFileSurvivesNewInstance(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	require.NoError(t, NewFile(dir).Set(ctx, "pentaledger/user", []byte("v1")))

	got, err := NewFile(dir).Get(ctx, "pentaledger/user")
	require.NoError(t, err)
	require.Equal(t, "v1", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileUnavailableWhenDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewFile(filepath.Join(blocker, "sub")).Set(context.Background(), "user", []byte("v"))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFileRejectsKeysOutsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "state")
	store := NewFile(dir)
	ctx := context.Background()

	for _, key := range []string{"", ".", ".."} {
		require.ErrorIs(t, store.Set(ctx, key, []byte("v")), ErrInvalidKey, "set %q", key)
		_, err := store.Get(ctx, key)
		require.ErrorIs(t, err, ErrInvalidKey, "get %q", key)
		require.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey, "delete %q", key)
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Empty(t, entries)

	require.NoError(t, store.Set(ctx, "../escape", []byte("v")))
	entries, err = os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "state", entries[0].Name())
}

func TestFileHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFile(t.TempDir()).Get(ctx, "user")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRedisContract(t *testing.T) {
	_, rdb := newTestRedis(t)
	exerciseContract(t, NewRedis(rdb, "pentaauth"))
}

func TestRedisKeyPrefix(t *testing.T) {
	mr, rdb := newTestRedis(t)
	s := NewRedis(rdb, "pl")
	require.NoError(t, s.Set(context.Background(), "user", []byte("v")))
	require.True(t, mr.Exists("pl:user"))

	bare := NewRedis(rdb, "")
	require.NoError(t, bare.Set(context.Background(), "user", []byte("v")))
	require.True(t, mr.Exists("user"))
}

func TestRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	s := NewRedis(rdb, "pl")
	mr.Close()

	_, err = s.Get(context.Background(), "user")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, s.Set(context.Background(), "user", []byte("v")), ErrUnavailable)
	require.ErrorIs(t, s.Delete(context.Background(), "user"), ErrUnavailable)
}

func TestNoopAlwaysUnavailable(t *testing.T) {
	var s Storage = Noop{}
	ctx := context.Background()
	_, err := s.Get(ctx, "user")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, s.Set(ctx, "user", nil), ErrUnavailable)
	require.ErrorIs(t, s.Delete(ctx, "user"), ErrUnavailable)
}

func TestPostgresRejectsBadTableName(t *testing.T) {
	_, err := NewPostgres(nil, "kv; DROP TABLE users")
	require.Error(t, err)
}

func TestPostgresContract(t *testing.T) {
	dsn := os.Getenv("PENTAAUTH_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PENTAAUTH_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewPostgres(db, "pentaauth_kv_test")
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))
	t.Cleanup(func() { _, _ = db.Exec(`DROP TABLE IF EXISTS pentaauth_kv_test`) })

	exerciseContract(t, s)
}
