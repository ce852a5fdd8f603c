package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/seyaul/hana-auth/config"
)

func newTestLocal(t *testing.T) *LocalClient {
	t.Helper()
	client, err := NewLocalClient(config.LocalConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLocalClient error: %v", err)
	}
	if err := client.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket error: %v", err)
	}
	return client
}

func getString(t *testing.T, client *LocalClient, key string) string {
	t.Helper()
	r, err := client.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", key, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read %q: %v", key, err)
	}
	return string(data)
}

func TestLocalClient_PutGetRoundTrip(t *testing.T) {
	t.Parallel()

	client := newTestLocal(t)
	ctx := context.Background()

	const content = "a,b\n1,2\n"
	if err := client.Put(ctx, "tools/wholefoods/snap.csv", strings.NewReader(content), int64(len(content)), "text/csv"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if got := getString(t, client, "tools/wholefoods/snap.csv"); got != content {
		t.Fatalf("content mismatch: got %q want %q", got, content)
	}
}

func TestLocalClient_GetMissing(t *testing.T) {
	t.Parallel()

	client := newTestLocal(t)
	if _, err := client.Get(context.Background(), "tools/wholefoods/latest"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLocalClient_PutReplaces(t *testing.T) {
	t.Parallel()

	client := newTestLocal(t)
	ctx := context.Background()

	if err := client.Put(ctx, "tools/safeway/latest", strings.NewReader("old"), 3, "text/plain"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := client.Put(ctx, "tools/safeway/latest", strings.NewReader("new"), 3, "text/plain"); err != nil {
		t.Fatalf("Put replace error: %v", err)
	}

	if got := getString(t, client, "tools/safeway/latest"); got != "new" {
		t.Fatalf("expected replaced content, got %q", got)
	}
}

func TestLocalClient_DeleteIdempotent(t *testing.T) {
	t.Parallel()

	client := newTestLocal(t)
	ctx := context.Background()

	if err := client.Put(ctx, "obj", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := client.Delete(ctx, "obj"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := client.Delete(ctx, "obj"); err != nil {
		t.Fatalf("second Delete error: %v", err)
	}
}

func TestLocalClient_RejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	client := newTestLocal(t)
	ctx := context.Background()

	for _, key := range []string{"../outside", "/etc/passwd", "a/../../b"} {
		if err := client.Put(ctx, key, strings.NewReader("x"), 1, ""); err == nil {
			t.Fatalf("Put(%q) must reject keys escaping the root", key)
		}
		if _, err := client.Get(ctx, key); err == nil || errors.Is(err, ErrNotExist) {
			t.Fatalf("Get(%q) must reject keys escaping the root, got %v", key, err)
		}
	}
}
