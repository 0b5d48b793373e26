package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, prefix string) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, prefix), mr
}

type cachedExam struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t, "exam:")

	want := cachedExam{ID: 1, Title: "Midterm"}
	if err := helper.Set(ctx, "id:1", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got cachedExam
	if err := helper.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheGetMiss(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t, "exam:")

	var got cachedExam
	if err := helper.Get(ctx, "id:99", &got); err != ErrCacheNotFound {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t, "exam:")

	if err := helper.Set(ctx, "id:1", cachedExam{ID: 1}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Set(ctx, "id:2", cachedExam{ID: 2}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := helper.Delete(ctx, "id:1", "id:2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got cachedExam
	if err := helper.Get(ctx, "id:1", &got); err != ErrCacheNotFound {
		t.Errorf("key id:1 still present after delete: %v", err)
	}
}

func TestCacheExists(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t, "exists:")

	exists, err := helper.Exists(ctx, "exam:1")
	if err != nil || exists {
		t.Errorf("Exists() = (%v, %v), want (false, nil)", exists, err)
	}

	if err := helper.Set(ctx, "exam:1", true, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	exists, err = helper.Exists(ctx, "exam:1")
	if err != nil || !exists {
		t.Errorf("Exists() = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestInvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper, mr := newTestCache(t, "exam:")

	keys := []string{"list:1", "list:2", "id:1"}
	for _, key := range keys {
		if err := helper.Set(ctx, key, cachedExam{ID: 1}, time.Minute); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	if mr.Exists("exam:list:1") || mr.Exists("exam:list:2") {
		t.Error("list keys survived invalidation")
	}
	if !mr.Exists("exam:id:1") {
		t.Error("unrelated key was invalidated")
	}
}

// A nil client must degrade gracefully: writes are no-ops and reads
// report the cache as unavailable.
func TestNilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, "exam:")

	if err := helper.Set(ctx, "id:1", cachedExam{}, time.Minute); err != nil {
		t.Errorf("Set() with nil client error = %v", err)
	}
	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Errorf("Delete() with nil client error = %v", err)
	}
	if err := helper.InvalidatePattern(ctx, "*"); err != nil {
		t.Errorf("InvalidatePattern() with nil client error = %v", err)
	}

	var got cachedExam
	if err := helper.Get(ctx, "id:1", &got); err != ErrCacheNotAvailable {
		t.Errorf("Get() with nil client error = %v, want ErrCacheNotAvailable", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t, "exam:")

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedExam{ID: 5, Title: "Quiz"}, nil
	}

	var got cachedExam
	if err := helper.CacheOrExecute(ctx, "id:5", &got, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if calls != 1 || got.ID != 5 {
		t.Errorf("first call: calls=%d got=%+v", calls, got)
	}

	// Wait for the async Set to land, then the next call must hit cache.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := helper.Exists(ctx, "id:5"); ok {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	var again cachedExam
	if err := helper.CacheOrExecute(ctx, "id:5", &again, time.Minute, fetch); err != nil {
		t.Fatalf("second CacheOrExecute() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch ran %d times, want 1 (second call should hit cache)", calls)
	}
	if again.Title != "Quiz" {
		t.Errorf("cached value = %+v", again)
	}
}

func TestCacheManagerNilClient(t *testing.T) {
	cm := NewCacheManager(nil)
	if err := cm.HealthCheck(context.Background()); err != ErrCacheNotAvailable {
		t.Errorf("HealthCheck() = %v, want ErrCacheNotAvailable", err)
	}
	if err := cm.ClearAll(context.Background()); err != nil {
		t.Errorf("ClearAll() = %v, want nil", err)
	}
}
