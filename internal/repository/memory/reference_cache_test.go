package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestReferenceCacheRoundTrip(t *testing.T) {
	cache := NewReferenceCache(time.Minute)

	if _, ok := cache.Get(KeyAllUniversities); ok {
		t.Fatal("empty cache should miss")
	}

	cache.Set(KeyAllUniversities, []string{"a", "b"})
	value, ok := cache.Get(KeyAllUniversities)
	if !ok {
		t.Fatal("cache should hit after Set")
	}
	if len(value.([]string)) != 2 {
		t.Errorf("value = %v", value)
	}
}

func TestReferenceCacheInvalidate(t *testing.T) {
	cache := NewReferenceCache(time.Minute)
	universityId := uuid.New()

	cache.Set(KeyAllUniversities, "universities")
	cache.Set(CoursesKey(universityId), "courses")

	cache.Invalidate(KeyAllUniversities, CoursesKey(universityId))

	if _, ok := cache.Get(KeyAllUniversities); ok {
		t.Error("universities entry should be gone")
	}
	if _, ok := cache.Get(CoursesKey(universityId)); ok {
		t.Error("courses entry should be gone")
	}
}

func TestReferenceCacheExpiry(t *testing.T) {
	cache := NewReferenceCache(20 * time.Millisecond)

	cache.Set("key", "value")
	time.Sleep(40 * time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("entry should expire after the TTL")
	}
}

func TestCoursesKeyDistinctPerUniversity(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	if CoursesKey(a) == CoursesKey(b) {
		t.Error("keys must differ per university")
	}
}
