package ecs

import "testing"

func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := NewCache[string](capacity)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
		indices[i] = index
		if index != i {
			t.Errorf("Index for item %s is %d, expected %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Errorf("Item %s not found in cache", item)
		}
		if index != indices[i] {
			t.Errorf("Index for item %s is %d, expected %d", item, index, indices[i])
		}
	}

	for i, item := range items {
		cachedItem := cache.GetItem(indices[i])
		if *cachedItem != item {
			t.Errorf("Item at index %d is %s, expected %s", indices[i], *cachedItem, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("Found non-existent item in cache")
	}
}

func TestCacheCapacity(t *testing.T) {
	const capacity = 5
	cache := NewCache[int](capacity)

	for i := 0; i < capacity; i++ {
		key := string(rune('a' + i))
		if _, err := cache.Register(key, i); err != nil {
			t.Errorf("Failed to register item %s: %v", key, err)
		}
	}

	if _, err := cache.Register("overflow", 100); err == nil {
		t.Errorf("Expected error when exceeding cache capacity, but got none")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache[string](10)
	items := []string{"item1", "item2", "item3"}
	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
	}

	cache.Clear()

	for _, item := range items {
		if _, found := cache.GetIndex(item); found {
			t.Errorf("Item %s still found after cache clear", item)
		}
	}

	for _, item := range items {
		if _, err := cache.Register(item, item); err != nil {
			t.Errorf("Failed to register item %s after clear: %v", item, err)
		}
	}
}

func TestCacheRegisterSameKeyOverwrites(t *testing.T) {
	cache := NewCache[int](4)
	idx, err := cache.Register("k", 1)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	idx2, err := cache.Register("k", 2)
	if err != nil {
		t.Fatalf("re-Register failed: %v", err)
	}
	if idx != idx2 {
		t.Fatalf("re-registering an existing key should keep its index: %d vs %d", idx, idx2)
	}
	if *cache.GetItem(idx) != 2 {
		t.Errorf("re-registering an existing key should overwrite its value")
	}
}
