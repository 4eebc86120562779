package locks

import "testing"

func TestTryLock(t *testing.T) {
	k := New()

	if !k.TryLock(5) {
		t.Fatal("first TryLock should succeed")
	}
	if k.TryLock(5) {
		t.Fatal("second TryLock on held key should fail")
	}
	if !k.TryLock(6) {
		t.Fatal("different key should be independent")
	}

	k.Unlock(5)
	if !k.TryLock(5) {
		t.Fatal("TryLock after Unlock should succeed")
	}
}

func TestUnlock_FreeKeyIsNoop(t *testing.T) {
	k := New()
	k.Unlock(99)
	if !k.TryLock(99) {
		t.Fatal("key should be free")
	}
}

func TestTryLockAll(t *testing.T) {
	k := New()

	if !k.TryLockAll([]int64{1, 2, 3}) {
		t.Fatal("TryLockAll on free keys should succeed")
	}
	if k.TryLock(2) {
		t.Fatal("key 2 should be held by the batch")
	}

	// A batch overlapping a held key takes nothing.
	if k.TryLockAll([]int64{4, 2, 5}) {
		t.Fatal("overlapping batch should fail")
	}
	if !k.TryLock(4) {
		t.Fatal("failed batch must not leave key 4 held")
	}
	k.Unlock(4)
	if !k.TryLock(5) {
		t.Fatal("failed batch must not leave key 5 held")
	}
	k.Unlock(5)

	k.UnlockAll([]int64{1, 2, 3})
	if !k.TryLock(2) {
		t.Fatal("key 2 should be free after UnlockAll")
	}
}
