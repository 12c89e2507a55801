package fastq

import "testing"

func TestOrphanMapInsertAndLookupAndDelete(t *testing.T) {
	m := newOrphanMap()
	c := &orphanCarrier{defline: Defline{Name: "read1"}}
	m.insert("read1", c)

	if m.size() != 1 {
		t.Fatalf("size = %d, want 1", m.size())
	}
	got, ok := m.lookupAndDelete("read1")
	if !ok {
		t.Fatalf("expected to find read1")
	}
	if got != c {
		t.Errorf("got a different carrier than was inserted")
	}
	if m.size() != 0 {
		t.Errorf("size after delete = %d, want 0", m.size())
	}
	if _, ok := m.lookupAndDelete("read1"); ok {
		t.Errorf("expected read1 to be gone after deletion")
	}
}

func TestOrphanMapDrainIsNameOrderedWithinShard(t *testing.T) {
	m := newOrphanMap()
	names := []string{"zzz", "aaa", "mmm"}
	for _, n := range names {
		m.insert(n, &orphanCarrier{defline: Defline{Name: n}})
	}

	// The ordering check needs every name in one shard; skip it otherwise.
	shard := m.shardFor("zzz")
	for _, n := range names {
		if m.shardFor(n) != shard {
			t.Skip("test names happened to land in different shards; skipping order check")
		}
	}

	var drained []string
	m.drain(func(name string, c *orphanCarrier) {
		drained = append(drained, name)
	})
	want := []string{"aaa", "mmm", "zzz"}
	if len(drained) != len(want) {
		t.Fatalf("drained %v, want %v", drained, want)
	}
	for i := range want {
		if drained[i] != want[i] {
			t.Errorf("drained[%d] = %q, want %q", i, drained[i], want[i])
		}
	}
	if m.size() != 0 {
		t.Errorf("size after drain = %d, want 0", m.size())
	}
}

func TestOrphanMapOverwriteExisting(t *testing.T) {
	m := newOrphanMap()
	first := &orphanCarrier{defline: Defline{Name: "x"}}
	second := &orphanCarrier{defline: Defline{Name: "x"}}
	m.insert("x", first)
	m.insert("x", second)
	if m.size() != 1 {
		t.Fatalf("size = %d, want 1 after overwriting the same key", m.size())
	}
	got, ok := m.lookupAndDelete("x")
	if !ok || got != second {
		t.Errorf("expected the second insert to win")
	}
}
