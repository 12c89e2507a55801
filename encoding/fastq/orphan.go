package fastq

import (
	"github.com/biogo/store/llrb"
	"github.com/blainsmith/seahash"
)

const numOrphanShards = 64

// orphanCarrier holds the per-read state needed to reconcile a read with its
// mate once the mate appears, per the "Lifecycle" paragraph of the data
// model: seq, qual, filterFlag, csKey, and an optional qiimeName.
type orphanCarrier struct {
	defline Defline
	seq     Sequence
	qual    Quality
}

// orphanKey orders carriers by name for llrb so each shard drains in a
// fixed, reproducible order, stable across reruns.
type orphanKey string

func (k orphanKey) Compare(c llrb.Comparable) int {
	o := c.(orphanKey)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

type orphanShard struct {
	carriers map[string]*orphanCarrier
	order    llrb.Tree
}

// orphanMap is a name-keyed map from read name to its still-unmatched mate's
// carrier, sharded by seahash(name) in the same style as
// encoding/bamprovider's concurrentMap. The pairing engine is single
// threaded, so shards exist purely to keep per-bucket trees
// small, not for lock contention; no mutex is needed.
type orphanMap struct {
	shards [numOrphanShards]orphanShard
}

func newOrphanMap() *orphanMap {
	m := &orphanMap{}
	for i := range m.shards {
		m.shards[i].carriers = make(map[string]*orphanCarrier)
	}
	return m
}

func (m *orphanMap) shardFor(name string) *orphanShard {
	h := seahash.Sum64([]byte(name))
	return &m.shards[h%uint64(numOrphanShards)]
}

// lookupAndDelete returns and removes the carrier for name, if present.
func (m *orphanMap) lookupAndDelete(name string) (*orphanCarrier, bool) {
	s := m.shardFor(name)
	c, ok := s.carriers[name]
	if ok {
		delete(s.carriers, name)
		s.order.Delete(orphanKey(name))
	}
	return c, ok
}

// insert stores c under name, overwriting any previous (unconsumed) entry.
func (m *orphanMap) insert(name string, c *orphanCarrier) {
	s := m.shardFor(name)
	if _, existed := s.carriers[name]; !existed {
		s.order.Insert(orphanKey(name))
	}
	s.carriers[name] = c
}

// drain calls fn for every remaining carrier, in shard order and then
// name-sorted order within each shard, and empties the map as it goes.
func (m *orphanMap) drain(fn func(name string, c *orphanCarrier)) {
	for i := range m.shards {
		s := &m.shards[i]
		s.order.Do(func(c llrb.Comparable) (done bool) {
			name := string(c.(orphanKey))
			fn(name, s.carriers[name])
			return false
		})
		s.carriers = make(map[string]*orphanCarrier)
		s.order = llrb.Tree{}
	}
}

func (m *orphanMap) size() int {
	n := 0
	for i := range m.shards {
		n += len(m.shards[i].carriers)
	}
	return n
}
