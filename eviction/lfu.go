package eviction

import "container/list"

type lfuNode struct {
	key  string
	freq int
}

/*
lfu groups keys into one list per access frequency. Within a bucket keys
are kept in arrival order so ties are broken by age.
*/
type lfu struct {
	nodes   map[string]*list.Element
	buckets map[int]*list.List

	// minFreq is the smallest non-empty bucket. It avoids scanning on Evict.
	minFreq int
}

func newLFU() *lfu {
	return &lfu{
		nodes:   make(map[string]*list.Element),
		buckets: make(map[int]*list.List),
	}
}

func (l *lfu) OnGet(k string) {
	el, ok := l.nodes[k]
	if !ok {
		return
	}
	n := el.Value.(*lfuNode)
	l.unlink(el)
	if l.minFreq == n.freq && l.buckets[n.freq] == nil {
		l.minFreq++
	}
	n.freq++
	l.nodes[k] = l.bucket(n.freq).PushBack(n)
}

// OnPut starts new keys at frequency 1 and leaves existing counts alone.
func (l *lfu) OnPut(k string) {
	if _, ok := l.nodes[k]; ok {
		return
	}
	l.nodes[k] = l.bucket(1).PushBack(&lfuNode{key: k, freq: 1})
	l.minFreq = 1
}

func (l *lfu) Evict() (string, bool) {
	if len(l.nodes) == 0 {
		return "", false
	}
	b := l.buckets[l.minFreq]
	for b == nil {
		// minFreq can go stale after Remove; recover by scanning upwards.
		l.minFreq++
		b = l.buckets[l.minFreq]
	}
	el := b.Front()
	n := el.Value.(*lfuNode)
	l.unlink(el)
	delete(l.nodes, n.key)
	return n.key, true
}

func (l *lfu) Remove(k string) {
	if el, ok := l.nodes[k]; ok {
		l.unlink(el)
		delete(l.nodes, k)
	}
}

func (l *lfu) Len() int { return len(l.nodes) }

func (l *lfu) bucket(freq int) *list.List {
	b, ok := l.buckets[freq]
	if !ok {
		b = list.New()
		l.buckets[freq] = b
	}
	return b
}

// unlink removes el from its bucket and drops the bucket once empty.
func (l *lfu) unlink(el *list.Element) {
	freq := el.Value.(*lfuNode).freq
	b := l.buckets[freq]
	b.Remove(el)
	if b.Len() == 0 {
		delete(l.buckets, freq)
	}
}
