package eviction

import "container/list"

// fifo only remembers insertion order. Overwrites keep the original slot.
type fifo struct {
	queue *list.List
	nodes map[string]*list.Element
}

func newFIFO() *fifo {
	return &fifo{queue: list.New(), nodes: make(map[string]*list.Element)}
}

func (f *fifo) OnGet(string) {}

func (f *fifo) OnPut(k string) {
	if _, ok := f.nodes[k]; ok {
		return
	}
	f.nodes[k] = f.queue.PushBack(k)
}

func (f *fifo) Evict() (string, bool) {
	el := f.queue.Front()
	if el == nil {
		return "", false
	}
	k := f.queue.Remove(el).(string)
	delete(f.nodes, k)
	return k, true
}

func (f *fifo) Remove(k string) {
	if el, ok := f.nodes[k]; ok {
		f.queue.Remove(el)
		delete(f.nodes, k)
	}
}

func (f *fifo) Len() int { return len(f.nodes) }
