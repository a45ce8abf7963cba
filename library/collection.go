package library

// collection is an insertion-ordered map of entities keyed by their
// natural identifier. Iteration order everywhere in the catalog (search
// results, exports, statistics) is insertion order.
type collection[T any] struct {
	kind  string
	items map[string]T
	order []string
}

func newCollection[T any](kind string) *collection[T] {
	return &collection[T]{kind: kind, items: make(map[string]T)}
}

func (c *collection[T]) len() int { return len(c.order) }

func (c *collection[T]) get(key string) (T, bool) {
	item, ok := c.items[key]
	return item, ok
}

func (c *collection[T]) add(key string, item T) error {
	if _, exists := c.items[key]; exists {
		return duplicatef(c.kind, key)
	}
	c.items[key] = item
	c.order = append(c.order, key)
	return nil
}

// update replaces the entity stored at key. When the replacement carries
// a different natural key the entry is re-keyed, keeping its position.
func (c *collection[T]) update(key, newKey string, item T) error {
	if _, exists := c.items[key]; !exists {
		return notFoundf(c.kind, key)
	}
	if newKey != key {
		if _, taken := c.items[newKey]; taken {
			return duplicatef(c.kind, newKey)
		}
		delete(c.items, key)
		for i, k := range c.order {
			if k == key {
				c.order[i] = newKey
				break
			}
		}
		key = newKey
	}
	c.items[key] = item
	return nil
}

func (c *collection[T]) remove(key string) error {
	if _, exists := c.items[key]; !exists {
		return notFoundf(c.kind, key)
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// values returns the entities in insertion order.
func (c *collection[T]) values() []T {
	out := make([]T, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}
