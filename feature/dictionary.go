package feature

/*
Dictionary keeps the distinct values of a nominal column in the order
they were first seen. A value is identified by its position in that
order.
*/
type Dictionary struct {
	values []string
	index  map[string]int
}

/*
NewDictionary returns a dictionary holding the given values in order.
Repeated values are kept once.
*/
func NewDictionary(values ...string) *Dictionary {
	d := &Dictionary{
		values: make([]string, 0, len(values)),
		index:  make(map[string]int, len(values)),
	}
	for _, v := range values {
		d.Add(v)
	}
	return d
}

// Add returns the index of the given key, appending it if it is new
func (d *Dictionary) Add(key string) int {
	if i, ok := d.index[key]; ok {
		return i
	}
	i := len(d.values)
	d.values = append(d.values, key)
	d.index[key] = i
	return i
}

// Index returns the index of the given key or -1 if it is unknown
func (d *Dictionary) Index(key string) int {
	if d == nil {
		return -1
	}
	if i, ok := d.index[key]; ok {
		return i
	}
	return -1
}

/*
Value returns the key at index i and true, or "" and false if there is
no such index.
*/
func (d *Dictionary) Value(i int) (string, bool) {
	if d == nil || i < 0 || i >= len(d.values) {
		return "", false
	}
	return d.values[i], true
}

// Len returns the number of values in the dictionary
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// Values returns a copy of the keys in index order
func (d *Dictionary) Values() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.values...)
}
