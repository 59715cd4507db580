package star

// Document is a single data block made of save frames.
type Document struct {
	Name   string
	Frames []*Frame
}

// Frame is a save frame. Items and loops are written in the order added.
type Frame struct {
	Name     string
	Category string
	Items    []Item
	Loops    []*Loop
}

// Item is a single tag/value pair of a frame.
type Item struct {
	Tag   string
	Value string
}

// Loop is a table of a frame. Rows are parallel to Tags.
type Loop struct {
	Category string
	Tags     []string
	Rows     [][]string
}

// NewDocument returns an empty document named name.
func NewDocument(name string) *Document {
	return &Document{Name: name}
}

// Frame appends a new save frame whose items belong to category.
func (d *Document) Frame(name, category string) *Frame {
	f := &Frame{Name: name, Category: category}
	d.Frames = append(d.Frames, f)
	return f
}

// FindFrame returns the first frame with the given name.
func (d *Document) FindFrame(name string) *Frame {
	for _, f := range d.Frames {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Add appends an item. An empty value is written as ".".
func (f *Frame) Add(tag, value string) {
	f.Items = append(f.Items, Item{tag, value})
}

// Get returns the value of the item with the given tag.
func (f *Frame) Get(tag string) (string, bool) {
	for _, it := range f.Items {
		if it.Tag == tag {
			return it.Value, true
		}
	}
	return "", false
}

// Loop appends a new loop with the given columns.
func (f *Frame) Loop(category string, tags ...string) *Loop {
	lp := &Loop{Category: category, Tags: tags}
	f.Loops = append(f.Loops, lp)
	return lp
}

// FindLoop returns the loop of the given category.
func (f *Frame) FindLoop(category string) *Loop {
	for _, lp := range f.Loops {
		if lp.Category == category {
			return lp
		}
	}
	return nil
}

// Append adds a row. It panics if the row and the columns differ in
// length.
func (lp *Loop) Append(values ...string) {
	if len(values) != len(lp.Tags) {
		panic(sf("loop %s has %d columns, row has %d values",
			lp.Category, len(lp.Tags), len(values)))
	}
	lp.Rows = append(lp.Rows, values)
}

// Column returns the index of the column tag, or -1.
func (lp *Loop) Column(tag string) int {
	for i, t := range lp.Tags {
		if t == tag {
			return i
		}
	}
	return -1
}

// Len returns the number of rows.
func (lp *Loop) Len() int {
	return len(lp.Rows)
}
