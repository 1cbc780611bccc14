// Package entities reads and writes entity partitions: the brace-delimited
// key/value text used for the inline ENTITIES lump and for the standalone
// "<map>_<name>.ent" files.
//
//	ENTITIES02 num_models=5
//	{
//	"classname" "worldspawn"
//	"*coll000" "AAAA..."
//	}
//
// Values cannot contain quotes and objects cannot nest.
package entities

// HeaderForm selects which of the two header lines a partition carries.
type HeaderForm int

const (
	// HeaderNone means no header line was present or requested.
	HeaderNone HeaderForm = iota
	// HeaderEntities is "ENTITIES<n>"; n must be 1.
	HeaderEntities
	// HeaderEntitiesModels is "ENTITIES<n> num_models=<m>"; n >= 2, m >= 0.
	HeaderEntitiesModels
)

func (f HeaderForm) String() string {
	switch f {
	case HeaderEntities:
		return "entities"
	case HeaderEntitiesModels:
		return "entities+models"
	default:
		return "none"
	}
}

// Header is the optional first line of a standalone partition.
type Header struct {
	Form     HeaderForm
	Entities int
	Models   int
}

// Field is one key/value pair.
type Field struct {
	Key   string
	Value string
}

// Object is one brace-delimited block. Keys may repeat; lookups act on the
// first match.
type Object struct {
	Fields []Field
}

// Partition is a parsed entity partition.
type Partition struct {
	Header  Header
	Objects []Object
}

// Index returns the position of the first field named key, or -1.
func (o *Object) Index(key string) int {
	for i := range o.Fields {
		if o.Fields[i].Key == key {
			return i
		}
	}
	return -1
}

// Get returns the value of the first field named key.
func (o *Object) Get(key string) (string, bool) {
	if i := o.Index(key); i >= 0 {
		return o.Fields[i].Value, true
	}
	return "", false
}

// Add appends a field, even if key is already present.
func (o *Object) Add(key, value string) {
	o.Fields = append(o.Fields, Field{Key: key, Value: value})
}

// Set overwrites the first field named key, or appends one.
func (o *Object) Set(key, value string) {
	if i := o.Index(key); i >= 0 {
		o.Fields[i].Value = value
		return
	}
	o.Add(key, value)
}

// Remove deletes the first field named key and reports whether one existed.
func (o *Object) Remove(key string) bool {
	i := o.Index(key)
	if i < 0 {
		return false
	}
	o.Fields = append(o.Fields[:i], o.Fields[i+1:]...)
	return true
}

// Clone returns a deep copy of o.
func (o *Object) Clone() Object {
	return Object{Fields: append([]Field(nil), o.Fields...)}
}
