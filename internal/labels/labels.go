// Package labels maps model output indices to identity names.
package labels

// Unknown is returned for indices outside the table.
const Unknown = "Unknown"

// Table is an index-ordered list of class names.
type Table []string

// Default is the identity set the bundled model was trained on.
var Default = Table{
	"elon musk",
	"maria sharapova",
	"messi",
	"ronaldo",
	"virat",
}

// FromConfig returns names as a Table, or Default when names is empty.
func FromConfig(names []string) Table {
	if len(names) == 0 {
		return Default
	}
	t := make(Table, len(names))
	copy(t, names)
	return t
}

func (t Table) Name(index int) string {
	if index < 0 || index >= len(t) {
		return Unknown
	}
	return t[index]
}
