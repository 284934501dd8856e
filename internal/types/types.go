package types

// TypeTag is the minimal type lattice used during semantic analysis.
// TypeUnknown is compatible with every tag: it is produced whenever a name
// or expression could not be resolved, so downstream checks degrade
// gracefully instead of cascading false errors.
type TypeTag string

const (
	TypeInteger  TypeTag = "integer"
	TypeFloating TypeTag = "floating"
	TypeBoolean  TypeTag = "boolean"
	TypeText     TypeTag = "text"
	TypeFunction TypeTag = "function"
	TypeUnknown  TypeTag = "unknown"
)

var annotations = map[string]TypeTag{
	"integer":  TypeInteger,
	"floating": TypeFloating,
	"boolean":  TypeBoolean,
	"text":     TypeText,
}

// FromAnnotation maps a type annotation name to its tag.
func FromAnnotation(name string) (TypeTag, bool) {
	tag, ok := annotations[name]
	return tag, ok
}

// IsConcrete reports whether the tag takes part in mismatch checks.
func (t TypeTag) IsConcrete() bool {
	return t != TypeUnknown && t != ""
}
