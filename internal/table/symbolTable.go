package table

import (
	"quill/internal/types"
)

// SymbolInfo holds the declaration record for one name in one scope.
type SymbolInfo struct {
	Type           types.TypeTag
	DeclaredLine   int
	DeclaredColumn int
	Initialized    bool
}

// SymbolTable is an ordered stack of name->SymbolInfo mappings. The bottom
// frame is the always-present global scope: it is created once and never
// popped. A name may be declared at most once within a single scope;
// shadowing across scopes is permitted.
//
// The table is exclusively owned by one analyzer pass and discarded with it.
type SymbolTable struct {
	scopes []map[string]*SymbolInfo
}

// NewSymbolTable creates a table holding only the global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes: []map[string]*SymbolInfo{make(map[string]*SymbolInfo)},
	}
}

// EnterScope pushes a fresh scope frame. Calls must be balanced with
// ExitScope by the caller around every block.
func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, make(map[string]*SymbolInfo))
}

// ExitScope pops the innermost scope frame. The global scope is never popped.
func (st *SymbolTable) ExitScope() {
	if len(st.scopes) > 1 {
		st.scopes = st.scopes[:len(st.scopes)-1]
	}
}

// Depth returns the number of live scope frames, global included.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// Declare adds a name to the innermost scope. It returns false, without
// modifying the table, when the name already exists in that scope;
// redeclaration in an outer scope is shadowing, not a failure.
func (st *SymbolTable) Declare(name string, tag types.TypeTag, line, column int) bool {
	current := st.scopes[len(st.scopes)-1]
	if _, exists := current[name]; exists {
		return false
	}
	current[name] = &SymbolInfo{
		Type:           tag,
		DeclaredLine:   line,
		DeclaredColumn: column,
	}
	return true
}

// Lookup searches innermost-to-outermost; the first match wins.
func (st *SymbolTable) Lookup(name string) (types.TypeTag, bool) {
	if info, ok := st.LookupInfo(name); ok {
		return info.Type, true
	}
	return types.TypeUnknown, false
}

// LookupInfo is Lookup returning the full record, used to report the
// original declaration site on redeclaration.
func (st *SymbolTable) LookupInfo(name string) (*SymbolInfo, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if info, ok := st.scopes[i][name]; ok {
			return info, true
		}
	}
	return nil, false
}

// LookupLocal searches the innermost scope only.
func (st *SymbolTable) LookupLocal(name string) (*SymbolInfo, bool) {
	info, ok := st.scopes[len(st.scopes)-1][name]
	return info, ok
}

// MarkInitialized flips the initialized flag on the innermost matching entry.
func (st *SymbolTable) MarkInitialized(name string) {
	if info, ok := st.LookupInfo(name); ok {
		info.Initialized = true
	}
}

// IsInitialized reports the flag on the innermost matching entry; unknown
// names are never initialized.
func (st *SymbolTable) IsInitialized(name string) bool {
	if info, ok := st.LookupInfo(name); ok {
		return info.Initialized
	}
	return false
}
