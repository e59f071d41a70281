package quotient

import (
	"sort"
	"strings"
)

// BuiltinFunc is the signature of a builtin primitive's implementation,
// invoked against the owning Evaluator.
type BuiltinFunc func(ev *Evaluator) error

// Word is one dictionary entry: either a Builtin (an evaluator primitive,
// never user-deletable or -redefinable) or a User word (a captured token
// body plus its dependency set, spec §3/§4.4).
type Word struct {
	Name string

	Builtin BuiltinFunc // nil for User words

	Body         []Value // captured DEF body (a parsed vector's elements), nil for Builtins
	Description  *string
	Dependencies map[string]struct{} // normalized names this body calls
}

// IsBuiltin reports whether w is a Builtin word.
func (w *Word) IsBuiltin() bool { return w.Builtin != nil }

// Dictionary maps a normalized (upper-cased) word name to its Word, and
// tracks a RefCount of how many User words depend on each name (spec §3,
// §4.4). A word with RefCount > 0, or any Builtin, is protected: DEL
// refuses to remove it and DEF refuses to overwrite it.
type Dictionary struct {
	words    map[string]*Word
	refCount map[string]int
}

// NewDictionary returns an empty Dictionary (no builtins registered yet —
// callers populate it via RegisterBuiltin, see builtins.go's installBuiltins).
func NewDictionary() *Dictionary {
	return &Dictionary{
		words:    make(map[string]*Word),
		refCount: make(map[string]int),
	}
}

// Normalize upper-cases name for use as a dictionary key (spec §3: "Names
// are compared case-insensitively; the normalized key is the upper-case
// form.").
func Normalize(name string) string {
	return strings.ToUpper(name)
}

// RegisterBuiltin installs a Builtin word, unconditionally (used only at
// construction time; builtins are never subject to protection checks
// themselves since nothing can overwrite them after install).
func (d *Dictionary) RegisterBuiltin(name string, fn BuiltinFunc) {
	key := Normalize(name)
	d.words[key] = &Word{Name: key, Builtin: fn}
}

// Lookup returns the Word for name, or nil if absent.
func (d *Dictionary) Lookup(name string) *Word {
	return d.words[Normalize(name)]
}

// RefCount returns how many User words currently depend on name.
func (d *Dictionary) RefCount(name string) int {
	return d.refCount[Normalize(name)]
}

// protected reports whether key (already normalized) may not be deleted or
// overwritten: true for Builtins, and for any name with RefCount > 0.
func (d *Dictionary) protected(key string) (builtin, refd bool) {
	if w, ok := d.words[key]; ok && w.IsBuiltin() {
		return true, false
	}
	return false, d.refCount[key] > 0
}

// dependenciesOf extracts the set of normalized identifiers inside body
// that resolve to an existing dictionary entry at the moment of the call
// (spec §4.4: dependency extraction is syntactic and DEF-time; see also
// spec §9's first Open Question and DESIGN.md's resolution of it).
// Identifiers nested inside vector literals within body are still
// considered, per spec §4.4's final paragraph, so this recurses into
// nested Vector values.
func (d *Dictionary) dependenciesOf(body []Value) map[string]struct{} {
	deps := make(map[string]struct{})
	d.collectDeps(body, deps)
	if len(deps) == 0 {
		return nil
	}
	return deps
}

func (d *Dictionary) collectDeps(items []Value, deps map[string]struct{}) {
	for _, v := range items {
		switch v.Kind {
		case KindSymbol:
			if !v.identLike {
				continue
			}
			key := Normalize(v.Sym)
			if _, ok := d.words[key]; ok {
				deps[key] = struct{}{}
			}
		case KindVector:
			d.collectDeps(v.Vector, deps)
		}
	}
}

// Define installs a User word (spec §4.4's `define`). Fails IsBuiltin if
// name names a Builtin, or Protected if the name is otherwise referenced
// (RefCount > 0). description may be nil.
func (d *Dictionary) Define(name string, body []Value, description *string) error {
	key := Normalize(name)

	if builtin, refd := d.protected(key); builtin {
		return newErr(IsBuiltin, "%s", key)
	} else if refd {
		return newErr(Protected, "%s", key)
	}

	if old, ok := d.words[key]; ok && !old.IsBuiltin() {
		for dep := range old.Dependencies {
			d.refCount[dep]--
		}
	}

	deps := d.dependenciesOf(body)
	w := &Word{Name: key, Body: body, Description: description, Dependencies: deps}
	d.words[key] = w
	for dep := range deps {
		d.refCount[dep]++
	}
	return nil
}

// Remove deletes a User word (spec §4.4's `remove`). Fails IsBuiltin for
// Builtins, Protected if RefCount > 0.
func (d *Dictionary) Remove(name string) error {
	key := Normalize(name)

	w, ok := d.words[key]
	if !ok {
		return newErr(UnknownWord, "%s", key)
	}
	if builtin, refd := d.protected(key); builtin {
		return newErr(IsBuiltin, "%s", key)
	} else if refd {
		return newErr(Protected, "%s", key)
	}

	for dep := range w.Dependencies {
		d.refCount[dep]--
	}
	delete(d.words, key)
	delete(d.refCount, key)
	return nil
}

// CustomWordInfo is one row of ListUser's result.
type CustomWordInfo struct {
	Name        string
	Description *string
	Protected   bool
}

// ListUser returns every User word, sorted case-insensitively by name
// (spec §4.4's `list_user`).
func (d *Dictionary) ListUser() []CustomWordInfo {
	var out []CustomWordInfo
	for key, w := range d.words {
		if w.IsBuiltin() {
			continue
		}
		out = append(out, CustomWordInfo{
			Name:        key,
			Description: w.Description,
			Protected:   d.refCount[key] > 0,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// removeAllUser clears every User word, for Reset (spec §5: "every User
// word"; Builtins are preserved).
func (d *Dictionary) removeAllUser() {
	for key, w := range d.words {
		if !w.IsBuiltin() {
			delete(d.words, key)
		}
	}
	// Only User words contribute to RefCount, so with none left every
	// count (including those on Builtins) is zero.
	d.refCount = make(map[string]int)
}
