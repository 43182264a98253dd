// Package naming maps capability names advertised by an MCP server onto the
// snake_case names used by the binding surface, and back.
package naming

import (
	"sort"
	"strings"
	"unicode"
)

// ToLocal returns the canonical local form of a native capability name.
//
// A delimiter is inserted before an upper-case rune that either follows a
// lower-case rune or digit ("getWeather" -> "get_weather", "get2Items" ->
// "get2_items") or starts a capitalised word after an upper-case run
// ("HTTPRequest" -> "http_request"). The result is lower-cased. ToLocal is
// idempotent: its output contains no upper-case runes.
func ToLocal(native string) string {
	runes := []rune(native)
	var b strings.Builder
	b.Grow(len(native) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Mapping is the per-class lookup table between local and native names.
// It only stores entries for names whose local form differs from the native
// one. It is immutable after construction and safe for concurrent reads.
type Mapping struct {
	natives  map[string]struct{}
	order    []string
	toNative map[string]string
	toLocal  map[string]string
}

// NewMapping builds the mapping for one capability class. nativeNames must be
// given in catalog order: when two natives canonicalise to the same local
// name only the first one gets the alias. A local form that equals another
// native name never becomes an alias, the native keeps priority.
func NewMapping(nativeNames []string) *Mapping {
	m := &Mapping{
		natives:  make(map[string]struct{}, len(nativeNames)),
		toNative: make(map[string]string),
		toLocal:  make(map[string]string),
	}

	for _, n := range nativeNames {
		if _, dup := m.natives[n]; dup {
			continue
		}
		m.natives[n] = struct{}{}
		m.order = append(m.order, n)
	}

	for _, n := range m.order {
		local := ToLocal(n)
		if local == n {
			continue
		}
		if _, isNative := m.natives[local]; isNative {
			continue
		}
		if _, taken := m.toNative[local]; taken {
			continue
		}
		m.toNative[local] = n
		m.toLocal[n] = local
	}

	return m
}

// Resolve returns the native name for requested, trying the local alias
// table first and then requested itself as a native name.
func (m *Mapping) Resolve(requested string) (string, bool) {
	if native, ok := m.toNative[requested]; ok {
		return native, true
	}
	if _, ok := m.natives[requested]; ok {
		return requested, true
	}
	return "", false
}

// LocalName returns the name a native capability is exposed under. Natives
// without an alias (identity, or lost a collision) are exposed as-is.
func (m *Mapping) LocalName(native string) string {
	if local, ok := m.toLocal[native]; ok {
		return local
	}
	return native
}

// Aliases returns a copy of the local -> native table.
func (m *Mapping) Aliases() map[string]string {
	out := make(map[string]string, len(m.toNative))
	for k, v := range m.toNative {
		out[k] = v
	}
	return out
}

// Natives returns the native names in catalog order.
func (m *Mapping) Natives() []string {
	return append([]string(nil), m.order...)
}

// Names returns every name that resolves in this class, local and native,
// sorted and de-duplicated.
func (m *Mapping) Names() []string {
	seen := make(map[string]struct{}, len(m.natives)+len(m.toNative))
	for n := range m.natives {
		seen[n] = struct{}{}
	}
	for l := range m.toNative {
		seen[l] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of native names in the class.
func (m *Mapping) Len() int {
	return len(m.order)
}
