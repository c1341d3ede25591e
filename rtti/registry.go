package rtti

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// The process-wide descriptor registry. Initialized lazily on the first
// type request; never torn down during program lifetime.
var (
	regOnce  sync.Once
	regMu    sync.RWMutex
	byToken  = make(map[string]*Type)
	byGoType = make(map[reflect.Type]*Type)
)

// ensure lazily registers the builtin descriptors. Called from every
// lookup path; install deliberately skips it so registerBuiltins can run
// inside the once without re-entering it.
func ensure() {
	regOnce.Do(registerBuiltins)
}

// install publishes a descriptor. Panics on token or Go-type collision;
// duplicate registration is a programming error, not a runtime condition.
func install(t *Type) *Type {
	regMu.Lock()
	defer regMu.Unlock()
	return installLocked(t)
}

func installLocked(t *Type) *Type {
	if prior, ok := byToken[t.token]; ok {
		if prior.goType == t.goType {
			return prior
		}
		panic(fmt.Sprintf("rtti: token %q already registered for %v", t.token, prior.goType))
	}
	if t.goType != nil {
		if prior, ok := byGoType[t.goType]; ok {
			panic(fmt.Sprintf("rtti: %v already registered as %q", t.goType, prior.token))
		}
		byGoType[t.goType] = t
	}
	byToken[t.token] = t
	return t
}

// TypeFor returns the registered descriptor for T, or nil.
func TypeFor[T any]() *Type {
	ensure()
	rt := reflect.TypeFor[T]()
	regMu.RLock()
	t := byGoType[rt]
	regMu.RUnlock()
	return t
}

// Of returns the descriptor for T, auto-registering a default descriptor
// the first time an unregistered comparable type is requested. The
// auto-registered token is the Go type string.
func Of[T comparable]() *Type {
	if t := TypeFor[T](); t != nil {
		return t
	}
	rt := reflect.TypeFor[T]()
	return Register[T](rt.String(), Config[T]{})
}

// OfValue returns the descriptor for v's dynamic type, or nil when the
// type was never registered. A nil v returns nil.
func OfValue(v any) *Type {
	if v == nil {
		return nil
	}
	ensure()
	rt := reflect.TypeOf(v)
	regMu.RLock()
	t := byGoType[rt]
	regMu.RUnlock()
	return t
}

// OfGoType returns the descriptor registered for rt, or nil.
func OfGoType(rt reflect.Type) *Type {
	ensure()
	regMu.RLock()
	t := byGoType[rt]
	regMu.RUnlock()
	return t
}

// ByToken returns the descriptor registered under the given token, or
// nil. Tokens are compared NFC-normalized.
func ByToken(token string) *Type {
	ensure()
	regMu.RLock()
	t := byToken[norm.NFC.String(token)]
	regMu.RUnlock()
	return t
}

// MapToken composes the token of a map from its key and value tokens.
func MapToken(key, value *Type) string {
	k, v := "", ""
	if key != nil {
		k = key.token
	}
	if value != nil {
		v = value.token
	}
	return k + "Mapped" + v
}

// linkAliases records mutual similarity between descriptors, e.g. the
// native word type against its fixed-width twin.
func linkAliases(a, b *Type) {
	regMu.Lock()
	a.alias = append(a.alias, b)
	b.alias = append(b.alias, a)
	regMu.Unlock()
}
