// Package dbg turns pointers into readable names for debugging output.
package dbg

import (
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Names are handed out on first use and kept forever, so only debugging code
// paths should call Name.

var (
	mu   sync.Mutex
	memo = make(map[interface{}]string)
)

func init() {
	// A name means nothing across runs, and random names make that obvious.
	petname.NonDeterministicMode()
}

// Name returns the readable name for obj, which must be a pointer, map, slice
// or other nillable value. Nil values are named "Ø".
func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); isNillable(v.Kind()) && v.IsNil() {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	if name, ok := memo[obj]; ok {
		return name
	}
	name := title(petname.Adjective()) + title(petname.Name())
	memo[obj] = name
	return name
}

// Forget every name handed out so far.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	memo = make(map[interface{}]string)
}

func isNillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
