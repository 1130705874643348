/*
varz provides helpers to create expvar variables with package-qualified names.

Nothing here serves the variables over HTTP; Snapshot lists them for the CLI.
*/
package varz

import (
	"expvar"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// callerPackage returns the package path of the caller's caller, with the
// function name stripped.  Variables declared in a var block come from
// "init", which is stripped the same way.
func callerPackage() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return "varz.unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "varz.unknown"
	}

	n := fn.Name()
	dot := strings.LastIndex(n, ".")
	if dot != -1 {
		n = n[:dot]
	}

	return n
}

// shortName trims a package path to its last element.
func shortName(pkg string) string {
	if slash := strings.LastIndex(pkg, "/"); slash != -1 {
		return pkg[slash+1:]
	}
	return pkg
}

func NewInt(name string) *expvar.Int {
	return expvar.NewInt(fmt.Sprintf("%s.%s", shortName(callerPackage()), name))
}

func NewMap(name string) *expvar.Map {
	return expvar.NewMap(fmt.Sprintf("%s.%s", shortName(callerPackage()), name))
}

// Snapshot returns every published variable whose name starts with prefix,
// sorted by name, with its JSON value.
func Snapshot(prefix string) [][2]string {
	var out [][2]string
	expvar.Do(func(kv expvar.KeyValue) {
		if strings.HasPrefix(kv.Key, prefix) {
			out = append(out, [2]string{kv.Key, kv.Value.String()})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}
