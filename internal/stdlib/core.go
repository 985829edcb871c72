// Package stdlib installs Axiom's intrinsic module registry: a fixed,
// process-wide table of native function tables, grounded on the
// teacher's pkg/runtime/stdlib.go numeric/string helpers and expanded
// per SPEC_FULL.md §3 to give every named module a real implementation
// backed by a corpus-grounded third-party library where one applies.
package stdlib

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"

	axerrors "github.com/axiom-lang/axiom/internal/errors"
	"github.com/axiom-lang/axiom/internal/interp"
	"github.com/axiom-lang/axiom/internal/value"
)

func typeErr(expected, found string) error {
	return axerrors.NewTypeMismatch(expected, found, axerrors.ZeroSpan)
}

func arityErr(expected, found int) error {
	return axerrors.NewArityMismatch(expected, found)
}

// algModule implements the required conformance subset (spec.md §4.5)
// plus `filter`/`sort`, rounding out the algorithm-module name SPEC_FULL
// assigns it. call invokes a Fun argument through the owning Runtime.
func algModule(rt *interp.Runtime) interp.Module {
	call := func(c *value.Callable, args []value.Value) (value.Value, error) {
		v, err := interp.Call(rt, c, args)
		if err != nil {
			return value.Value{}, err
		}
		return v, nil
	}
	return interp.Module{
		Name: "alg",
		Functions: map[string]value.NativeFunc{
			"range": func(args []value.Value) (value.Value, error) {
				if len(args) != 1 {
					return value.Value{}, arityErr(1, len(args))
				}
				if args[0].Kind != value.KindNum {
					return value.Value{}, typeErr("Num", args[0].TypeName())
				}
				n := int(args[0].Num)
				items := make([]value.Value, 0, max(n, 0))
				for i := 0; i < n; i++ {
					items = append(items, value.Num(float64(i)))
				}
				return value.Lst(value.NewList(items)), nil
			},
			"sum": func(args []value.Value) (value.Value, error) {
				if len(args) != 1 || args[0].Kind != value.KindLst {
					return value.Value{}, typeErr("Lst", "other")
				}
				total := 0.0
				for _, v := range args[0].Lst.Items() {
					if v.Kind != value.KindNum {
						return value.Value{}, typeErr("Num", v.TypeName())
					}
					total += v.Num
				}
				return value.Num(total), nil
			},
			"map": func(args []value.Value) (value.Value, error) {
				if len(args) != 2 || args[0].Kind != value.KindLst || args[1].Kind != value.KindFun {
					return value.Value{}, typeErr("Lst, Fun", "other")
				}
				if len(args[1].Fun.Params) != 1 && args[1].Fun.Kind == value.CallableUserDefined {
					return value.Value{}, arityErr(1, len(args[1].Fun.Params))
				}
				items := args[0].Lst.Items()
				out := make([]value.Value, len(items))
				for i, it := range items {
					v, err := call(args[1].Fun, []value.Value{it})
					if err != nil {
						return value.Value{}, err
					}
					out[i] = v
				}
				return value.Lst(value.NewList(out)), nil
			},
			"filter": func(args []value.Value) (value.Value, error) {
				if len(args) != 2 || args[0].Kind != value.KindLst || args[1].Kind != value.KindFun {
					return value.Value{}, typeErr("Lst, Fun", "other")
				}
				items := args[0].Lst.Items()
				var out []value.Value
				for _, it := range items {
					v, err := call(args[1].Fun, []value.Value{it})
					if err != nil {
						return value.Value{}, err
					}
					if v.IsTruthy() {
						out = append(out, it)
					}
				}
				return value.Lst(value.NewList(out)), nil
			},
			"sort": func(args []value.Value) (value.Value, error) {
				if len(args) != 1 || args[0].Kind != value.KindLst {
					return value.Value{}, typeErr("Lst", "other")
				}
				items := args[0].Lst.Items()
				sorted := make([]value.Value, len(items))
				copy(sorted, items)
				sort.SliceStable(sorted, func(i, j int) bool {
					if sorted[i].Kind == value.KindNum && sorted[j].Kind == value.KindNum {
						return sorted[i].Num < sorted[j].Num
					}
					return sorted[i].Display() < sorted[j].Display()
				})
				return value.Lst(value.NewList(sorted)), nil
			},
		},
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// mthModule wraps stdlib math, teacher numeric-helper style
// (pkg/runtime/stdlib.go).
var mthModule = interp.Module{
	Name: "mth",
	Functions: map[string]value.NativeFunc{
		"sqrt": unaryNum(math.Sqrt),
		"floor": unaryNum(math.Floor),
		"ceil":  unaryNum(math.Ceil),
		"abs":   unaryNum(math.Abs),
		"pow": func(args []value.Value) (value.Value, error) {
			if len(args) != 2 || args[0].Kind != value.KindNum || args[1].Kind != value.KindNum {
				return value.Value{}, typeErr("Num, Num", "other")
			}
			return value.Num(math.Pow(args[0].Num, args[1].Num)), nil
		},
	},
}

func unaryNum(f func(float64) float64) value.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindNum {
			return value.Value{}, typeErr("Num", "other")
		}
		return value.Num(f(args[0].Num)), nil
	}
}

var numModule = interp.Module{
	Name: "num",
	Functions: map[string]value.NativeFunc{
		"parse": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindStr {
				return value.Value{}, typeErr("Str", "other")
			}
			n, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
			if err != nil {
				return value.Value{}, axerrors.NewGenericError(fmt.Sprintf("num.parse: %v", err), axerrors.ZeroSpan)
			}
			return value.Num(n), nil
		},
		"toStr": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindNum {
				return value.Value{}, typeErr("Num", "other")
			}
			return value.Str(args[0].Display()), nil
		},
	},
}

// strModule backs the four required String methods (spec.md §4.5) plus
// a Unicode grapheme-cluster splitter sourced from the ardnew-aenv
// dependency set, for the case a script needs cluster-aware indexing
// rather than byte/rune splitting.
var strModule = interp.Module{
	Name: "str",
	Functions: map[string]value.NativeFunc{
		"upper": unaryStr(strings.ToUpper),
		"lower": unaryStr(strings.ToLower),
		"trim":  unaryStr(strings.TrimSpace),
		"len": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindStr {
				return value.Value{}, typeErr("Str", "other")
			}
			return value.Num(float64(len([]rune(args[0].Str)))), nil
		},
		"split": func(args []value.Value) (value.Value, error) {
			if len(args) != 2 || args[0].Kind != value.KindStr || args[1].Kind != value.KindStr {
				return value.Value{}, typeErr("Str, Str", "other")
			}
			parts := strings.Split(args[0].Str, args[1].Str)
			items := make([]value.Value, len(parts))
			for i, p := range parts {
				items[i] = value.Str(p)
			}
			return value.Lst(value.NewList(items)), nil
		},
		"graphemes": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindStr {
				return value.Value{}, typeErr("Str", "other")
			}
			seg := graphemes.FromBytes([]byte(args[0].Str))
			var items []value.Value
			for seg.Next() {
				items = append(items, value.Str(string(seg.Value())))
			}
			return value.Lst(value.NewList(items)), nil
		},
	},
}

func unaryStr(f func(string) string) value.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindStr {
			return value.Value{}, typeErr("Str", "other")
		}
		return value.Str(f(args[0].Str)), nil
	}
}

// annModule exposes lightweight runtime introspection over the
// Instance/Class model in internal/value/oop.go: no library in the
// corpus specializes in reflection over a dynamically-typed value
// union, so this walks Class.Fields/ResolveMethod directly.
var annModule = interp.Module{
	Name: "ann",
	Functions: map[string]value.NativeFunc{
		"typeof": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return value.Value{}, arityErr(1, len(args))
			}
			return value.Str(args[0].TypeName()), nil
		},
		"className": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindInstance {
				return value.Value{}, typeErr("Instance", "other")
			}
			return value.Str(args[0].Instance.Class.Name), nil
		},
		"fields": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindInstance {
				return value.Value{}, typeErr("Instance", "other")
			}
			var names []value.Value
			seen := make(map[string]bool)
			for cls := args[0].Instance.Class; cls != nil; cls = cls.Parent {
				for _, f := range cls.Fields {
					if !seen[f.Name] {
						seen[f.Name] = true
						names = append(names, value.Str(f.Name))
					}
				}
			}
			return value.Lst(value.NewList(names)), nil
		},
		"hasMethod": func(args []value.Value) (value.Value, error) {
			if len(args) != 2 || args[0].Kind != value.KindInstance || args[1].Kind != value.KindStr {
				return value.Value{}, typeErr("Instance, Str", "other")
			}
			_, ok := args[0].Instance.Class.ResolveMethod(args[1].Str)
			return value.Bol(ok), nil
		},
		"describe": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return value.Value{}, arityErr(1, len(args))
			}
			return value.Str(args[0].TypeName() + ": " + args[0].Display()), nil
		},
	},
}

var colModule = interp.Module{
	Name: "col",
	Functions: map[string]value.NativeFunc{
		"keys": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindMap {
				return value.Value{}, typeErr("Map", "other")
			}
			keys := args[0].Map.Keys()
			sort.Strings(keys)
			items := make([]value.Value, len(keys))
			for i, k := range keys {
				items[i] = value.Str(k)
			}
			return value.Lst(value.NewList(items)), nil
		},
		"values": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 || args[0].Kind != value.KindMap {
				return value.Value{}, typeErr("Map", "other")
			}
			keys := args[0].Map.Keys()
			sort.Strings(keys)
			items := make([]value.Value, len(keys))
			for i, k := range keys {
				v, _ := args[0].Map.Get(k)
				items[i] = v
			}
			return value.Lst(value.NewList(items)), nil
		},
		"has": func(args []value.Value) (value.Value, error) {
			if len(args) != 2 || args[0].Kind != value.KindMap || args[1].Kind != value.KindStr {
				return value.Value{}, typeErr("Map, Str", "other")
			}
			_, ok := args[0].Map.Get(args[1].Str)
			return value.Bol(ok), nil
		},
	},
}
