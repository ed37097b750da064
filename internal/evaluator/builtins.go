package evaluator

import (
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	hostbuiltins "github.com/uguisu-dev/uguisu-sub001/internal/builtins"
)

// installBuiltins binds one *NativeFunc per internal/builtins.Catalogue
// entry, grouped into the same namespace pseudo-struct shape the analyzer's
// prelude uses (language spec §6) so a FieldAccess like `number.parse` reads
// the host function out of a real runtime Struct value rather than a special
// case in evalFieldAccess.
func (e *Evaluator) installBuiltins() {
	handlers := handlerTable()

	byNamespace := map[string][]string{}
	instances := map[string]*Struct{}
	for _, ns := range hostbuiltins.Namespaces() {
		instances[ns] = &Struct{TypeName: "$" + ns, Values: map[string]*Slot{}}
	}

	for _, entry := range hostbuiltins.Catalogue() {
		fn := &NativeFunc{
			Name:    entry.FullName(),
			Handler: handlers[entry.FullName()],
		}
		if entry.Namespace == "" {
			e.Env.Set(entry.Name, NewSlot(fn))
			continue
		}
		inst := instances[entry.Namespace]
		inst.Values[entry.Name] = NewSlot(fn)
		inst.Order = append(inst.Order, entry.Name)
		byNamespace[entry.Namespace] = inst.Order
	}

	for _, ns := range hostbuiltins.Namespaces() {
		e.Env.Set(ns, NewSlot(instances[ns]))
	}
}

func handlerTable() map[string]func(*Evaluator, []Value) (Value, error) {
	return map[string]func(*Evaluator, []Value) (Value, error){
		"number.parse":    builtinNumberParse,
		"number.toString": builtinNumberToString,
		"number.assertEq": builtinNumberAssertEq,

		"char.fromNumber": builtinCharFromNumber,
		"char.toNumber":   builtinCharToNumber,
		"char.toString":   builtinCharToString,

		"string.concat":    builtinStringConcat,
		"string.fromChars": builtinStringFromChars,
		"string.fromArray": builtinStringFromChars,
		"string.toChars":   builtinStringToChars,
		"string.toArray":   builtinStringToChars,
		"string.assertEq":  builtinStringAssertEq,

		"array.insert":   builtinArrayInsert,
		"array.add":      builtinArrayAdd,
		"array.removeAt": builtinArrayRemoveAt,
		"array.count":    builtinArrayCount,

		"console.write":         builtinConsoleWrite,
		"console.writeNum":      builtinConsoleWriteNum,
		"console.read":          builtinConsoleRead,
		"console.isInteractive": builtinConsoleIsInteractive,

		"uuid.v4": builtinUUIDv4,

		"yaml.stringify": builtinYAMLStringify,
		"yaml.parse":     builtinYAMLParse,

		"getUnixtime": builtinGetUnixtime,
	}
}

func builtinNumberParse(e *Evaluator, args []Value) (Value, error) {
	s := args[0].(String).V
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{V: math.NaN()}, nil
	}
	return Number{V: f}, nil
}

func builtinNumberToString(e *Evaluator, args []Value) (Value, error) {
	return String{V: args[0].(Number).String()}, nil
}

func builtinNumberAssertEq(e *Evaluator, args []Value) (Value, error) {
	a, b := args[0].(Number), args[1].(Number)
	if a.V != b.V {
		return nil, runtimeErrorf("assertion failed: %s != %s", a.String(), b.String())
	}
	return None{}, nil
}

func builtinCharFromNumber(e *Evaluator, args []Value) (Value, error) {
	n := args[0].(Number)
	return Char{V: string(rune(int32(n.V)))}, nil
}

func builtinCharToNumber(e *Evaluator, args []Value) (Value, error) {
	c := args[0].(Char)
	r := []rune(c.V)[0]
	return Number{V: float64(r)}, nil
}

func builtinCharToString(e *Evaluator, args []Value) (Value, error) {
	return String{V: args[0].(Char).V}, nil
}

func builtinStringConcat(e *Evaluator, args []Value) (Value, error) {
	return String{V: args[0].(String).V + args[1].(String).V}, nil
}

func builtinStringFromChars(e *Evaluator, args []Value) (Value, error) {
	arr := args[0].(*Array)
	var b []byte
	for _, item := range arr.Items {
		c, ok := item.(Char)
		if !ok {
			return nil, runtimeErrorf("string.fromChars: array element is not a char")
		}
		b = append(b, []byte(c.V)...)
	}
	return String{V: string(b)}, nil
}

func builtinStringToChars(e *Evaluator, args []Value) (Value, error) {
	s := args[0].(String).V
	var items []Value
	for _, r := range s {
		items = append(items, Char{V: string(r)})
	}
	return NewArray(items), nil
}

func builtinStringAssertEq(e *Evaluator, args []Value) (Value, error) {
	a, b := args[0].(String), args[1].(String)
	if a.V != b.V {
		return nil, runtimeErrorf("assertion failed: %q != %q", a.V, b.V)
	}
	return None{}, nil
}

func builtinArrayInsert(e *Evaluator, args []Value) (Value, error) {
	arr := args[0].(*Array)
	idx := int(args[1].(Number).V)
	if idx < 0 || idx > len(arr.Items) {
		return nil, runtimeErrorf("array.insert: index %d out of range", idx)
	}
	arr.Items = append(arr.Items, nil)
	copy(arr.Items[idx+1:], arr.Items[idx:])
	arr.Items[idx] = args[2]
	return None{}, nil
}

func builtinArrayAdd(e *Evaluator, args []Value) (Value, error) {
	arr := args[0].(*Array)
	arr.Items = append(arr.Items, args[1])
	return None{}, nil
}

func builtinArrayRemoveAt(e *Evaluator, args []Value) (Value, error) {
	arr := args[0].(*Array)
	idx := int(args[1].(Number).V)
	if idx < 0 || idx >= len(arr.Items) {
		return nil, runtimeErrorf("array.removeAt: index %d out of range", idx)
	}
	arr.Items = append(arr.Items[:idx], arr.Items[idx+1:]...)
	return None{}, nil
}

func builtinArrayCount(e *Evaluator, args []Value) (Value, error) {
	arr := args[0].(*Array)
	return Number{V: float64(len(arr.Items))}, nil
}

func builtinConsoleWrite(e *Evaluator, args []Value) (Value, error) {
	e.Stdout(args[0].(String).V)
	return None{}, nil
}

func builtinConsoleWriteNum(e *Evaluator, args []Value) (Value, error) {
	e.Stdout(args[0].(Number).String())
	return None{}, nil
}

func builtinConsoleRead(e *Evaluator, args []Value) (Value, error) {
	return String{V: e.Stdin()}, nil
}

func builtinConsoleIsInteractive(e *Evaluator, args []Value) (Value, error) {
	return Bool{V: isatty.IsTerminal(os.Stdout.Fd())}, nil
}

func builtinUUIDv4(e *Evaluator, args []Value) (Value, error) {
	return String{V: uuid.New().String()}, nil
}

func builtinYAMLStringify(e *Evaluator, args []Value) (Value, error) {
	out, err := yaml.Marshal(valueToPlain(args[0]))
	if err != nil {
		return nil, runtimeErrorf("yaml.stringify: %s", err)
	}
	return String{V: string(out)}, nil
}

func builtinYAMLParse(e *Evaluator, args []Value) (Value, error) {
	var plain any
	if err := yaml.Unmarshal([]byte(args[0].(String).V), &plain); err != nil {
		return nil, runtimeErrorf("yaml.parse: %s", err)
	}
	return plainToValue(plain), nil
}

func builtinGetUnixtime(e *Evaluator, args []Value) (Value, error) {
	return Number{V: float64(time.Now().Unix())}, nil
}

// valueToPlain converts a runtime Value to a plain Go value yaml.Marshal can
// serialize (Uguisu values passed to yaml.stringify are typed `any`, so any
// concrete shape must be handled here).
func valueToPlain(v Value) any {
	switch x := v.(type) {
	case Number:
		return x.V
	case Bool:
		return x.V
	case Char:
		return x.V
	case String:
		return x.V
	case *Array:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			out[i] = valueToPlain(item)
		}
		return out
	case *Struct:
		out := map[string]any{}
		for _, name := range x.Order {
			out[name] = valueToPlain(x.Values[name].MustGet())
		}
		return out
	default:
		return nil
	}
}

// plainToValue converts a yaml.Unmarshal result back to a runtime Value
// (strings become String, integral/float scalars become Number, maps become
// an anonymous Struct-shaped value, and so on — yaml.parse's declared return
// type is `any`, so the exact shape is left to the host representation).
func plainToValue(x any) Value {
	switch v := x.(type) {
	case nil:
		return None{}
	case string:
		return String{V: v}
	case bool:
		return Bool{V: v}
	case int:
		return Number{V: float64(v)}
	case int64:
		return Number{V: float64(v)}
	case float64:
		return Number{V: v}
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = plainToValue(item)
		}
		return NewArray(items)
	case map[string]any:
		order := make([]string, 0, len(v))
		for k := range v {
			order = append(order, k)
		}
		st := NewStruct("yaml", order)
		for _, k := range order {
			st.Values[k].Set(plainToValue(v[k]))
		}
		return st
	default:
		return None{}
	}
}
