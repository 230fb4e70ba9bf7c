// Package invoke calls a constructor-like with a resolved argument list
// using reflect.Value.Call. It is the "host construction capability"
// spec.md §1 assumes the container has: given a function and its already
// resolved arguments, produce an instance or an (instance, error) pair.
package invoke

import (
	"fmt"
	"reflect"
)

// Call invokes ctor (ctorValue/ctorType as cached on a registry.Descriptor)
// with args, one per parameter position. A nil entry in args is passed as
// the zero value of that parameter's type, which is how an unresolved
// optional dependency reaches the constructor.
//
// Ctor returns either a single value, or a value and a trailing error; a
// ctor with no return values yields a nil instance. More than two return
// values is a programmer error and panics, the same way an invalid call
// through reflect would.
func Call(ctorValue reflect.Value, ctorType reflect.Type, args []any) (any, error) {
	in := make([]reflect.Value, ctorType.NumIn())
	for i := range in {
		paramType := ctorType.In(i)
		if i >= len(args) || args[i] == nil {
			in[i] = reflect.Zero(paramType)
			continue
		}

		v := reflect.ValueOf(args[i])
		if !v.IsValid() {
			in[i] = reflect.Zero(paramType)
		} else if v.Type().AssignableTo(paramType) {
			in[i] = v
		} else if v.Type().ConvertibleTo(paramType) {
			in[i] = v.Convert(paramType)
		} else {
			return nil, fmt.Errorf("argument %d: cannot use %s as %s", i, v.Type(), paramType)
		}
	}

	out := ctorType.NumOut()
	results, err := callSafely(ctorValue, in)
	if err != nil {
		return nil, err
	}

	switch out {
	case 0:
		return nil, nil
	case 1:
		return results[0].Interface(), nil
	case 2:
		var callErr error
		if last := results[1]; !last.IsNil() {
			callErr = last.Interface().(error)
		}
		return results[0].Interface(), callErr
	default:
		panic(fmt.Sprintf("invoke: constructor has %d return values, want 1 or 2", out))
	}
}

// callSafely turns a panic raised by the constructor itself into an error
// instead of unwinding through the resolver.
func callSafely(fn reflect.Value, in []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	results = fn.Call(in)
	return results, nil
}
