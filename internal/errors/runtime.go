package errors

import "fmt"

// RuntimeErrorKind enumerates the fatal runtime error taxa (spec.md §7).
type RuntimeErrorKind int

const (
	UndefinedVariable RuntimeErrorKind = iota
	UndefinedFunction
	UndefinedClass
	UndefinedMethod
	TypeMismatch
	ArityMismatch
	IndexOutOfBounds
	DivisionByZero
	ImportError
	NilCall
	NotCallable
	GenericError
)

// RuntimeError is a fatal error that aborts the evaluator and unwinds to
// the host. Every variant carries the fields spec.md §7/§4.4 assigns it;
// unused fields are left zero.
type RuntimeError struct {
	Kind        RuntimeErrorKind
	Name        string // UndefinedVariable/Function
	ClassName   string // UndefinedClass, UndefinedMethod
	MethodName  string // UndefinedMethod
	Expected    string // TypeMismatch (type name)
	Found       string // TypeMismatch (type name)
	ExpectedN   int    // ArityMismatch
	FoundN      int    // ArityMismatch
	Index       int    // IndexOutOfBounds
	Length      int    // IndexOutOfBounds
	Module      string // ImportError
	Message     string // ImportError, GenericError
	Hint        string // NilCall
	TypeName    string // NotCallable
	Span        Span
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("[AXM_201] Undefined variable: '%s'", e.Name)
	case UndefinedFunction:
		return fmt.Sprintf("[AXM_201] Undefined function: '%s'", e.Name)
	case UndefinedClass:
		return fmt.Sprintf("[AXM_201] Undefined class: '%s'", e.ClassName)
	case UndefinedMethod:
		return fmt.Sprintf("[AXM_201] Undefined method '%s' on '%s'", e.MethodName, e.ClassName)
	case TypeMismatch:
		return fmt.Sprintf("[AXM_203] Type mismatch: expected %s, found %s", e.Expected, e.Found)
	case ArityMismatch:
		return fmt.Sprintf("[AXM_202] Expected %d arguments, got %d", e.ExpectedN, e.FoundN)
	case IndexOutOfBounds:
		return fmt.Sprintf("[AXM_404] Index %d out of bounds for length %d", e.Index, e.Length)
	case DivisionByZero:
		return "[AXM_403] Division by zero"
	case ImportError:
		return fmt.Sprintf("[AXM_601] Import error for '%s': %s", e.Module, e.Message)
	case NilCall:
		return fmt.Sprintf("[AXM_402] Attempt to call nil value — %s", e.Hint)
	case NotCallable:
		return fmt.Sprintf("[AXM_401] Attempt to call non-callable type '%s'", e.TypeName)
	case GenericError:
		return e.Message
	default:
		return "unknown runtime error"
	}
}

// Code returns the AXM_xxx wire code for this error (spec.md §7), or ""
// for GenericError, which carries no fixed code (it is the catch-all,
// including the stack-overflow case).
func (e *RuntimeError) Code() string {
	switch e.Kind {
	case UndefinedVariable, UndefinedFunction, UndefinedClass, UndefinedMethod:
		return "AXM_201"
	case ArityMismatch:
		return "AXM_202"
	case TypeMismatch:
		return "AXM_203"
	case NotCallable:
		return "AXM_401"
	case NilCall:
		return "AXM_402"
	case DivisionByZero:
		return "AXM_403"
	case IndexOutOfBounds:
		return "AXM_404"
	case ImportError:
		return "AXM_601"
	default:
		return ""
	}
}

func NewUndefinedVariable(name string, span Span) *RuntimeError {
	return &RuntimeError{Kind: UndefinedVariable, Name: name, Span: span}
}

func NewUndefinedFunction(name string, span Span) *RuntimeError {
	return &RuntimeError{Kind: UndefinedFunction, Name: name, Span: span}
}

func NewUndefinedClass(name string) *RuntimeError {
	return &RuntimeError{Kind: UndefinedClass, ClassName: name}
}

func NewUndefinedMethod(className, methodName string) *RuntimeError {
	return &RuntimeError{Kind: UndefinedMethod, ClassName: className, MethodName: methodName}
}

func NewTypeMismatch(expected, found string, span Span) *RuntimeError {
	return &RuntimeError{Kind: TypeMismatch, Expected: expected, Found: found, Span: span}
}

func NewArityMismatch(expected, found int) *RuntimeError {
	return &RuntimeError{Kind: ArityMismatch, ExpectedN: expected, FoundN: found}
}

func NewIndexOutOfBounds(index, length int) *RuntimeError {
	return &RuntimeError{Kind: IndexOutOfBounds, Index: index, Length: length}
}

func NewDivisionByZero(span Span) *RuntimeError {
	return &RuntimeError{Kind: DivisionByZero, Span: span}
}

func NewImportError(module, message string) *RuntimeError {
	return &RuntimeError{Kind: ImportError, Module: module, Message: message}
}

func NewNilCall(hint string, span Span) *RuntimeError {
	return &RuntimeError{Kind: NilCall, Hint: hint, Span: span}
}

func NewNotCallable(typeName string, span Span) *RuntimeError {
	return &RuntimeError{Kind: NotCallable, TypeName: typeName, Span: span}
}

func NewGenericError(message string, span Span) *RuntimeError {
	return &RuntimeError{Kind: GenericError, Message: message, Span: span}
}
