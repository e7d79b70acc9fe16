package spec

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDatatype = errors.New("datatype is required to construct a spec")
	ErrInvalidParam    = errors.New("invalid parameter")
)

// StringError reports a string that does not have the shape a spec parses
type StringError struct {
	Spec   string
	Input  string
	Reason string
}

func (e *StringError) Error() string {
	return fmt.Sprintf("%s: invalid string '%s': %s", e.Spec, e.Input, e.Reason)
}

func NewStringError(spec Spec, input string, reason string) *StringError {
	return &StringError{
		Spec:   spec.String(),
		Input:  input,
		Reason: reason,
	}
}

// ValueError reports a value outside the domain of a spec
type ValueError struct {
	Spec   string
	Value  interface{}
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: invalid value '%v': %s", e.Spec, e.Value, e.Reason)
}

func NewValueError(spec Spec, value interface{}, reason string) *ValueError {
	return &ValueError{
		Spec:   spec.String(),
		Value:  value,
		Reason: reason,
	}
}

type OperationNotSupportedError struct {
	Spec      string
	Other     string
	Operation string
	Cause     error
}

func (e *OperationNotSupportedError) Error() string {
	message := fmt.Sprintf("operation not supported: %s.%s(%s)", e.Spec, e.Operation, e.Other)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", message, e.Cause)
	}
	return message
}

func (e *OperationNotSupportedError) Unwrap() error {
	return e.Cause
}

func NewOperationNotSupportedError(spec Spec, other Spec, operation string) *OperationNotSupportedError {
	otherName := "<nil>"
	if other != nil {
		otherName = other.String()
	}
	return &OperationNotSupportedError{
		Spec:      spec.String(),
		Other:     otherName,
		Operation: operation,
	}
}

type TransformationNotSupportedError struct {
	Spec           string
	Transformation string
	How            string
	Cause          error
}

func (e *TransformationNotSupportedError) Error() string {
	message := fmt.Sprintf("transformation not supported: %s.%s(how=%s)", e.Spec, e.Transformation, e.How)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", message, e.Cause)
	}
	return message
}

func (e *TransformationNotSupportedError) Unwrap() error {
	return e.Cause
}

func NewTransformationNotSupportedError(spec Spec, transformation string, how string) *TransformationNotSupportedError {
	return &TransformationNotSupportedError{
		Spec:           spec.String(),
		Transformation: transformation,
		How:            how,
	}
}

type UnknownDatatypeError struct {
	Datatype string
}

func (e *UnknownDatatypeError) Error() string {
	return fmt.Sprintf("unknown datatype '%s'", e.Datatype)
}

func NewUnknownDatatypeError(datatype string) *UnknownDatatypeError {
	return &UnknownDatatypeError{Datatype: datatype}
}

// BasisError reports a missing or malformed data basis during bulk import
type BasisError struct {
	Data     string
	Datatype string
	Reason   string
}

func (e *BasisError) Error() string {
	return fmt.Sprintf("invalid databasis for %s '%s': %s", e.Datatype, e.Data, e.Reason)
}

func NewBasisError(data string, datatype string, reason string) *BasisError {
	return &BasisError{
		Data:     data,
		Datatype: datatype,
		Reason:   reason,
	}
}

// AttributeError reports attributes that cannot build a spec
type AttributeError struct {
	Datatype Datatype
	Cause    error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("invalid %s attributes: %s", typeName(e.Datatype), e.Cause)
}

func (e *AttributeError) Unwrap() error {
	return e.Cause
}
