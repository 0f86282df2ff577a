package models

import "fmt"

// ErrorKind is the machine-readable classification of a request failure.
type ErrorKind string

const (
	ErrInvalidBoundingBox      ErrorKind = "invalid_bounding_box"
	ErrUnknownFeatureType      ErrorKind = "unknown_feature_type"
	ErrTooManyFeatureTypes     ErrorKind = "too_many_feature_types"
	ErrUpstreamQueryError      ErrorKind = "upstream_query_error"
	ErrResultTooLarge          ErrorKind = "result_too_large"
	ErrUnsupportedOutputFormat ErrorKind = "unsupported_output_format"
)

// RequestError carries the error kind plus a human-readable detail. Every
// failure surfaced to a caller is one of these; nothing is retried
// internally.
type RequestError struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func NewRequestError(kind ErrorKind, format string, args ...interface{}) *RequestError {
	return &RequestError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func InvalidBoundingBox(format string, args ...interface{}) *RequestError {
	return NewRequestError(ErrInvalidBoundingBox, format, args...)
}

func UnknownFeatureType(name string) *RequestError {
	return NewRequestError(ErrUnknownFeatureType, "unknown feature type %q", name)
}

func TooManyFeatureTypes(requested, max int) *RequestError {
	return NewRequestError(ErrTooManyFeatureTypes, "too many feature types: %d (maximum: %d)", requested, max)
}

func UpstreamQueryError(detail string) *RequestError {
	return NewRequestError(ErrUpstreamQueryError, "%s", detail)
}

func ResultTooLarge(count, max int) *RequestError {
	return NewRequestError(ErrResultTooLarge, "query returned too many elements (%d, maximum: %d)", count, max)
}

func UnsupportedOutputFormat(name string) *RequestError {
	return NewRequestError(ErrUnsupportedOutputFormat, "unsupported output format %q", name)
}
