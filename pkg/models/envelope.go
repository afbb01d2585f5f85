package models

// Envelope is the wrapper every gallery API response uses.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

func Fail[T any](msg string) Envelope[T] {
	return Envelope[T]{Success: false, Error: msg}
}
