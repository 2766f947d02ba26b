//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/sketchpad/sketchpad/internal/store"
)

// localStorage adapts window.localStorage to store.Store.
type localStorage struct {
	ls js.Value
}

func newLocalStorage() *localStorage {
	return &localStorage{ls: js.Global().Get("localStorage")}
}

func (s *localStorage) Get(_ context.Context, key string) (string, error) {
	v := s.ls.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", store.ErrNotFound
	}
	return v.String(), nil
}

// Set maps the QuotaExceededError thrown by setItem to store.ErrQuotaExceeded.
func (s *localStorage) Set(_ context.Context, key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok && jsErr.Get("name").String() == "QuotaExceededError" {
				err = store.ErrQuotaExceeded
				return
			}
			err = fmt.Errorf("localStorage setItem: %v", r)
		}
	}()
	s.ls.Call("setItem", key, value)
	return nil
}

func (s *localStorage) Keys(_ context.Context) ([]string, error) {
	n := s.ls.Get("length").Int()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		k := s.ls.Call("key", i)
		if k.Type() == js.TypeString {
			keys = append(keys, k.String())
		}
	}
	return keys, nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	s.ls.Call("removeItem", key)
	return nil
}
